package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// forwardCamera looks down -Z from the origin. With a 2-unit viewport at
// focal length 1 it matches a 90 degree vertical field of view.
var forwardCamera = renderer.CameraConfig{
	Center: core.NewVec3(0, 0, 0),
	LookAt: core.NewVec3(0, 0, -1),
	Up:     core.NewVec3(0, 1, 0),
	VFov:   90.0,
}

// NewDefaultScene creates a matte sphere resting on a large ground sphere,
// seen through a fixed viewport camera with antialiasing disabled. Camera
// overrides switch it to a positionable camera.
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("default", forwardCamera, renderer.NewImageOptions(400, 225), cameraOverrides)
	if len(cameraOverrides) == 0 {
		s.ViewportHeight = 2.0
	}

	matte := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, matte),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, matte),
	)
	return s
}
