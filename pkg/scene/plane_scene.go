package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewPlaneScene replaces the ground sphere with an infinite plane and adds a
// mirror wall behind the spheres
func NewPlaneScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center: core.NewVec3(0, 0.75, 2),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   50.0,
	}
	s := newScene("plane", cameraConfig, renderer.NewImageOptions(400, 225).WithAntialias(50), cameraOverrides)

	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	mirror := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.02)
	red := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)

	s.add(
		geometry.NewPlaneThroughPoint(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), ground),
		geometry.NewPlaneThroughPoint(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), mirror),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, red),
		geometry.NewSphere(core.NewVec3(-1.1, 0, -1.2), 0.5, glass),
		geometry.NewSphere(core.NewVec3(1.1, 0, -0.8), 0.5, gold),
	)
	return s
}
