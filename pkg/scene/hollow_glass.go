package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewHollowGlassScene builds a thin glass shell from a sphere and a slightly
// smaller negative-radius sphere, whose inward normals make the gap between
// them the only glass
func NewHollowGlassScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center: core.NewVec3(0, 0.3, 1.5),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	}
	s := newScene("hollow-glass", cameraConfig, renderer.NewImageOptions(400, 225).WithAntialias(50), cameraOverrides)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	glass := material.NewDielectric(1.5)
	blue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	silver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)

	s.add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		// Hollow shell with a matte core
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(0, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.25, blue),
		// Solid glass and a mirror for comparison
		geometry.NewSphere(core.NewVec3(-1.1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(1.1, 0, -1), 0.5, silver),
	)
	return s
}
