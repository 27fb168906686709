package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// finalSceneSeed fixes the random layout so every run builds the same world
const finalSceneSeed = 2024

// NewFinalScene creates the classic cover image: a field of small random
// spheres around three large ones
func NewFinalScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		DefocusAngle:  0.6,
		FocusDistance: 10.0,
	}
	s := newScene("final", cameraConfig, renderer.NewImageOptions(1200, 675).WithAntialias(50), cameraOverrides)

	random := core.NewSeededSampler(finalSceneSeed)

	s.add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	glass := material.NewDielectric(1.5)
	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Get1D()
			center := core.NewVec3(float64(a)+0.9*random.Get1D(), 0.2, float64(b)+0.9*random.Get1D())
			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				// diffuse
				albedo := random.Get3D().MultiplyVec(random.Get3D())
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				// metal
				albedo := core.NewVec3(random.Range(0.5, 1), random.Range(0.5, 1), random.Range(0.5, 1))
				mat = material.NewMetal(albedo, random.Range(0, 0.5))
			default:
				// glass
				mat = glass
			}
			s.add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	s.add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)
	return s
}
