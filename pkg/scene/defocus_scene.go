package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefocusScene views the materials scene from above and to the side with
// a wide aperture focused on the middle sphere
func NewDefocusScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		DefocusAngle:  10.0,
		FocusDistance: 3.4,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewMaterialsScene(cameraConfig)
	s.Name = "defocus"
	s.ViewportHeight = 0
	s.Image = renderer.NewImageOptions(400, 225).WithAntialias(25)
	return s
}
