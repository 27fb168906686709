package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene ID is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.World
	CameraConfig   renderer.CameraConfig
	ViewportHeight float64 // Non-zero selects a fixed camera at CameraConfig.Center looking down -Z with focal length 1
	Image          renderer.ImageOptions
	SamplingConfig integrator.SamplingConfig
}

// NewCamera builds the scene's camera for the given image
func (s *Scene) NewCamera(image renderer.ImageOptions) (*renderer.Camera, error) {
	if s.ViewportHeight > 0 {
		viewport := renderer.ViewportOptions{
			Width:  s.ViewportHeight * image.AspectRatio(),
			Height: s.ViewportHeight,
		}
		return renderer.NewViewportCamera(s.CameraConfig.Center, 1.0, viewport, image)
	}
	return renderer.NewCamera(s.CameraConfig, image)
}

// NewRenderer builds a path-tracing renderer for the scene at the given image size
func (s *Scene) NewRenderer(image renderer.ImageOptions, options renderer.RenderOptions, logger *slog.Logger) (*renderer.Renderer, error) {
	camera, err := s.NewCamera(image)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}
	integ := integrator.NewPathTracingIntegrator(s.SamplingConfig)
	return renderer.NewRenderer(camera, s.World, integ, options, logger), nil
}

// ImageWithWidth returns the scene's image options scaled to a new width,
// keeping the aspect ratio and samples per pixel
func (s *Scene) ImageWithWidth(width int) renderer.ImageOptions {
	if width <= 0 || width == s.Image.Width {
		return s.Image
	}
	return renderer.ImageOptionsForAspect(width, s.Image.AspectRatio()).WithAntialias(s.Image.SamplesPerPixel)
}

// GetPrimitiveCount returns the number of objects in the world
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// add appends an object, panicking on nil; built-in scenes never add nil
func (s *Scene) add(objects ...geometry.Hittable) {
	for _, obj := range objects {
		if err := s.World.Add(obj); err != nil {
			panic(fmt.Sprintf("scene %s: %v", s.Name, err))
		}
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override renderer.CameraConfig) renderer.CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// newScene creates an empty scene with default sampling
func newScene(name string, cameraConfig renderer.CameraConfig, image renderer.ImageOptions, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	return &Scene{
		Name:           name,
		World:          geometry.NewWorld(),
		CameraConfig:   cameraConfig,
		Image:          image,
		SamplingConfig: integrator.DefaultSamplingConfig(),
	}
}
