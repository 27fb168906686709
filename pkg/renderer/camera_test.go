package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func vecNear(a, b core.Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

func forwardConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90.0,
	}
}

func TestCameraGetCameraForward(t *testing.T) {
	config := CameraConfig{
		Center: core.NewVec3(13, 2, 3),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   20.0,
	}
	camera, err := NewCamera(config, NewImageOptions(400, 225))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	forward := camera.GetCameraForward()
	expected := core.NewVec3(-13, -2, -3).Normalize().Vec3()
	if !vecNear(forward.Vec3(), expected, 1e-9) {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCamera_Basis(t *testing.T) {
	camera, err := NewCamera(forwardConfig(), NewImageOptions(200, 100))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	// vfov 90 at focus distance 1 gives a 4x2 viewport for a 2:1 image
	tests := []struct {
		name     string
		got      core.Vec3
		expected core.Vec3
	}{
		{"u", camera.u.Vec3(), core.NewVec3(1, 0, 0)},
		{"v", camera.v.Vec3(), core.NewVec3(0, 1, 0)},
		{"w", camera.w.Vec3(), core.NewVec3(0, 0, 1)},
		{"pixel delta u", camera.pixelDeltaU, core.NewVec3(0.02, 0, 0)},
		{"pixel delta v", camera.pixelDeltaV, core.NewVec3(0, -0.02, 0)},
		{"pixel 00", camera.pixel00, core.NewVec3(-1.99, 0.99, -1)},
		{"last pixel", camera.PixelCenter(199, 99), core.NewVec3(1.99, -0.99, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.got, tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestCamera_FocusDistanceDefaultsToLookAt(t *testing.T) {
	config := forwardConfig()
	config.LookAt = core.NewVec3(0, 0, -3)

	camera, err := NewCamera(config, NewImageOptions(100, 100))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	if math.Abs(camera.pixel00.Z+3) > 1e-9 {
		t.Errorf("Expected pixel grid on the plane z=-3, got z=%f", camera.pixel00.Z)
	}
}

func TestCamera_CenterRay(t *testing.T) {
	camera, err := NewCamera(forwardConfig(), NewImageOptions(201, 101))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	ray := camera.CenterRay(100, 50)
	if ray.Origin != camera.Center() {
		t.Errorf("Expected ray from the camera center, got %v", ray.Origin)
	}
	if !vecNear(ray.Direction.Vec3(), core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected middle pixel to look straight ahead, got %v", ray.Direction)
	}
}

func TestCamera_GetRayStaysInPixel(t *testing.T) {
	camera, err := NewCamera(forwardConfig(), NewImageOptions(200, 100))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	sampler := core.NewSeededSampler(7)
	center := camera.PixelCenter(10, 20)

	for i := 0; i < 200; i++ {
		ray := camera.GetRay(10, 20, sampler)
		if ray.Origin != camera.Center() {
			t.Fatalf("Expected no defocus jitter, got origin %v", ray.Origin)
		}
		// Intersect with the viewport plane z = -1
		p := ray.At(-1 / ray.Direction.Z())
		if math.Abs(p.X-center.X) > 0.01+1e-12 || math.Abs(p.Y-center.Y) > 0.01+1e-12 {
			t.Fatalf("Sample %v is outside pixel centered at %v", p, center)
		}
	}
}

func TestCamera_DefocusDisk(t *testing.T) {
	config := forwardConfig()
	config.DefocusAngle = 10
	config.FocusDistance = 3.4

	camera, err := NewCamera(config, NewImageOptions(160, 90))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	radius := 3.4 * math.Tan(5*math.Pi/180)
	sampler := core.NewSeededSampler(11)

	moved := false
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(80, 45, sampler)
		offset := ray.Origin.Subtract(camera.Center())
		if offset.Length() > radius+1e-9 {
			t.Fatalf("Origin offset %v exceeds defocus radius %f", offset, radius)
		}
		if math.Abs(offset.Z) > 1e-12 {
			t.Fatalf("Origin offset %v leaves the lens plane", offset)
		}
		if offset.Length() > 1e-6 {
			moved = true
		}
	}
	if !moved {
		t.Error("Expected defocus to jitter ray origins")
	}
}

// withConfig returns forwardConfig with one field changed
func withConfig(change func(*CameraConfig)) CameraConfig {
	config := forwardConfig()
	change(&config)
	return config
}

func TestNewCamera_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config CameraConfig
		image  ImageOptions
		target error
	}{
		{"zero width", forwardConfig(), NewImageOptions(0, 10), ErrInvalidImageSize},
		{"negative height", forwardConfig(), NewImageOptions(10, -1), ErrInvalidImageSize},
		{
			"center equals look at",
			CameraConfig{Center: core.NewVec3(1, 1, 1), LookAt: core.NewVec3(1, 1, 1), Up: core.NewVec3(0, 1, 0), VFov: 45},
			NewImageOptions(10, 10),
			ErrDegenerateCamera,
		},
		{
			"up parallel to view",
			CameraConfig{Center: core.NewVec3(0, 5, 0), LookAt: core.NewVec3(0, 0, 0), Up: core.NewVec3(0, 1, 0), VFov: 45},
			NewImageOptions(10, 10),
			ErrDegenerateCamera,
		},
		{"zero vfov", withConfig(func(c *CameraConfig) { c.VFov = 0 }), NewImageOptions(10, 10), ErrDegenerateCamera},
		{"negative vfov", withConfig(func(c *CameraConfig) { c.VFov = -30 }), NewImageOptions(10, 10), ErrDegenerateCamera},
		{"vfov of 180", withConfig(func(c *CameraConfig) { c.VFov = 180 }), NewImageOptions(10, 10), ErrDegenerateCamera},
		{"negative defocus angle", withConfig(func(c *CameraConfig) { c.DefocusAngle = -1 }), NewImageOptions(10, 10), ErrDegenerateCamera},
		{"defocus angle of 180", withConfig(func(c *CameraConfig) { c.DefocusAngle = 180 }), NewImageOptions(10, 10), ErrDegenerateCamera},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera, err := NewCamera(tt.config, tt.image)
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
			if camera != nil {
				t.Error("Expected no camera on error")
			}
		})
	}
}

func TestNewViewportCamera(t *testing.T) {
	image := NewImageOptions(400, 225)

	t.Run("matching aspect", func(t *testing.T) {
		camera, err := NewViewportCamera(core.NewVec3(0, 0, 0), 1.0, ViewportOptions{Width: 2.0 * 400 / 225, Height: 2.0}, image)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		upperLeft := camera.pixel00.Subtract(camera.pixelDeltaU.Add(camera.pixelDeltaV).Multiply(0.5))
		if !vecNear(upperLeft, core.NewVec3(-400.0/225, 1, -1), 1e-9) {
			t.Errorf("Expected viewport upper left (-16/9, 1, -1), got %v", upperLeft)
		}
	})

	t.Run("mismatched aspect", func(t *testing.T) {
		camera, err := NewViewportCamera(core.NewVec3(0, 0, 0), 1.0, ViewportOptions{Width: 4, Height: 2}, image)
		if !errors.Is(err, ErrAspectRatioMismatch) {
			t.Errorf("Expected ErrAspectRatioMismatch, got %v", err)
		}
		if camera != nil {
			t.Error("Expected no camera on error")
		}
	})

	t.Run("non-positive focal length", func(t *testing.T) {
		for _, focal := range []float64{0, -1} {
			camera, err := NewViewportCamera(core.NewVec3(0, 0, 0), focal, ViewportOptions{Width: 2.0 * 400 / 225, Height: 2.0}, image)
			if !errors.Is(err, ErrDegenerateCamera) {
				t.Errorf("Focal length %g: expected ErrDegenerateCamera, got %v", focal, err)
			}
			if camera != nil {
				t.Error("Expected no camera on error")
			}
		}
	})

	t.Run("empty viewport", func(t *testing.T) {
		_, err := NewViewportCamera(core.NewVec3(0, 0, 0), 1.0, ViewportOptions{}, image)
		if !errors.Is(err, ErrInvalidImageSize) {
			t.Errorf("Expected ErrInvalidImageSize, got %v", err)
		}
	})
}
