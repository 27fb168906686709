package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var (
	// ErrUnknownMaterial is returned when an object references a material name that is not defined
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrInvalidScene is returned for scene files with missing or invalid fields
	ErrInvalidScene = errors.New("invalid scene description")
)

// SceneFile is the JSON scene description. Materials are declared once by
// name and shared by every object that references them.
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Group       string                  `json:"group"`
	Image       ImageSpec               `json:"image"`
	Camera      CameraSpec              `json:"camera"`
	MaxDepth    int                     `json:"maxDepth"`
	Materials   map[string]MaterialSpec `json:"materials"`
	Objects     []ObjectSpec            `json:"objects"`
}

// ImageSpec describes the output raster
type ImageSpec struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	Samples int `json:"samples"` // 0 disables antialiasing
}

// CameraSpec describes either a positionable camera or, with viewportHeight
// set, a fixed camera looking down -Z
type CameraSpec struct {
	Center         [3]float64 `json:"center"`
	LookAt         [3]float64 `json:"lookAt"`
	Up             [3]float64 `json:"up"`
	VFov           float64    `json:"vfov"`
	DefocusAngle   float64    `json:"defocusAngle"`
	FocusDistance  float64    `json:"focusDistance"`
	ViewportHeight float64    `json:"viewportHeight"`
}

// MaterialSpec describes one material
type MaterialSpec struct {
	Type      string     `json:"type"` // lambertian, metal or dielectric
	Albedo    [3]float64 `json:"albedo"`
	Roughness float64    `json:"roughness"`
	IOR       float64    `json:"ior"`
}

// ObjectSpec describes one primitive
type ObjectSpec struct {
	Type     string      `json:"type"` // sphere or plane
	Material string      `json:"material"`
	Center   [3]float64  `json:"center"`
	Radius   float64     `json:"radius"`
	Normal   [3]float64  `json:"normal"`
	Point    *[3]float64 `json:"point"`
	Offset   float64     `json:"offset"`
}

// ParseScene decodes a JSON scene description. Unknown fields are rejected.
func ParseScene(reader io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var sf SceneFile
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return &sf, nil
}

// LoadScene reads and builds a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseScene(file)
	if err != nil {
		return nil, err
	}
	if sf.Name == "" {
		sf.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return sf.Build()
}

// Build converts the description into a renderable scene
func (sf *SceneFile) Build() (*scene.Scene, error) {
	materials := make(map[string]material.Material, len(sf.Materials))
	for name, desc := range sf.Materials {
		mat, err := desc.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	world := geometry.NewWorld()
	for i, desc := range sf.Objects {
		mat, ok := materials[desc.Material]
		if !ok {
			return nil, fmt.Errorf("object %d: %w: %q", i, ErrUnknownMaterial, desc.Material)
		}
		obj, err := desc.build(mat)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if err := world.Add(obj); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
	}

	image := renderer.NewImageOptions(sf.Image.Width, sf.Image.Height).WithAntialias(sf.Image.Samples)
	if image.Width == 0 && image.Height == 0 {
		image = renderer.NewImageOptions(400, 225).WithAntialias(sf.Image.Samples)
	}
	if err := image.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}

	sampling := integrator.DefaultSamplingConfig()
	if sf.MaxDepth > 0 {
		sampling.MaxDepth = sf.MaxDepth
	}

	return &scene.Scene{
		Name:           sf.Name,
		World:          world,
		CameraConfig:   sf.Camera.config(),
		ViewportHeight: sf.Camera.ViewportHeight,
		Image:          image,
		SamplingConfig: sampling,
	}, nil
}

func (c CameraSpec) config() renderer.CameraConfig {
	config := renderer.CameraConfig{
		Center:        vec(c.Center),
		LookAt:        vec(c.LookAt),
		Up:            vec(c.Up),
		VFov:          c.VFov,
		DefocusAngle:  c.DefocusAngle,
		FocusDistance: c.FocusDistance,
	}
	if config.LookAt == config.Center {
		config.LookAt = config.Center.Subtract(core.NewVec3(0, 0, 1))
	}
	if config.Up == (core.Vec3{}) {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.VFov == 0 {
		config.VFov = 90
	}
	return config
}

func (m MaterialSpec) build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian", "matte", "diffuse":
		return material.NewLambertian(vec(m.Albedo)), nil
	case "metal":
		return material.NewMetal(vec(m.Albedo), m.Roughness), nil
	case "dielectric", "glass":
		if m.IOR <= 0 {
			return nil, fmt.Errorf("%w: dielectric needs a positive ior, got %g", ErrInvalidScene, m.IOR)
		}
		return material.NewDielectric(m.IOR), nil
	default:
		return nil, fmt.Errorf("%w: material type %q", ErrInvalidScene, m.Type)
	}
}

func (o ObjectSpec) build(mat material.Material) (geometry.Hittable, error) {
	switch strings.ToLower(o.Type) {
	case "sphere":
		if o.Radius == 0 {
			return nil, fmt.Errorf("%w: sphere radius must be non-zero", ErrInvalidScene)
		}
		return geometry.NewSphere(vec(o.Center), o.Radius, mat), nil
	case "plane":
		normal, err := core.NewUnitVec3(vec(o.Normal))
		if err != nil {
			return nil, fmt.Errorf("plane normal: %w", err)
		}
		if o.Point != nil {
			return geometry.NewPlaneThroughPoint(vec(*o.Point), normal.Vec3(), mat), nil
		}
		return geometry.NewPlane(normal, o.Offset, mat), nil
	default:
		return nil, fmt.Errorf("%w: object type %q", ErrInvalidScene, o.Type)
	}
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// validateFilePath validates a file path for security issues
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)

	// Check file extension (only allow .json files)
	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json files are allowed")
	}

	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	return nil
}
