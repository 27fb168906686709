package renderer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains the positioning and lens settings for a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look-from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually 0,1,0)
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Cone angle in degrees of rays through each pixel; 0 disables depth of field
	FocusDistance float64   // Distance to the plane of perfect focus (0 = auto-calculate from LookAt)
}

// Camera generates primary rays. All fields are derived once at construction
// and only read afterwards, so one Camera is shared by every render worker.
type Camera struct {
	center       core.Point
	pixel00      core.Point // Location of the center of pixel (0, 0)
	pixelDeltaU  core.Vec3  // Offset to the pixel to the right
	pixelDeltaV  core.Vec3  // Offset to the pixel below
	u, v, w      core.UnitVec3
	defocusAngle float64
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
	image        ImageOptions
}

// NewCamera creates a positionable camera with optional depth of field
func NewCamera(config CameraConfig, image ImageOptions) (*Camera, error) {
	if err := image.Validate(); err != nil {
		return nil, err
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		return nil, fmt.Errorf("%w: vertical field of view %g must be in (0, 180)", ErrDegenerateCamera, config.VFov)
	}
	if !(config.DefocusAngle >= 0 && config.DefocusAngle < 180) {
		return nil, fmt.Errorf("%w: defocus angle %g must be in [0, 180)", ErrDegenerateCamera, config.DefocusAngle)
	}

	view := config.Center.Subtract(config.LookAt)
	if view.NearZero() {
		return nil, fmt.Errorf("%w: center and look-at coincide", ErrDegenerateCamera)
	}
	w := view.Normalize()
	side := config.Up.Cross(w.Vec3())
	if side.NearZero() {
		return nil, fmt.Errorf("%w: up %v is parallel to the view direction", ErrDegenerateCamera, config.Up)
	}
	u := side.Normalize()
	v := core.AssumeUnit(w.Vec3().Cross(u.Vec3()))

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = view.Length()
	}

	// Viewport dimensions on the focus plane
	theta := mgl64.DegToRad(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDistance
	viewportWidth := viewportHeight * image.AspectRatio()

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)

	upperLeft := config.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))

	c := &Camera{
		center:       config.Center,
		u:            u,
		v:            v,
		w:            w,
		defocusAngle: config.DefocusAngle,
		image:        image,
	}
	c.setPixelGrid(upperLeft, viewportU, viewportV)

	defocusRadius := focusDistance * math.Tan(mgl64.DegToRad(config.DefocusAngle/2))
	c.defocusDiskU = u.Multiply(defocusRadius)
	c.defocusDiskV = v.Multiply(defocusRadius)

	return c, nil
}

// NewViewportCamera creates a fixed camera looking down -Z from center with an
// explicit viewport size. The viewport must have the same aspect ratio as the
// image.
func NewViewportCamera(center core.Point, focalLength float64, viewport ViewportOptions, image ImageOptions) (*Camera, error) {
	if err := image.Validate(); err != nil {
		return nil, err
	}
	if !(focalLength > 0) {
		return nil, fmt.Errorf("%w: focal length %g must be positive", ErrDegenerateCamera, focalLength)
	}
	if err := checkAspect(viewport, image); err != nil {
		return nil, err
	}

	viewportU := core.NewVec3(viewport.Width, 0, 0)
	viewportV := core.NewVec3(0, -viewport.Height, 0)
	upperLeft := center.
		Subtract(core.NewVec3(0, 0, focalLength)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))

	c := &Camera{
		center: center,
		u:      core.NewUnitVec3XYZ(1, 0, 0),
		v:      core.NewUnitVec3XYZ(0, 1, 0),
		w:      core.NewUnitVec3XYZ(0, 0, 1),
		image:  image,
	}
	c.setPixelGrid(upperLeft, viewportU, viewportV)
	return c, nil
}

func (c *Camera) setPixelGrid(upperLeft core.Point, viewportU, viewportV core.Vec3) {
	c.pixelDeltaU = viewportU.Divide(float64(c.image.Width))
	c.pixelDeltaV = viewportV.Divide(float64(c.image.Height))
	c.pixel00 = upperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))
}

// Image returns the image options the camera was built for
func (c *Camera) Image() ImageOptions {
	return c.image
}

// Center returns the camera position
func (c *Camera) Center() core.Point {
	return c.center
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.UnitVec3 {
	return c.w.Negate()
}

// PixelCenter returns the world-space center of pixel (i, j); j = 0 is the top row
func (c *Camera) PixelCenter(i, j int) core.Point {
	return c.pixelPoint(float64(i), float64(j))
}

func (c *Camera) pixelPoint(x, y float64) core.Point {
	return c.pixel00.
		Add(c.pixelDeltaU.Multiply(x)).
		Add(c.pixelDeltaV.Multiply(y))
}

// CenterRay returns the single un-jittered ray through the center of pixel (i, j)
func (c *Camera) CenterRay(i, j int) core.Ray {
	return core.NewRayTo(c.center, c.PixelCenter(i, j))
}

// GetRay returns a ray through a random point of pixel (i, j). With a
// positive defocus angle the origin is also jittered on the defocus disk.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := core.SampleSquare(sampler)
	pixelSample := c.pixelPoint(float64(i)+offset.X, float64(j)+offset.Y)

	origin := c.center
	if c.defocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}
	return core.NewRayTo(origin, pixelSample)
}

// defocusDiskSample returns a random point on the camera's defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.
		Add(c.defocusDiskU.Multiply(p.X)).
		Add(c.defocusDiskV.Multiply(p.Y))
}
