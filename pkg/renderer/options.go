package renderer

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrAspectRatioMismatch is returned when a viewport and the image it maps onto have different shapes
	ErrAspectRatioMismatch = errors.New("image and viewport aspect ratios are not equal")
	// ErrInvalidImageSize is returned for non-positive image or viewport dimensions
	ErrInvalidImageSize = errors.New("image dimensions must be positive")
	// ErrDegenerateCamera is returned for a zero view direction, up parallel to it, or out-of-range angles and focal length
	ErrDegenerateCamera = errors.New("camera configuration is degenerate")
)

// aspectTolerance is the relative difference allowed between image and viewport aspect ratios
const aspectTolerance = 1e-9

// ImageOptions describes the output raster
type ImageOptions struct {
	Width           int
	Height          int
	SamplesPerPixel int // 0 disables antialiasing: one ray through each pixel center
}

// NewImageOptions creates image options with antialiasing disabled
func NewImageOptions(width, height int) ImageOptions {
	return ImageOptions{Width: width, Height: height}
}

// ImageOptionsForAspect derives the height from a width and aspect ratio, never less than 1
func ImageOptionsForAspect(width int, aspectRatio float64) ImageOptions {
	height := int(float64(width) / aspectRatio)
	if height < 1 {
		height = 1
	}
	return NewImageOptions(width, height)
}

// WithAntialias enables antialiasing with the given number of samples per pixel
func (o ImageOptions) WithAntialias(samplesPerPixel int) ImageOptions {
	o.SamplesPerPixel = samplesPerPixel
	return o
}

// Antialiased reports whether pixels are averaged over jittered samples
func (o ImageOptions) Antialiased() bool {
	return o.SamplesPerPixel > 0
}

// SamplesTaken returns the number of primary rays traced per pixel
func (o ImageOptions) SamplesTaken() int {
	if o.Antialiased() {
		return o.SamplesPerPixel
	}
	return 1
}

// AspectRatio returns width / height
func (o ImageOptions) AspectRatio() float64 {
	return float64(o.Width) / float64(o.Height)
}

// Validate checks the image has at least one pixel
func (o ImageOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, o.Width, o.Height)
	}
	if o.SamplesPerPixel < 0 {
		return fmt.Errorf("samples per pixel must not be negative: %d", o.SamplesPerPixel)
	}
	return nil
}

// ViewportOptions is the size of the viewport rectangle in world units
type ViewportOptions struct {
	Width  float64
	Height float64
}

// AspectRatio returns width / height
func (v ViewportOptions) AspectRatio() float64 {
	return v.Width / v.Height
}

// checkAspect compares viewport and image shapes with a relative tolerance
func checkAspect(viewport ViewportOptions, image ImageOptions) error {
	if !(viewport.Width > 0 && viewport.Height > 0) {
		return fmt.Errorf("%w: viewport %gx%g", ErrInvalidImageSize, viewport.Width, viewport.Height)
	}
	imageAspect := image.AspectRatio()
	viewportAspect := viewport.AspectRatio()
	if math.Abs(imageAspect-viewportAspect) > aspectTolerance*imageAspect {
		return fmt.Errorf("%w: image %g, viewport %g", ErrAspectRatioMismatch, imageAspect, viewportAspect)
	}
	return nil
}

// RenderOptions controls scheduling. None of these settings change pixel values.
type RenderOptions struct {
	Strategy   Strategy
	NumWorkers int    // 0 = use CPU count
	Seed       uint64 // Base seed for the per-pixel random streams
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Strategy:   ByRows,
		NumWorkers: 0,  // Auto-detect CPU count
		Seed:       42, // Deterministic output
	}
}
