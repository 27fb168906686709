package imageio

import (
	"errors"
	"image"
	"image/color"
)

// ErrTooManyPixels is returned when more pixels are written than the header announced
var ErrTooManyPixels = errors.New("more pixels written than image holds")

// ImageWriter collects streamed pixels into an in-memory image, for encoders
// that need the whole frame
type ImageWriter struct {
	img  *image.RGBA
	next int
}

// NewImageWriter creates an empty collector
func NewImageWriter() *ImageWriter {
	return &ImageWriter{}
}

// WriteHeader allocates the image
func (w *ImageWriter) WriteHeader(width, height int) error {
	w.img = image.NewRGBA(image.Rect(0, 0, width, height))
	w.next = 0
	return nil
}

// WritePixel stores the next pixel in row-major order
func (w *ImageWriter) WritePixel(c color.RGBA) error {
	if w.img == nil {
		return errors.New("pixel written before header")
	}
	width := w.img.Rect.Dx()
	if w.next >= width*w.img.Rect.Dy() {
		return ErrTooManyPixels
	}
	w.img.SetRGBA(w.next%width, w.next/width, c)
	w.next++
	return nil
}

// Flush is a no-op
func (w *ImageWriter) Flush() error {
	return nil
}

// Image returns the collected image
func (w *ImageWriter) Image() *image.RGBA {
	return w.img
}
