package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// ErrMalformedPPM is returned when input is not a valid plain (P3) PPM file
var ErrMalformedPPM = errors.New("malformed P3 PPM")

// maxChannel is the maximum color value written in the header
const maxChannel = 255

// PPMWriter streams pixels as a plain-text P3 PPM. Pixels are buffered;
// Flush must be called after the last pixel.
type PPMWriter struct {
	w *bufio.Writer
}

// NewPPMWriter creates a P3 writer on top of w
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the magic number, dimensions and max channel value
func (p *PPMWriter) WriteHeader(width, height int) error {
	_, err := fmt.Fprintf(p.w, "P3\n%d %d\n%d\n", width, height, maxChannel)
	return err
}

// WritePixel writes one "R G B" line
func (p *PPMWriter) WritePixel(c color.RGBA) error {
	_, err := fmt.Fprintf(p.w, "%d %d %d\n", c.R, c.G, c.B)
	return err
}

// Flush writes any buffered data to the underlying writer
func (p *PPMWriter) Flush() error {
	return p.w.Flush()
}

// EncodePPM writes img as a P3 PPM
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	pw := NewPPMWriter(w)
	if err := pw.WriteHeader(bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if err := pw.WritePixel(c); err != nil {
				return err
			}
		}
	}
	return pw.Flush()
}

// maxPPMPixels bounds the allocation ReadPPM makes from an untrusted header
const maxPPMPixels = 1 << 28

// ReadPPM parses a P3 PPM into an RGBA image. Channel values are rescaled
// when the file's max value is not 255.
func ReadPPM(r io.Reader) (*image.RGBA, error) {
	tr := &tokenReader{r: bufio.NewReader(r)}

	magic, err := tr.next()
	if err != nil {
		return nil, err
	}
	if magic != "P3" {
		return nil, fmt.Errorf("%w: magic number %q", ErrMalformedPPM, magic)
	}

	width, err := tr.nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := tr.nextInt("height")
	if err != nil {
		return nil, err
	}
	maxVal, err := tr.nextInt("max value")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || maxVal <= 0 || maxVal > 65535 {
		return nil, fmt.Errorf("%w: header %d %d %d", ErrMalformedPPM, width, height, maxVal)
	}
	if width > maxPPMPixels/height {
		return nil, fmt.Errorf("%w: %dx%d image is too large", ErrMalformedPPM, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var rgb [3]uint8
			for i := range rgb {
				v, err := tr.nextInt("channel")
				if err != nil {
					return nil, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
				}
				if v < 0 || v > maxVal {
					return nil, fmt.Errorf("%w: channel value %d out of range at (%d, %d)", ErrMalformedPPM, v, x, y)
				}
				rgb[i] = uint8(v * maxChannel / maxVal)
			}
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img, nil
}

// tokenReader splits PPM input into whitespace-separated tokens, skipping
// '#' comments
type tokenReader struct {
	r *bufio.Reader
}

func (t *tokenReader) next() (string, error) {
	var token []byte
	for {
		b, err := t.r.ReadByte()
		if err == io.EOF {
			if len(token) > 0 {
				return string(token), nil
			}
			return "", fmt.Errorf("%w: unexpected end of input", ErrMalformedPPM)
		}
		if err != nil {
			return "", err
		}

		switch {
		case b == '#' && len(token) == 0:
			if _, err := t.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, b)
		}
	}
}

func (t *tokenReader) nextInt(what string) (int, error) {
	token, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedPPM, what, token)
	}
	return v, nil
}
