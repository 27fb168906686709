package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 255 / width), uint8(y * 255 / height), 128, 255})
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"output.ppm", FormatPPM, false},
		{"output", FormatPPM, false},
		{"renders/out.PNG", FormatPNG, false},
		{"out.bmp", FormatBMP, false},
		{"out.tif", FormatTIFF, false},
		{"out.tiff", FormatTIFF, false},
		{"out.jpg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestEncode_Decodable(t *testing.T) {
	src := testImage(8, 4)

	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		FormatBMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		FormatTIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) },
		FormatPPM:  func(b *bytes.Buffer) (image.Image, error) { return ReadPPM(b) },
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := decode(&buf)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got.Bounds().Dx() != 8 || got.Bounds().Dy() != 4 {
				t.Fatalf("Expected 8x4, got %v", got.Bounds())
			}
			want := src.RGBAAt(5, 3)
			r, g, b, _ := got.At(5, 3).RGBA()
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
				t.Errorf("Pixel (5, 3): expected %v, got (%d, %d, %d)", want, r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.png")

	if err := Save(path, testImage(4, 4)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer file.Close()
	if _, err := png.Decode(file); err != nil {
		t.Errorf("Saved file is not a PNG: %v", err)
	}

	if err := Save(filepath.Join(dir, "render.gif"), testImage(4, 4)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestThumbnail(t *testing.T) {
	src := testImage(400, 225)

	thumb := Thumbnail(src, 160)
	if thumb.Bounds().Dx() != 160 {
		t.Errorf("Expected width 160, got %d", thumb.Bounds().Dx())
	}
	if thumb.Bounds().Dy() != 90 {
		t.Errorf("Expected aspect-preserving height 90, got %d", thumb.Bounds().Dy())
	}

	small := testImage(100, 50)
	if Thumbnail(small, 160) != image.Image(small) {
		t.Error("Expected narrow image to be returned unchanged")
	}
}

func TestSave_ClosesAndReportsErrors(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.ppm", "b.png", "c.bmp", "d.tif"} {
		path := filepath.Join(dir, name)
		if err := Save(path, testImage(6, 3)); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("Expected non-empty %s, got %v (%v)", name, info, err)
		}
		// The file must be closed so it can be removed and written again
		if err := os.Remove(path); err != nil {
			t.Errorf("Remove(%s) failed: %v", name, err)
		}
		if err := Save(path, testImage(6, 3)); err != nil {
			t.Errorf("Second Save(%s) failed: %v", name, err)
		}
	}

	if err := Save(filepath.Join(dir, "missing", "out.png"), testImage(2, 2)); err == nil {
		t.Error("Expected error for a path in a missing directory")
	}
}
