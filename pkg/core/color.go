package core

import (
	"image/color"
	"math"
)

var (
	// Black is the color of absorbed and depth-exhausted paths
	Black = Vec3{}
	// White is full-pass attenuation
	White = Vec3{1, 1, 1}
)

// linearToGamma applies gamma 2 (square root); negative inputs map to 0
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToRGBA gamma-corrects a linear color and quantizes each channel to [0, 255]
func ToRGBA(c Vec3) color.RGBA {
	g := Vec3{linearToGamma(c.X), linearToGamma(c.Y), linearToGamma(c.Z)}.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * g.X),
		G: uint8(255 * g.Y),
		B: uint8(255 * g.Z),
		A: 255,
	}
}
