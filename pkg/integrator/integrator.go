package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// SamplingConfig contains path tracing settings
type SamplingConfig struct {
	MaxDepth int // Maximum number of bounces before a path contributes black
}

// DefaultSamplingConfig returns the standard bounce limit
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{MaxDepth: 50}
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along a primary camera ray
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3
}
