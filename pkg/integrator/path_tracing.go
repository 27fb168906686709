package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// shadowAcneEpsilon keeps secondary rays from re-hitting their own origin
const shadowAcneEpsilon = 0.001

var skyBlue = core.NewVec3(0.5, 0.7, 1.0)

// PathTracingIntegrator implements unidirectional path tracing with a sky
// gradient as the only light source
type PathTracingIntegrator struct {
	config SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the sampling configuration
func (pt *PathTracingIntegrator) Config() SamplingConfig {
	return pt.config
}

// RayColor traces a primary ray with the configured bounce limit
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.Trace(ray, world, sampler, pt.config.MaxDepth)
}

// Trace returns the radiance arriving along ray. Each bounce decrements depth;
// at zero the path contributes black.
func (pt *PathTracingIntegrator) Trace(ray core.Ray, world geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Black
	}

	hit, isHit := world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return BackgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Black
	}

	return scatter.Attenuation.MultiplyVec(pt.Trace(scatter.Scattered, world, sampler, depth-1))
}

// BackgroundGradient blends white at the horizon-down into sky blue overhead
func BackgroundGradient(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Y() + 1.0)
	return core.White.Lerp(skyBlue, t)
}
