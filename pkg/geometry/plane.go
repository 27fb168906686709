package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// parallelEpsilon rejects rays whose direction is almost perpendicular to the plane normal
const parallelEpsilon = 1e-6

// Plane represents an infinite plane n·P + d = 0
type Plane struct {
	Normal   core.UnitVec3
	D        float64
	Material material.Material
}

// NewPlane creates a plane from its normal and offset
func NewPlane(normal core.UnitVec3, d float64, mat material.Material) *Plane {
	return &Plane{
		Normal:   normal,
		D:        d,
		Material: mat,
	}
}

// NewPlaneThroughPoint creates the plane through point with the given normal
func NewPlaneThroughPoint(point core.Point, normal core.Vec3, mat material.Material) *Plane {
	n := normal.Normalize()
	return NewPlane(n, -n.DotVec(point), mat)
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	denominator := p.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane
	if math.Abs(denominator) < parallelEpsilon {
		return nil, false
	}

	t := -(p.Normal.DotVec(ray.Origin) + p.D) / denominator
	if !rayT.Surrounds(t) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	return hitRecord, true
}
