package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape. A negative radius keeps the same surface
// but turns its normals inward, which is how hollow glass shells are built.
type Sphere struct {
	Center   core.Point
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Quadratic in t with b = -2h
	dir := ray.Direction.Vec3()
	a := dir.LengthSquared()
	h := oc.Dot(dir)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the nearer root first
	root := (h - sqrtD) / a
	if !rayT.Contains(root) {
		root = (h + sqrtD) / a
		if !rayT.Contains(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Dividing by the signed radius (rather than normalizing) keeps inward
	// normals for negative-radius spheres
	outwardNormal := core.AssumeUnit(hitRecord.Point.Subtract(s.Center).Divide(s.Radius))
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
