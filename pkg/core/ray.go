package core

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Point
	Direction UnitVec3
}

// NewRay creates a new ray
func NewRay(origin Point, direction UnitVec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayTo creates a ray from origin pointing at target
func NewRayTo(origin, target Point) Ray {
	return Ray{Origin: origin, Direction: target.Subtract(origin).Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Multiply(t))
}
