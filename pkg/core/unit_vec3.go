package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotUnitVector is returned when a vector asserted to be unit length is not
var ErrNotUnitVector = errors.New("vector is not unit length")

// UnitTolerance is the allowed deviation of |v| from 1 for a UnitVec3
const UnitTolerance = 1e-6

// UnitVec3 is a direction with length 1. Ray directions and surface normals
// are always UnitVec3 so unnormalized vectors cannot reach the optics code.
//
// A UnitVec3 is obtained from Vec3.Normalize, from NewUnitVec3 (checked), or
// from AssumeUnit (unchecked unless built with -tags unitcheck).
type UnitVec3 struct {
	v Vec3
}

// NewUnitVec3 validates that v is unit length within UnitTolerance
func NewUnitVec3(v Vec3) (UnitVec3, error) {
	if math.Abs(v.Length()-1.0) > UnitTolerance {
		return UnitVec3{}, fmt.Errorf("%w: |%v| = %g", ErrNotUnitVector, v, v.Length())
	}
	return UnitVec3{v: v}, nil
}

// AssumeUnit wraps v without normalizing it. The caller certifies that v is
// already unit length; debug builds (-tags unitcheck) panic if it is not.
func AssumeUnit(v Vec3) UnitVec3 {
	verifyUnit(v)
	return UnitVec3{v: v}
}

// NewUnitVec3XYZ normalizes (x, y, z)
func NewUnitVec3XYZ(x, y, z float64) UnitVec3 {
	return NewVec3(x, y, z).Normalize()
}

// Vec3 returns the underlying vector
func (u UnitVec3) Vec3() Vec3 {
	return u.v
}

// X returns the x component
func (u UnitVec3) X() float64 { return u.v.X }

// Y returns the y component
func (u UnitVec3) Y() float64 { return u.v.Y }

// Z returns the z component
func (u UnitVec3) Z() float64 { return u.v.Z }

// Dot returns the dot product with another unit vector
func (u UnitVec3) Dot(other UnitVec3) float64 {
	return u.v.Dot(other.v)
}

// DotVec returns the dot product with an arbitrary vector
func (u UnitVec3) DotVec(other Vec3) float64 {
	return u.v.Dot(other)
}

// Negate returns the opposite direction
func (u UnitVec3) Negate() UnitVec3 {
	return UnitVec3{v: u.v.Negate()}
}

// Multiply scales the direction, producing a plain vector
func (u UnitVec3) Multiply(scalar float64) Vec3 {
	return u.v.Multiply(scalar)
}

// Add returns the (non-unit) sum of the direction and a vector
func (u UnitVec3) Add(other Vec3) Vec3 {
	return u.v.Add(other)
}

// Cross returns the cross product with another unit vector
func (u UnitVec3) Cross(other UnitVec3) Vec3 {
	return u.v.Cross(other.v)
}

// Reflect mirrors u about the normal n: u - 2(u·n)n
func (u UnitVec3) Reflect(n UnitVec3) UnitVec3 {
	return AssumeUnit(u.v.Subtract(n.v.Multiply(2 * u.v.Dot(n.v))))
}

// Refract bends u through a surface with normal n, where etaRatio is the ratio
// of refractive indices (incident over transmitted). The caller must already
// have excluded total internal reflection.
func (u UnitVec3) Refract(n UnitVec3, etaRatio float64) UnitVec3 {
	cosTheta := math.Min(u.Negate().Dot(n), 1.0)
	rOutPerp := u.v.Add(n.v.Multiply(cosTheta)).Multiply(etaRatio)
	rOutParallel := n.v.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return AssumeUnit(rOutPerp.Add(rOutParallel))
}

// String implements fmt.Stringer
func (u UnitVec3) String() string {
	return fmt.Sprintf("{%g %g %g}", u.v.X, u.v.Y, u.v.Z)
}
