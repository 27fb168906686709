package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// fixedSampler returns the same values for every draw
type fixedSampler struct {
	oneD float64
	twoD core.Vec2
}

func (f fixedSampler) Get1D() float64 { return f.oneD }
func (f fixedSampler) Get2D() core.Vec2 { return f.twoD }
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.twoD.X, f.twoD.Y, f.oneD)
}
func (f fixedSampler) Range(min, max float64) float64 {
	return min + (max-min)*f.oneD
}

// downSample maps through SampleOnUnitSphere to (0, 0, -1)
var downSample = core.NewVec2(1.0, 0.0)

func hitAt(normal core.UnitVec3, frontFace bool, m Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		T:         1.0,
		FrontFace: frontFace,
		Material:  m,
	}
}

func near(a, b core.Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}
