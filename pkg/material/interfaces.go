package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material decides what happens to a ray that strikes a surface.
// Implementations hold no per-call state and are shared read-only across
// goroutines and across every primitive that references them.
type Material interface {
	// Scatter returns the emergent ray and its attenuation. A false result
	// means the ray was absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point    // Point of intersection
	Normal    core.UnitVec3 // Surface normal, always facing against the incoming ray
	T         float64       // Parameter t along the ray
	FrontFace bool          // Whether ray hit the front face
	Material  Material      // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.UnitVec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
