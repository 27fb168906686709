package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestLambertian_NeverAbsorbs(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	normal := core.NewUnitVec3XYZ(0, 1, 0)
	hit := hitAt(normal, true, lambertian)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewUnitVec3XYZ(0, -1, 0))

	sampler := core.NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		result, scattered := lambertian.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Lambertian should never absorb")
		}
		if result.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		dir := result.Scattered.Direction
		if math.Abs(dir.Vec3().Length()-1) > 1e-9 {
			t.Fatalf("Scattered direction %v is not unit length", dir)
		}
		if dir.Dot(normal) < -1e-9 {
			t.Fatalf("Scattered direction %v points into the surface", dir)
		}
		if result.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at the hit point, got %v", result.Scattered.Origin)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	normal := core.NewUnitVec3XYZ(0, 0, 1)
	hit := hitAt(normal, true, lambertian)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewUnitVec3XYZ(0, 0, -1))

	// The random unit vector is exactly -normal
	result, scattered := lambertian.Scatter(ray, hit, fixedSampler{twoD: downSample})
	if !scattered {
		t.Fatal("Lambertian should never absorb")
	}
	if result.Scattered.Direction != normal {
		t.Errorf("Expected fallback to normal %v, got %v", normal, result.Scattered.Direction)
	}
}
