package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestWorld_Add(t *testing.T) {
	world := NewWorld()
	if err := world.Add(NewSphere(core.NewVec3(0, 0, -1), 0.5, testMaterial)); err != nil {
		t.Fatalf("Unexpected error adding sphere: %v", err)
	}
	if err := world.Add(nil); !errors.Is(err, ErrNilObject) {
		t.Errorf("Expected ErrNilObject, got %v", err)
	}
	if world.Len() != 1 {
		t.Errorf("Expected 1 object, got %d", world.Len())
	}
}

func TestWorld_Hit_Empty(t *testing.T) {
	world := NewWorld()
	ray := rayTowards(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := world.Hit(ray, defaultRange); isHit {
		t.Error("Expected empty world to miss")
	}
}

func TestWorld_Hit_ReturnsClosest(t *testing.T) {
	near := material.NewLambertian(core.NewVec3(1, 0, 0))
	mid := material.NewLambertian(core.NewVec3(0, 1, 0))
	far := material.NewLambertian(core.NewVec3(0, 0, 1))

	// Insertion order puts the nearest sphere in the middle and last
	orders := map[string][]Hittable{
		"far first": {
			NewSphere(core.NewVec3(0, 0, -10), 0.5, far),
			NewSphere(core.NewVec3(0, 0, -2), 0.5, near),
			NewSphere(core.NewVec3(0, 0, -5), 0.5, mid),
		},
		"near last": {
			NewSphere(core.NewVec3(0, 0, -10), 0.5, far),
			NewSphere(core.NewVec3(0, 0, -5), 0.5, mid),
			NewSphere(core.NewVec3(0, 0, -2), 0.5, near),
		},
	}

	ray := rayTowards(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	for name, objects := range orders {
		t.Run(name, func(t *testing.T) {
			world := NewWorld(objects...)
			hit, isHit := world.Hit(ray, defaultRange)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-1.5) > 1e-9 {
				t.Errorf("Expected closest t=1.5, got t=%f", hit.T)
			}
			if hit.Material != near {
				t.Error("Expected the nearest sphere's material")
			}
		})
	}
}

func TestWorld_Hit_StaysInsideInterval(t *testing.T) {
	world := NewWorld(
		NewSphere(core.NewVec3(0, 0, -2), 0.5, testMaterial),
		NewSphere(core.NewVec3(0, 0, -5), 0.5, testMaterial),
		NewPlane(core.NewUnitVec3XYZ(0, 0, 1), 20, testMaterial), // z = -20
	)
	ray := rayTowards(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		interval  core.Interval
		expectHit bool
		expectedT float64
	}{
		{"full range", defaultRange, true, 1.5},
		{"skip first sphere", core.NewInterval(3, math.Inf(1)), true, 4.5},
		{"only plane", core.NewInterval(6, 100), true, 20},
		{"gap between objects", core.NewInterval(5.6, 19), false, 0},
		{"upper bound before everything", core.NewInterval(0.001, 1), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := world.Hit(ray, tt.interval)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if hit.T < tt.interval.Min || hit.T > tt.interval.Max {
				t.Errorf("Hit t=%f outside interval [%f, %f]", hit.T, tt.interval.Min, tt.interval.Max)
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestWorld_IsHittable(t *testing.T) {
	inner := NewWorld(NewSphere(core.NewVec3(0, 0, -3), 0.5, testMaterial))
	outer := NewWorld(inner, NewSphere(core.NewVec3(0, 0, -8), 0.5, testMaterial))

	ray := rayTowards(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := outer.Hit(ray, defaultRange)
	if !isHit {
		t.Fatal("Expected nested world to be hit")
	}
	if math.Abs(hit.T-2.5) > 1e-9 {
		t.Errorf("Expected t=2.5, got t=%f", hit.T)
	}
}
