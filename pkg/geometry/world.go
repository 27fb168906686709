package geometry

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrNilObject is returned when adding a nil object to a World
var ErrNilObject = errors.New("cannot add nil object to world")

// World is an ordered list of objects that is itself hittable. It is built
// once and then only read during rendering.
type World struct {
	objects []Hittable
}

// NewWorld creates a world holding the given objects
func NewWorld(objects ...Hittable) *World {
	w := &World{}
	for _, obj := range objects {
		if obj != nil {
			w.objects = append(w.objects, obj)
		}
	}
	return w
}

// Add appends an object to the world
func (w *World) Add(object Hittable) error {
	if object == nil {
		return ErrNilObject
	}
	w.objects = append(w.objects, object)
	return nil
}

// Objects returns the objects in insertion order
func (w *World) Objects() []Hittable {
	return w.objects
}

// Len returns the number of objects
func (w *World) Len() int {
	return len(w.objects)
}

// Hit returns the closest hit across all objects. Every object is tested; the
// upper bound shrinks to the nearest t found so far.
func (w *World) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range w.objects {
		if hit, isHit := object.Hit(ray, rayT.WithMax(closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
