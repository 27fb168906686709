package core

import (
	"math"
	"testing"
)

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	i := NewInterval(1, 2)

	tests := []struct {
		value     float64
		contains  bool
		surrounds bool
	}{
		{0.5, false, false},
		{1, true, false},
		{1.5, true, true},
		{2, true, false},
		{2.5, false, false},
	}

	for _, tt := range tests {
		if got := i.Contains(tt.value); got != tt.contains {
			t.Errorf("Contains(%f) = %t, want %t", tt.value, got, tt.contains)
		}
		if got := i.Surrounds(tt.value); got != tt.surrounds {
			t.Errorf("Surrounds(%f) = %t, want %t", tt.value, got, tt.surrounds)
		}
	}
}

func TestInterval_EmptyAndUniverse(t *testing.T) {
	if EmptyInterval.Contains(0) {
		t.Error("Empty interval should not contain 0")
	}
	if !UniverseInterval.Contains(math.MaxFloat64) {
		t.Error("Universe interval should contain MaxFloat64")
	}
	if EmptyInterval.Size() >= 0 {
		t.Errorf("Empty interval should have negative size, got %f", EmptyInterval.Size())
	}
}

func TestInterval_ClampAndWithMax(t *testing.T) {
	i := NewInterval(0, 1)
	if got := i.Clamp(-3); got != 0 {
		t.Errorf("Expected clamp to 0, got %f", got)
	}
	if got := i.Clamp(7); got != 1 {
		t.Errorf("Expected clamp to 1, got %f", got)
	}
	if got := i.Clamp(0.25); got != 0.25 {
		t.Errorf("Expected 0.25 unchanged, got %f", got)
	}

	shrunk := NewInterval(0.001, math.Inf(1)).WithMax(4)
	if shrunk.Min != 0.001 || shrunk.Max != 4 {
		t.Errorf("Expected [0.001, 4], got [%f, %f]", shrunk.Min, shrunk.Max)
	}
}
