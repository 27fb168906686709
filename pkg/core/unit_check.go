//go:build unitcheck

package core

import (
	"fmt"
	"math"
)

// verifyUnit panics when v is not unit length. Only compiled with -tags unitcheck.
func verifyUnit(v Vec3) {
	if math.Abs(v.Length()-1.0) > UnitTolerance {
		panic(fmt.Sprintf("core: AssumeUnit on non-unit vector %v (length %g)", v, v.Length()))
	}
}
