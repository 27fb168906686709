package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned for a strategy name or value that does not exist
var ErrUnknownStrategy = errors.New("unknown render strategy")

// Strategy selects how pixel work is scheduled. Every strategy writes the
// same pixels in the same row-major order.
type Strategy int

const (
	// Series computes one pixel at a time on the calling goroutine and writes it immediately
	Series Strategy = iota
	// ByRows computes each row in parallel, then writes it before starting the next
	ByRows
	// AllAtOnce computes the whole frame in parallel into a buffer, then writes it
	AllAtOnce
)

// Strategies lists every strategy in declaration order
var Strategies = []Strategy{Series, ByRows, AllAtOnce}

func (s Strategy) String() string {
	switch s {
	case Series:
		return "series"
	case ByRows:
		return "rows"
	case AllAtOnce:
		return "all"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a name such as "series", "rows" or "all" to a Strategy
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "series", "serial", "sequential":
		return Series, nil
	case "rows", "by-rows", "byrows":
		return ByRows, nil
	case "all", "all-at-once", "allatonce":
		return AllAtOnce, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
