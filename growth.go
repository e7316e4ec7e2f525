package growvec

import "math"

const (
	// MinCapacity is the smallest capacity a live vector ever has.
	MinCapacity = 8

	// GrowthFactor is the multiplier applied on every growth step.
	GrowthFactor = 2
)

// NextCapacity returns the capacity that follows c in the growth sequence.
// It saturates at math.MaxInt.
func NextCapacity(c int) int {
	if c < MinCapacity {
		return MinCapacity
	}
	if c > math.MaxInt/GrowthFactor {
		return math.MaxInt
	}
	return c * GrowthFactor
}

// CapacityFor returns the smallest value reachable from c by repeated
// NextCapacity that holds need slots. It returns c when c already suffices.
func CapacityFor(c, need int) int {
	for c < need {
		c = NextCapacity(c)
	}
	return c
}
