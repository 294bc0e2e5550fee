// Package normalize rescales raw entity metrics onto [0,1].
package normalize

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MinMax rescales values linearly so the smallest becomes 0 and the largest 1.
// A flat column (max == min) carries no signal and maps to all zeros.
// The input slice is not modified.
func MinMax(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	copy(out, values)

	lo := floats.Min(out)
	hi := floats.Max(out)
	if hi == lo {
		// Assign rather than scale by zero so negative inputs don't become -0.
		for i := range out {
			out[i] = 0
		}
		return out
	}

	span := hi - lo
	if math.IsInf(span, 0) {
		// hi-lo overflows; halving keeps every term finite.
		half := hi/2 - lo/2
		for i := range out {
			out[i] = (out[i]/2 - lo/2) / half
		}
		return out
	}

	floats.AddConst(-lo, out)
	for i := range out {
		out[i] /= span
	}
	return out
}
