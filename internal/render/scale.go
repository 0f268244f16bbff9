package render

import (
	"fmt"
	"math"
)

// maxAxisSpan is the widest data range drawn unscaled. Wider ranges are
// divided by a power of ten so tick placement and bin widths stay finite.
const maxAxisSpan = 1e100

// axisScale returns the divisor applied to vals before plotting: 1 for
// ordinary data, otherwise the power of ten of the largest magnitude.
func axisScale(vals []float64) float64 {
	if len(vals) == 0 {
		return 1
	}
	lo, hi := bounds(vals)
	if span := hi/2 - lo/2; span <= maxAxisSpan/2 {
		return 1
	}
	m := math.Max(math.Abs(lo), math.Abs(hi))
	return math.Pow(10, math.Floor(math.Log10(m)))
}

func scaleValues(vals []float64, s float64) []float64 {
	if s == 1 {
		return vals
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v / s
	}
	return out
}

func scaleLabel(label string, s float64) string {
	if s == 1 {
		return label
	}
	if label == "" {
		return fmt.Sprintf("x%g", s)
	}
	return fmt.Sprintf("%s (x%g)", label, s)
}

func bounds(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
