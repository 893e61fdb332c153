// Package colorscale computes robust color limits and maps values onto a
// diverging palette.
package colorscale

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Lower and upper percentiles used to clip outliers.
const (
	LowerPercentile = 2
	UpperPercentile = 98
)

// Finite returns the values that are neither NaN nor infinite.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Percentile returns the p-th percentile (0..100) of sorted values using
// linear interpolation between closest ranks.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// RobustBounds returns color limits from the 2nd and 98th percentiles of
// the finite values, falling back to min/max when those coincide. ok is
// false when there are no finite values. lo <= hi always holds.
func RobustBounds(values []float64) (lo, hi float64, ok bool) {
	finite := Finite(values)
	if len(finite) == 0 {
		return 0, 0, false
	}
	sort.Float64s(finite)

	lo = Percentile(finite, LowerPercentile)
	hi = Percentile(finite, UpperPercentile)
	if lo == hi {
		lo, hi = floats.Min(finite), floats.Max(finite)
	}
	return lo, hi, true
}
