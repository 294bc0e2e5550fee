// Package metrics summarizes a scoring pass: the spread of weighted scores
// and how much each metric contributed to them.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// StdDev computes the sample standard deviation.
// Returns 0 when fewer than 2 values are available.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// Median returns the empirical median: the lower middle value when len(values)
// is even. values is not reordered.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// Range returns the minimum and maximum of values, or (0, 0) when empty.
func Range(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return floats.Min(values), floats.Max(values)
}

// ConfidenceInterval95 returns the 95% confidence interval (low, high) of
// the mean using the normal approximation (z=1.96). Returns (mean, mean)
// when fewer than 2 data points are available.
func ConfidenceInterval95(values []float64) (float64, float64) {
	m := Mean(values)
	if len(values) < 2 {
		return m, m
	}
	margin := 1.96 * stat.StdErr(StdDev(values), float64(len(values)))
	return m - margin, m + margin
}
