// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/constants"
)

// RoundPoints rounds a projected-points value to one decimal, the precision
// the scoring model is quoted in.
func RoundPoints(val float64) float64 {
	return math.Round(val*10) / 10
}

// RoundPrice rounds a price to one decimal, i.e. to 0.1m units.
func RoundPrice(val float64) float64 {
	return math.Round(val*10) / 10
}

// WithinTolerance checks if two values are within a specified tolerance.
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// NearlyEqual checks points equality within the standard tolerance.
func NearlyEqual(val1, val2 float64) bool {
	return WithinTolerance(val1, val2, constants.PointsTolerance)
}

// Max returns the maximum of two float64 values.
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Min returns the minimum of two float64 values.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// MaxInt returns the maximum of two int values.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
