// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "math"

// Round2 rounds v to two decimal places. Used for display averages so the
// stored sums stay exact and only the presented value is rounded.
//
// Example:
//
//	Round2(4.16666) // 4.17
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundPercent converts a ratio in [0,1] to a whole percentage, rounding to
// the nearest integer.
//
// Example:
//
//	RoundPercent(0.834) // 83
func RoundPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

// PercentChange returns the percent change from previous to current,
// rounded to the nearest integer: round(((current - previous) / |previous|) * 100).
//
// Callers must handle previous == 0 themselves; dividing by zero here would
// produce +/-Inf and NaN rounding artifacts.
func PercentChange(current, previous float64) int {
	return int(math.Round((current - previous) / math.Abs(previous) * 100))
}
