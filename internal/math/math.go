package math

import (
	"math"
	"strconv"
)

// Format formats a float with a fixed precision.
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// Clamp restricts f to the interval [lo, hi].
func Clamp(f, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, f))
}

// Outside checks if f lies outside of [lo, hi].
func Outside(f, lo, hi float64) bool {
	return f < lo || f > hi
}
