package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
// NaN is passed through unchanged.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// AllFinite reports whether every element of x is finite.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if !IsFinite(v) {
			return false
		}
	}

	return true
}

// CountFinite returns the number of finite elements in x.
func CountFinite(x []float64) int {
	n := 0
	for _, v := range x {
		if IsFinite(v) {
			n++
		}
	}

	return n
}

// FiniteIndices returns the positions of all finite elements of x in ascending order.
func FiniteIndices(x []float64) []int {
	idx := make([]int, 0, len(x))
	for i, v := range x {
		if IsFinite(v) {
			idx = append(idx, i)
		}
	}

	return idx
}

// Ratio returns num/den, or NaN when |den| <= eps or the quotient is not finite.
// A non-positive eps selects the package default.
func Ratio(num, den, eps float64) float64 {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	if math.IsNaN(den) || math.Abs(den) <= eps {
		return math.NaN()
	}

	q := num / den
	if !IsFinite(q) {
		return math.NaN()
	}

	return q
}

// Reciprocal returns 1/x element-wise into dst, mapping singular points to NaN.
// dst may alias x.
func Reciprocal(dst, x []float64) []float64 {
	dst = EnsureLen(dst, len(x))
	for i, v := range x {
		dst[i] = Ratio(1, v, 0)
	}

	return dst
}

// Sign returns -1, 0 or +1 for negative, zero and positive x and NaN for NaN.
func Sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
