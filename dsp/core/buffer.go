package core

import "math"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Clone returns a copy of src. A nil src yields nil.
func Clone(src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// NaNs returns a slice of length n filled with NaN.
func NaNs(n int) []float64 {
	out := make([]float64, n)
	Fill(out, math.NaN())
	return out
}

// Fill sets all values in buf to v.
func Fill(buf []float64, v float64) {
	for i := range buf {
		buf[i] = v
	}
}

// PadEdge returns x extended by n copies of its first and last element on either side.
func PadEdge(x []float64, n int) []float64 {
	if len(x) == 0 || n <= 0 {
		return Clone(x)
	}
	out := make([]float64, len(x)+2*n)
	Fill(out[:n], x[0])
	copy(out[n:], x)
	Fill(out[n+len(x):], x[len(x)-1])
	return out
}

// Roll circularly shifts x by k positions into a new slice:
// out[(i+k) mod n] = x[i]. Negative k shifts left.
func Roll(x []float64, k int) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	k %= n
	if k < 0 {
		k += n
	}
	copy(out[k:], x[:n-k])
	copy(out[:k], x[n-k:])
	return out
}
