package robust

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// madScale converts a median absolute deviation into a normal standard deviation.
const madScale = 0.6745

// Median returns the median of x. Returns NaN for an empty slice.
// NaN elements are not filtered; use NaNMedian for that.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	buf := make([]float64, len(x))
	copy(buf, x)
	return medianInPlace(buf)
}

// NaNMedian returns the median of the finite elements of x, or NaN if none.
func NaNMedian(x []float64) float64 {
	buf := make([]float64, 0, len(x))
	buf = appendFinite(buf, x)
	if len(buf) == 0 {
		return math.NaN()
	}
	return medianInPlace(buf)
}

// MAD returns the median absolute deviation of the finite elements of x
// around their median.
func MAD(x []float64) float64 {
	m := NaNMedian(x)
	if math.IsNaN(m) {
		return math.NaN()
	}
	dev := make([]float64, 0, len(x))
	for _, v := range x {
		if isFinite(v) {
			dev = append(dev, math.Abs(v-m))
		}
	}
	return medianInPlace(dev)
}

// NoiseSigma estimates the standard deviation of Gaussian noise in x from
// its median absolute deviation.
func NoiseSigma(x []float64) float64 {
	return MAD(x) / madScale
}

// NaNMax returns the largest finite element of x, or NaN if none.
func NaNMax(x []float64) float64 {
	buf := appendFinite(make([]float64, 0, len(x)), x)
	if len(buf) == 0 {
		return math.NaN()
	}
	return floats.Max(buf)
}

// NaNMaxAbs returns the largest finite |x[i]|, or NaN if none.
func NaNMaxAbs(x []float64) float64 {
	best := math.NaN()
	for _, v := range x {
		if !isFinite(v) {
			continue
		}
		if a := math.Abs(v); math.IsNaN(best) || a > best {
			best = a
		}
	}
	return best
}

// NaNMean returns the mean of the finite elements of x, or NaN if none.
func NaNMean(x []float64) float64 {
	buf := appendFinite(make([]float64, 0, len(x)), x)
	if len(buf) == 0 {
		return math.NaN()
	}
	return stat.Mean(buf, nil)
}

// StackMedian reduces equal-length rows to their per-index NaN-median.
// Non-finite entries are ignored; an index with no finite entry is NaN.
// Rows shorter than the first row contribute nothing beyond their length.
func StackMedian(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	n := len(rows[0])
	out := make([]float64, n)
	col := make([]float64, 0, len(rows))
	for i := 0; i < n; i++ {
		col = col[:0]
		for _, r := range rows {
			if i < len(r) && isFinite(r[i]) {
				col = append(col, r[i])
			}
		}
		if len(col) == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = medianInPlace(col)
	}
	return out
}

// RoundSignificant rounds x to the given number of significant digits.
func RoundSignificant(x float64, digits int) float64 {
	if x == 0 || !isFinite(x) || digits <= 0 {
		return x
	}
	exp := math.Ceil(math.Log10(math.Abs(x)))
	scale := math.Pow(10, float64(digits)-exp)
	return math.Round(x*scale) / scale
}

func medianInPlace(buf []float64) float64 {
	slices.Sort(buf)
	n := len(buf)
	if n%2 == 1 {
		return buf[n/2]
	}
	return 0.5 * (buf[n/2-1] + buf[n/2])
}

func appendFinite(dst, x []float64) []float64 {
	for _, v := range x {
		if isFinite(v) {
			dst = append(dst, v)
		}
	}
	return dst
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
