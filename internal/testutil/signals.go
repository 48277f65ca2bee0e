package testutil

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Linear returns a*x[i] + b for every x.
func Linear(x []float64, a, b float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = a*v + b
	}
	return out
}

// GaussianNoise generates zero-mean normal noise with a fixed seed.
func GaussianNoise(seed int64, sigma float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// GaussianPeak returns amplitude*exp(-(i-center)^2 / (2*width^2)) over length samples.
func GaussianPeak(length int, center, width, amplitude float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		d := (float64(i) - center) / width
		out[i] = amplitude * math.Exp(-0.5*d*d)
	}
	return out
}

// Add returns the element-wise sum of the given equal-length slices.
func Add(xs ...[]float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	out := make([]float64, len(xs[0]))
	for _, x := range xs {
		for i, v := range x {
			out[i] += v
		}
	}
	return out
}

// CumTrapz integrates y over x with the trapezoid rule, starting at zero.
func CumTrapz(y, x []float64) []float64 {
	out := make([]float64, len(y))
	for i := 1; i < len(y); i++ {
		out[i] = out[i-1] + 0.5*(y[i]+y[i-1])*(x[i]-x[i-1])
	}
	return out
}

// ChargeCurve is a synthetic constant-current charge trace in canonical units.
type ChargeCurve struct {
	T []float64 // s
	V []float64 // V
	I []float64 // A
	Q []float64 // Ah
}

// NewChargeCurve builds n samples over duration seconds with voltage rising
// linearly from v0 to v1, current = current + N(0, noise) and Q the running
// integral of current in amp-hours.
func NewChargeCurve(n int, duration, v0, v1, current, noise float64, seed int64) ChargeCurve {
	t := Linspace(0, duration, n)
	v := Linspace(v0, v1, n)
	i := Add(DC(current, n), GaussianNoise(seed, noise, n))
	q := CumTrapz(i, t)
	for k := range q {
		q[k] /= 3600
	}
	return ChargeCurve{T: t, V: v, I: i, Q: q}
}

// FirstDiffStd returns the standard deviation of the first difference of x,
// ignoring non-finite differences.
func FirstDiffStd(x []float64) float64 {
	d := make([]float64, 0, len(x))
	for i := 1; i < len(x); i++ {
		v := x[i] - x[i-1]
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			d = append(d, v)
		}
	}
	if len(d) < 2 {
		return 0
	}
	return stat.StdDev(d, nil)
}

// ArgMax returns the index of the largest finite element, or -1.
func ArgMax(x []float64) int {
	best := -1
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if best < 0 || v > x[best] {
			best = i
		}
	}
	return best
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
