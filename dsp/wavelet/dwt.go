package wavelet

import "math"

// Coeffs holds a multilevel decomposition. Details are ordered from the
// coarsest level to the finest, so the last entry is the first-level detail.
type Coeffs struct {
	Approx  []float64
	Details [][]float64

	// lengths[k] is the signal length entering level k (finest first).
	lengths []int
}

// Levels returns the number of detail bands.
func (c Coeffs) Levels() int { return len(c.Details) }

// Finest returns the first-level detail band, or nil for a zero-level
// decomposition.
func (c Coeffs) Finest() []float64 {
	if len(c.Details) == 0 {
		return nil
	}
	return c.Details[len(c.Details)-1]
}

// MaxLevel returns ⌊log2(n/(filterLen-1))⌋, the deepest useful level for a
// signal of n samples, or 0 when none fits.
func MaxLevel(n, filterLen int) int {
	if n < 1 || filterLen < 2 || n < filterLen-1 {
		return 0
	}
	return int(math.Floor(math.Log2(float64(n) / float64(filterLen-1))))
}

// Decompose runs level steps of the periodized DWT on x. level is capped at
// MaxLevel; a negative level means MaxLevel. x is not modified.
func Decompose(x []float64, w *Wavelet, level int) Coeffs {
	limit := MaxLevel(len(x), w.Length())
	if level < 0 || level > limit {
		level = limit
	}

	approx := clone(x)
	c := Coeffs{}
	details := make([][]float64, 0, level)
	for range level {
		if len(approx) < 2 {
			break
		}
		c.lengths = append(c.lengths, len(approx))
		if len(approx)%2 == 1 {
			approx = append(approx, approx[len(approx)-1])
		}
		a, d := analyze(approx, w)
		details = append(details, d)
		approx = a
	}

	c.Approx = approx
	c.Details = make([][]float64, len(details))
	for i, d := range details {
		c.Details[len(details)-1-i] = d
	}
	return c
}

// Reconstruct inverts Decompose. Detail bands may have been modified in
// place; band lengths must be unchanged.
func Reconstruct(c Coeffs, w *Wavelet) []float64 {
	x := clone(c.Approx)
	levels := len(c.Details)
	for k := range levels {
		d := c.Details[k]
		x = synthesize(x, d, w)
		if n := c.lengths[levels-1-k]; len(x) > n {
			x = x[:n]
		}
	}
	return x
}

// analyze performs one periodized analysis step on an even-length signal.
func analyze(x []float64, w *Wavelet) (a, d []float64) {
	n := len(x)
	half := n / 2
	a = make([]float64, half)
	d = make([]float64, half)
	for m := range half {
		a[m] = circularTap(x, w.h0, 2*m)
		d[m] = circularTap(x, w.h1, 2*m)
	}
	return a, d
}

// circularTap returns sum_k h[k] x[(pos-k) mod n].
func circularTap(x []float64, h poly, pos int) float64 {
	n := len(x)
	var sum float64
	for i, tap := range h.c {
		sum += tap * x[mod(pos-(h.lo+i), n)]
	}
	return sum
}

// synthesize performs one periodized synthesis step.
func synthesize(a, d []float64, w *Wavelet) []float64 {
	n := 2 * len(a)
	out := make([]float64, n)
	scatter(out, a, w.f0)
	scatter(out, d, w.f1)
	return out
}

func scatter(out, coeffs []float64, f poly) {
	n := len(out)
	for m, v := range coeffs {
		if v == 0 {
			continue
		}
		for i, tap := range f.c {
			out[mod(2*m+f.lo+i, n)] += tap * v
		}
	}
}

func mod(k, n int) int {
	r := k % n
	if r < 0 {
		r += n
	}
	return r
}
