package wavelet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultFamilies are the families used for ensemble denoising.
var DefaultFamilies = []string{
	"bior2.6", "bior2.8", "bior3.7", "bior3.9",
	"rbio2.6", "rbio2.8", "rbio3.7", "rbio3.9",
}

// Wavelet is a biorthogonal filter bank. Analysis uses h0/h1, synthesis f0/f1.
type Wavelet struct {
	name           string
	h0, h1, f0, f1 poly
}

// New builds the wavelet named like "bior3.7" or "rbio2.6".
func New(name string) (*Wavelet, error) {
	kind, orders, ok := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ".")
	if !ok || len(kind) < 5 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	prefix, nStr := kind[:4], kind[4:]
	if prefix != "bior" && prefix != "rbio" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	n, err1 := strconv.Atoi(nStr)
	m, err2 := strconv.Atoi(orders)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	if n < 1 || m < 1 || (n+m)%2 != 0 {
		return nil, fmt.Errorf("%w: %d.%d", ErrInvalidOrder, n, m)
	}

	spline, dual := splinePair(n, m)
	w := &Wavelet{name: prefix + strconv.Itoa(n) + "." + strconv.Itoa(m)}
	if prefix == "bior" {
		w.h0, w.f0 = dual, spline
	} else {
		w.h0, w.f0 = spline, dual
	}
	w.h1 = w.f0.shift(1).modulate(1)
	w.f1 = w.h0.shift(-1).modulate(1)
	return w, nil
}

// MustNew is like New but panics on error.
func MustNew(name string) *Wavelet {
	w, err := New(name)
	if err != nil {
		panic(err)
	}
	return w
}

// Name returns the canonical family name.
func (w *Wavelet) Name() string { return w.name }

// Length returns the filter length used for level limits: the longest
// filter rounded up to an even tap count.
func (w *Wavelet) Length() int {
	l := max(len(w.h0.c), len(w.f0.c), len(w.h1.c), len(w.f1.c))
	if l%2 == 1 {
		l++
	}
	return l
}

// DecLo returns the analysis lowpass taps and the index of the first tap.
func (w *Wavelet) DecLo() ([]float64, int) { return clone(w.h0.c), w.h0.lo }

// RecLo returns the synthesis lowpass taps and the index of the first tap.
func (w *Wavelet) RecLo() ([]float64, int) { return clone(w.f0.c), w.f0.lo }

// splinePair returns the B-spline lowpass of order n and its dual of order m,
// both scaled to sum to √2.
func splinePair(n, m int) (spline, dual poly) {
	cos2 := poly{c: []float64{0.25, 0.5, 0.25}, lo: -1}
	sin2 := poly{c: []float64{-0.25, 0.5, -0.25}, lo: -1}

	l := (n + m) / 2
	q := constPoly(0)
	for p := range l {
		q = q.add(sin2.pow(p).scale(binomial(l-1+p, p)))
	}

	if n%2 == 0 {
		spline = cos2.pow(n / 2)
		dual = cos2.pow(m / 2)
	} else {
		spline = poly{c: []float64{0.5, 0.5}, lo: 0}.pow(n).shift(-(n - 1) / 2)
		dual = poly{c: []float64{0.5, 0.5}, lo: -1}.pow(m).shift((m - 1) / 2)
	}

	return spline.scale(math.Sqrt2), dual.mul(q).scale(math.Sqrt2)
}

func binomial(n, k int) float64 {
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return r
}

func clone(x []float64) []float64 {
	return append([]float64(nil), x...)
}
