package denoise

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-ica/dsp/core"
	"github.com/cwbudde/algo-ica/dsp/wavelet"
	"github.com/cwbudde/algo-ica/stats/robust"
)

// ErrNoEnsemble is returned when no family or no offset is configured.
var ErrNoEnsemble = errors.New("denoise: empty ensemble")

// Denoiser is an immutable, reusable ensemble configuration.
type Denoiser struct {
	wavelets []*wavelet.Wavelet
	offsets  []int
	padding  int
	mode     ThresholdMode
}

// New builds a Denoiser. Without options it uses the bior/rbio 2.6, 2.8,
// 3.7 and 3.9 families, offsets -5..4 and 50 samples of padding.
func New(opts ...Option) (*Denoiser, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.families) == 0 || len(cfg.offsets) == 0 {
		return nil, ErrNoEnsemble
	}

	d := &Denoiser{offsets: cfg.offsets, padding: cfg.padding, mode: cfg.mode}
	for _, name := range cfg.families {
		w, err := wavelet.New(name)
		if err != nil {
			return nil, fmt.Errorf("denoise: %w", err)
		}
		d.wavelets = append(d.wavelets, w)
	}
	return d, nil
}

var defaultDenoiser = func() *Denoiser {
	d, err := New()
	if err != nil {
		panic(err)
	}
	return d
}()

// Denoise runs the default ensemble on values.
func Denoise(values []float64, strength float64) []float64 {
	return defaultDenoiser.Denoise(values, strength)
}

// DenoiseValid runs the default ensemble on the finite samples of values.
func DenoiseValid(values []float64, strength float64, guard int) []float64 {
	return defaultDenoiser.DenoiseValid(values, strength, guard)
}

// Guard returns the guard band used for a channel of n samples:
// 1 + 0.25% of n.
func Guard(n int) int {
	return 1 + int(float64(n)*0.0025)
}

// Denoise returns a denoised copy of values. The first sample is passed
// through unchanged. values must be finite; see DenoiseValid otherwise.
func (d *Denoiser) Denoise(values []float64, strength float64) []float64 {
	out := core.Clone(values)
	if len(values) < 2 {
		return out
	}

	padded := core.PadEdge(values[1:], d.padding)
	scale := math.Sqrt(2*math.Log(float64(len(values)))) * strength

	families := make([][]float64, 0, len(d.wavelets))
	rolls := make([][]float64, len(d.offsets))
	for _, w := range d.wavelets {
		for k, off := range d.offsets {
			rolls[k] = core.Roll(d.shrink(core.Roll(padded, off), w, scale), -off)
		}
		families = append(families, robust.StackMedian(rolls))
	}

	est := robust.StackMedian(families)
	copy(out[1:], est[d.padding:len(est)-d.padding])
	return out
}

// shrink thresholds every detail band of x.
func (d *Denoiser) shrink(x []float64, w *wavelet.Wavelet, scale float64) []float64 {
	c := wavelet.Decompose(x, w, -1)
	if c.Levels() == 0 {
		return x
	}

	threshold := robust.NoiseSigma(c.Finest()) * scale
	for _, band := range c.Details {
		switch d.mode {
		case Hard:
			wavelet.HardThreshold(band, threshold)
		default:
			wavelet.SoftThreshold(band, threshold)
		}
	}
	return wavelet.Reconstruct(c, w)
}

// DenoiseValid denoises the finite samples of values as one contiguous
// signal, leaving guard finite samples at each end and every non-finite
// sample untouched. When guard leaves fewer than two samples a guard of 10
// and then no guard are tried.
func (d *Denoiser) DenoiseValid(values []float64, strength float64, guard int) []float64 {
	out := core.Clone(values)
	idx := core.FiniteIndices(values)

	for _, g := range []int{guard, fallbackGuard, 0} {
		g = max(g, 0)
		if len(idx)-2*g < 2 {
			continue
		}
		sel := idx[g : len(idx)-g]
		buf := make([]float64, len(sel))
		for i, k := range sel {
			buf[i] = values[k]
		}
		for i, v := range d.Denoise(buf, strength) {
			out[sel[i]] = v
		}
		return out
	}
	return out
}
