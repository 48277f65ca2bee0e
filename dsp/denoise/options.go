package denoise

import "github.com/cwbudde/algo-ica/dsp/wavelet"

// ThresholdMode selects the shrinkage rule applied to detail bands.
type ThresholdMode int

const (
	// Soft shrinks coefficients toward zero.
	Soft ThresholdMode = iota
	// Hard zeroes small coefficients and keeps the rest.
	Hard
)

const (
	defaultPadding = 50
	// fallbackGuard is tried when the requested guard leaves too few samples.
	fallbackGuard = 10
)

type config struct {
	families []string
	offsets  []int
	padding  int
	mode     ThresholdMode
}

// Option configures a Denoiser.
type Option func(*config)

func defaultConfig() config {
	offsets := make([]int, 10)
	for i := range offsets {
		offsets[i] = i - 5
	}
	return config{
		families: wavelet.DefaultFamilies,
		offsets:  offsets,
		padding:  defaultPadding,
		mode:     Soft,
	}
}

// WithFamilies replaces the wavelet families of the ensemble.
func WithFamilies(names ...string) Option {
	return func(c *config) {
		c.families = append([]string(nil), names...)
	}
}

// WithOffsets replaces the circular shifts of the ensemble.
func WithOffsets(offsets ...int) Option {
	return func(c *config) {
		c.offsets = append([]int(nil), offsets...)
	}
}

// WithPadding sets the number of edge samples added on each side.
func WithPadding(n int) Option {
	return func(c *config) {
		c.padding = max(n, 0)
	}
}

// WithThresholdMode selects soft or hard thresholding.
func WithThresholdMode(m ThresholdMode) Option {
	return func(c *config) {
		c.mode = m
	}
}
