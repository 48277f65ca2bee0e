package smooth

import (
	"math"

	"github.com/cwbudde/algo-ica/dsp/conv"
	"github.com/cwbudde/algo-ica/dsp/core"
)

// DefaultTruncate is the kernel half-width in standard deviations.
const DefaultTruncate = 4.0

// GaussianKernel returns a normalized Gaussian kernel of radius
// int(truncate*sigma + 0.5). sigma <= 0 yields the identity kernel.
func GaussianKernel(sigma, truncate float64) []float64 {
	if !(sigma > 0) {
		return []float64{1}
	}
	radius := int(truncate*sigma + 0.5)
	k := make([]float64, 2*radius+1)
	var sum float64
	for i := range k {
		x := float64(i - radius)
		k[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// Gaussian smooths values with a Gaussian of standard deviation sigma
// samples. The signal is extended by half-sample reflection
// (d c b a | a b c d | d c b a), so constants are preserved at the ends.
func Gaussian(values []float64, sigma float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, conv.ErrEmptyInput
	}
	kernel := GaussianKernel(sigma, DefaultTruncate)
	if len(kernel) == 1 {
		return core.Clone(values), nil
	}

	radius := len(kernel) / 2
	n := len(values)
	padded := make([]float64, n+2*radius)
	for i := range padded {
		padded[i] = values[reflect(i-radius, n)]
	}

	if core.AllFinite(values) {
		return conv.ConvolveMode(padded, kernel, conv.ModeValid)
	}
	full, err := conv.Direct(padded, kernel)
	if err != nil {
		return nil, err
	}
	return core.Clone(full[len(kernel)-1 : len(padded)]), nil
}

// reflect maps any index onto [0, n) with half-sample symmetric extension.
func reflect(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
