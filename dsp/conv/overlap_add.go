package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// minBlock is the smallest input block an OverlapAdd uses.
const minBlock = 256

// OverlapAdd convolves signals with a fixed real kernel by FFT overlap-add.
//
// Two consecutive input blocks share one transform: the first goes into the
// real part, the second into the imaginary part. The kernel is real, so the
// two convolutions come back separated in the real and imaginary parts of
// the inverse transform.
type OverlapAdd struct {
	spectrum []complex128
	taps     int
	block    int
	plan     *algofft.Plan[complex128]
	work     []complex128
}

// NewOverlapAdd prepares kernel for repeated convolution. A blockSize of
// zero picks the next power of two of the kernel length, at least 256.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 {
		blockSize = max(nextPowerOf2(len(kernel)), minBlock)
	}

	size := nextPowerOf2(blockSize + len(kernel) - 1)
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("conv: fft plan of size %d: %w", size, err)
	}

	spectrum := make([]complex128, size)
	for i, v := range kernel {
		spectrum[i] = complex(v, 0)
	}
	if err := plan.Forward(spectrum, spectrum); err != nil {
		return nil, fmt.Errorf("conv: kernel transform: %w", err)
	}

	return &OverlapAdd{
		spectrum: spectrum,
		taps:     len(kernel),
		block:    blockSize,
		plan:     plan,
		work:     make([]complex128, size),
	}, nil
}

// FFTSize returns the transform length.
func (oa *OverlapAdd) FFTSize() int { return len(oa.work) }

// Process returns the full linear convolution of input with the kernel,
// len(input)+len(kernel)-1 samples. It is not safe for concurrent use.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, len(input)+oa.taps-1)
	for start := 0; start < len(input); start += 2 * oa.block {
		re := input[start:min(start+oa.block, len(input))]
		var im []float64
		if next := start + oa.block; next < len(input) {
			im = input[next:min(next+oa.block, len(input))]
		}

		clear(oa.work)
		for i, v := range re {
			oa.work[i] = complex(v, 0)
		}
		for i, v := range im {
			oa.work[i] += complex(0, v)
		}

		if err := oa.plan.Forward(oa.work, oa.work); err != nil {
			return nil, fmt.Errorf("conv: forward transform: %w", err)
		}
		for i, k := range oa.spectrum {
			oa.work[i] *= k
		}
		if err := oa.plan.Inverse(oa.work, oa.work); err != nil {
			return nil, fmt.Errorf("conv: inverse transform: %w", err)
		}

		oa.accumulate(out, start, len(re), false)
		if len(im) > 0 {
			oa.accumulate(out, start+oa.block, len(im), true)
		}
	}
	return out, nil
}

// accumulate adds the real or imaginary part of the work buffer, covering a
// block of n input samples, into out at offset.
func (oa *OverlapAdd) accumulate(out []float64, offset, n int, imaginary bool) {
	span := min(n+oa.taps-1, len(out)-offset)
	for i := range span {
		if imaginary {
			out[offset+i] += imag(oa.work[i])
		} else {
			out[offset+i] += real(oa.work[i])
		}
	}
}

// OverlapAddConvolve convolves signal with kernel using a throwaway
// OverlapAdd.
func OverlapAddConvolve(signal, kernel []float64) ([]float64, error) {
	oa, err := NewOverlapAdd(kernel, 0)
	if err != nil {
		return nil, err
	}
	return oa.Process(signal)
}
