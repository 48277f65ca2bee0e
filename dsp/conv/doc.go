// Package conv provides the linear convolution used by the smoothing stages.
//
// Two strategies are available:
//
//   - Direct convolution: O(N*M) time-domain convolution, best for short kernels
//   - Overlap-add (OLA): FFT-based block convolution for long kernels
//
// [Convolve] picks between them by kernel length. Smoothing kernels derived
// from a fraction of the curve length (Savitzky-Golay windows of several
// thousand samples on long traces) land on the FFT path; short Gaussian
// kernels stay on the direct path.
//
// # Non-finite samples
//
// An FFT spreads a single NaN over the whole block. [Smooth] therefore routes
// signals containing NaN or Inf through direct convolution, where a bad
// sample only contaminates the output positions its kernel actually covers.
//
// # Usage
//
//	full, err := conv.Convolve(signal, kernel)           // len(signal)+len(kernel)-1
//	same, err := conv.ConvolveMode(signal, kernel, conv.ModeSame)
//	smoothed, err := conv.Smooth(signal, kernel)         // same mode, NaN-local
//
// For repeated convolution with the same kernel, create a reusable convolver:
//
//	c, err := conv.NewOverlapAdd(kernel, 0)
//	result, err := c.Process(signal)
package conv
