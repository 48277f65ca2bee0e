// Package blend produces presentation-quality incremental-capacity curves by
// mixing a peak-preserving small-window fit with a noise-suppressing
// large-window fit.
//
// Both fits are medians over several Savitzky-Golay views of the curve: the
// curve itself and the reciprocal of the smoothed reciprocal, at a set of
// window lengths given as fractions of the curve length. The large-window fit
// is restricted to the sign-consistent part of the curve found by ValidRange.
// Confidence derives a [0,1] weight from the reciprocal curve and Blend mixes
// the two fits with it.
package blend
