// Package denoise removes high-frequency noise from smooth curves with an
// ensemble of wavelet shrinkage estimates.
//
// Each estimate edge-pads the signal, circularly shifts it by a small offset,
// soft-thresholds every detail band of a multilevel biorthogonal DWT with the
// universal threshold σ·√(2·ln n) scaled by a strength factor, reconstructs
// and shifts back. Estimates are combined with a per-sample median over the
// offsets and then over the wavelet families, which suppresses the
// shift-variance artifacts of a single transform.
package denoise
