// Package savgol implements the Savitzky-Golay smoothing filter.
//
// Coefficients are the first row of the least-squares pseudo-inverse of the
// window's Vandermonde matrix, solved with a QR factorization. The interior
// of the signal is convolved with them; the first and last half-windows are
// replaced by a polynomial fitted to the first and last full window, which
// keeps polynomials up to the filter order intact across the whole range.
package savgol
