// Package slope estimates per-sample slopes of noisy, densely sampled curves.
//
// The estimator resamples the curve on the half-sample grid, takes centered
// differences over a ladder of window half-widths and reduces them with a
// per-index median. Linear data is reproduced exactly for any window count;
// samples closer to either end than the widest window are NaN.
package slope
