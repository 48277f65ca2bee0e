// Package ica derives incremental-capacity curves (dV/dQ and dQ/dV) from a
// canonical cycler series.
//
// Pipeline.Run executes a fixed sequence of stages:
//
//	categorize → slope(V) → slope(Q) → denoise(dV/dt) → denoise(dQ/dt)
//	→ ratio → denoise(ratio) → valid range → fit both scales → blend
//
// Every stage writes new channels into the series and never rewrites an
// earlier one, so intermediate results stay available for inspection.
// Recoverable conditions (no current channel, an unusable valid range,
// windows too short to fit) are logged and reported in the Result instead of
// failing the run.
package ica
