package slope

import (
	"math"

	"github.com/cwbudde/algo-ica/dsp/core"
	"github.com/cwbudde/algo-ica/stats/robust"
)

// ratioEps is the smallest |dx| Derivative divides by.
const ratioEps = 1e-12

// Estimate returns the median slope per sample over all windows up to
// maxWindow samples. Values of maxWindow below 1 are treated as 1.
func Estimate(values []float64, maxWindow int) []float64 {
	med, _ := EstimateAll(values, maxWindow)
	return med
}

// EstimateAll returns the per-index median together with every individual
// window estimate. all[w] uses half-width w.
func EstimateAll(values []float64, maxWindow int) (median []float64, all [][]float64) {
	n := len(values)
	windows := halfWidths(maxWindow)
	if n == 0 {
		return []float64{}, make([][]float64, windows)
	}

	m := midpoints(values)
	all = make([][]float64, windows)
	for j := range windows {
		est := core.NaNs(n)
		width := float64(2*j + 1)
		for x := j + 1; x <= n-j-2; x++ {
			est[x] = (m[x+j+1] - m[x-j]) / width
		}
		all[j] = est
	}

	median = robust.StackMedian(all)
	jmax := windows - 1
	for x := range median {
		if x < jmax+1 || x > n-jmax-2 {
			median[x] = math.NaN()
		}
	}
	return median, all
}

// Derivative returns dy/dx with both slopes estimated per sample, which keeps
// the result per unit of x under uneven spacing. Near-zero |dx| gives NaN.
func Derivative(y, x []float64, maxWindow int) []float64 {
	dy := Estimate(y, maxWindow)
	dx := Estimate(x, maxWindow)
	out := make([]float64, len(dy))
	for i := range out {
		if i >= len(dx) {
			out[i] = math.NaN()
			continue
		}
		out[i] = core.Ratio(dy[i], dx[i], ratioEps)
	}
	return out
}

// WindowSamples converts a window span in seconds into a sample count for
// spacing dt. The result is at least 1.
func WindowSamples(seconds, dt float64) int {
	if !(dt > 0) || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 1
	}
	w := seconds / dt
	if math.IsInf(w, 0) || w < 1 {
		return 1
	}
	return int(w)
}

// Edge returns the number of leading (and trailing) samples Estimate leaves
// undefined for maxWindow.
func Edge(maxWindow int) int {
	return halfWidths(maxWindow)
}

// halfWidths counts the even window lengths in [0, maxWindow).
func halfWidths(maxWindow int) int {
	if maxWindow < 1 {
		maxWindow = 1
	}
	return (maxWindow + 1) / 2
}

// midpoints interpolates values onto the half-sample grid, padding each end
// with its edge value. The result has len(values)+1 points.
func midpoints(values []float64) []float64 {
	n := len(values)
	m := make([]float64, n+1)
	m[0] = values[0]
	m[n] = values[n-1]
	for k := 1; k < n; k++ {
		m[k] = 0.5 * (values[k-1] + values[k])
	}
	return m
}
