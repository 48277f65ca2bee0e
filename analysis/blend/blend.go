package blend

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ica/cell/series"
	"github.com/cwbudde/algo-ica/dsp/core"
	"github.com/cwbudde/algo-ica/dsp/savgol"
	"github.com/cwbudde/algo-ica/stats/robust"
)

// ErrInsufficientValidRange is returned when no sign-consistent run is long
// enough to fit.
var ErrInsufficientValidRange = errors.New("blend: insufficient valid range")

// MinValidSamples is the shortest range ValidRange accepts after trimming.
const MinValidSamples = 5

// Default window fractions.
var (
	DefaultSmallFractions = []float64{0.02, 0.03, 0.04}
	DefaultLargeFractions = []float64{0.03, 0.04, 0.05, 0.06, 0.07}
)

// Region is the half-open sample range [Start, End).
type Region struct {
	Start, End int
}

// Len returns the number of samples in r.
func (r Region) Len() int { return max(r.End-r.Start, 0) }

// Interior returns the finite extent of values shrunk by guard samples on
// each side. The result is empty when nothing remains.
func Interior(values []float64, guard int) Region {
	first, last := -1, -1
	for i, v := range values {
		if core.IsFinite(v) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return Region{}
	}
	r := Region{Start: first + guard, End: last + 1 - guard}
	if r.End < r.Start {
		return Region{Start: r.Start, End: r.Start}
	}
	return r
}

// ValidRange finds the longest run of samples whose sign matches dir,
// bridging isolated single-sample flips, and trims guard samples from both
// ends of it.
func ValidRange(derivative []float64, dir series.Direction, guard int) (start, end int, err error) {
	n := len(derivative)
	want := dir.Sign()
	match := make([]bool, n)
	for i, v := range derivative {
		match[i] = core.IsFinite(v) && core.Sign(v) == want
	}

	bridged := make([]bool, n)
	copy(bridged, match)
	for i := 1; i < n-1; i++ {
		if !match[i] && match[i-1] && match[i+1] && core.IsFinite(derivative[i]) {
			bridged[i] = true
		}
	}

	bestStart, bestLen := 0, 0
	for i := 0; i < n; {
		if !bridged[i] {
			i++
			continue
		}
		j := i
		for j < n && bridged[j] {
			j++
		}
		if j-i > bestLen {
			bestStart, bestLen = i, j-i
		}
		i = j
	}

	start, end = bestStart+guard, bestStart+bestLen-guard
	if end-start < MinValidSamples {
		return 0, 0, fmt.Errorf("%w: longest %s run has %d samples, guard %d",
			ErrInsufficientValidRange, dir, bestLen, guard)
	}
	return start, end, nil
}

// Fit returns values with region replaced by the per-sample median of the
// raw segment and, for each fraction, the Savitzky-Golay fit of the segment
// and the reciprocal of the fit of its reciprocal. Windows are
// int(total*fraction) forced odd and narrowed to the region; windows not
// longer than order are skipped. It also reports how many windows were
// skipped.
func Fit(values []float64, region Region, total int, fractions []float64, order int) ([]float64, int) {
	out := core.Clone(values)
	region.Start = max(region.Start, 0)
	region.End = min(region.End, len(values))
	if region.Len() == 0 {
		return out, len(fractions)
	}

	seg := values[region.Start:region.End]
	recip := core.Reciprocal(nil, seg)
	views := [][]float64{seg}
	skipped := 0
	for _, f := range fractions {
		w := savgol.FitWindow(int(float64(total)*f), len(seg))
		direct, err := savgol.Filter(seg, w, order)
		if err != nil {
			skipped++
			continue
		}
		views = append(views, direct)
		if inv, err := savgol.Filter(recip, w, order); err == nil {
			views = append(views, core.Reciprocal(inv, inv))
		}
	}

	copy(out[region.Start:], robust.StackMedian(views))
	return out, skipped
}

// FitBothScales runs Fit with the small fractions over smallRegion and the
// large fractions over largeRegion.
func FitBothScales(values []float64, total int, small, large []float64, order int, smallRegion, largeRegion Region) (sm, lg []float64) {
	sm, _ = Fit(values, smallRegion, total, small, order)
	lg, _ = Fit(values, largeRegion, total, large, order)
	return sm, lg
}

// Confidence normalizes |reciprocal| by its largest finite magnitude in
// [start, end) and clips to [0,1]. Non-finite samples get 0.
func Confidence(reciprocal []float64, start, end int) []float64 {
	out := make([]float64, len(reciprocal))
	start = max(start, 0)
	end = min(end, len(reciprocal))
	if end <= start {
		return out
	}

	peak := robust.NaNMaxAbs(reciprocal[start:end])
	if math.IsNaN(peak) || peak == 0 {
		return out
	}
	for i, v := range reciprocal {
		if !core.IsFinite(v) {
			continue
		}
		out[i] = core.Clamp(math.Abs(v)/peak, 0, 1)
	}
	return out
}

// Blend returns small*(1-c) + large*c element-wise.
func Blend(small, large, confidence []float64) []float64 {
	n := min(len(small), len(large), len(confidence))
	weight := make([]float64, n)
	for i, c := range confidence[:n] {
		weight[i] = 1 - c
	}

	out := make([]float64, n)
	vecmath.MulBlock(out, small[:n], weight)
	mixed := make([]float64, n)
	vecmath.MulBlock(mixed, large[:n], confidence[:n])
	vecmath.AddBlockInPlace(out, mixed)
	return out
}
