package series

import (
	"math"

	"github.com/cwbudde/algo-ica/stats/robust"
)

// Direction is the dominant process of a trace.
type Direction int

const (
	Charge Direction = iota
	Discharge
)

// Sign returns +1 for Charge and -1 for Discharge.
func (d Direction) Sign() float64 {
	if d == Discharge {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Discharge {
		return "discharge"
	}
	return "charge"
}

// minMeanCurrent is the mean current below which the current sign is ignored.
const minMeanCurrent = 1e-6

// detectDirection compares the first and last finite voltage, then falls back
// to the sign of the mean current, then to Charge.
func detectDirection(v, i []float64) Direction {
	first, last := math.NaN(), math.NaN()
	finite := 0
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if finite == 0 {
			first = x
		}
		last = x
		finite++
	}
	if finite >= 2 {
		if last-first > 0 {
			return Charge
		}
		return Discharge
	}

	if mean := robust.NaNMean(i); !math.IsNaN(mean) && math.Abs(mean) > minMeanCurrent {
		if mean > 0 {
			return Charge
		}
		return Discharge
	}
	return Charge
}
