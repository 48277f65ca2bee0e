package segment

import (
	"slices"

	"github.com/cwbudde/algo-ica/cell/series"
	"github.com/cwbudde/algo-ica/cell/units"
)

// Channel names written by Categorize.
const (
	StateChannel = "state"
	CycleChannel = "cycle"
)

// DefaultCurrentThreshold is the current magnitude in amperes below which a
// sample counts as rest.
const DefaultCurrentThreshold = 0.001

// State is the process a sample belongs to.
type State int

const (
	Discharge State = -1
	Rest      State = 0
	Charge    State = 1
)

func (s State) String() string {
	switch s {
	case Charge:
		return "charge"
	case Discharge:
		return "discharge"
	default:
		return "rest"
	}
}

// Classify returns the state implied by a current sample. NaN is rest.
func Classify(current, threshold float64) State {
	switch {
	case current > threshold:
		return Charge
	case current < -threshold:
		return Discharge
	default:
		return Rest
	}
}

// Categorize adds the state and cycle channels to s. It fails without
// touching s when the current channel is absent. Running it twice yields
// the same channels.
func Categorize(s *series.Series, currentThreshold float64) error {
	current, ok := s.Channel(series.Current)
	if !ok {
		return &series.MissingChannelError{Channel: series.Current, Op: "categorize"}
	}

	state := make([]float64, len(current))
	cycle := make([]float64, len(current))
	count := 0
	prev := Rest
	for i, c := range current {
		st := Classify(c, currentThreshold)
		if st == Charge && (i == 0 || prev != Charge) {
			count++
		}
		state[i] = float64(st)
		cycle[i] = float64(max(count, 1))
		prev = st
	}

	if err := s.Update(StateChannel, units.Dimensionless(state)); err != nil {
		return err
	}
	return s.Update(CycleChannel, units.Dimensionless(cycle))
}

// Split partitions a categorized series by cycle number. Every sample lands
// in exactly one part and each part keeps the original sample order.
func Split(s *series.Series) (map[int]*series.Series, error) {
	cycle, ok := s.Channel(CycleChannel)
	if !ok {
		return nil, &series.MissingChannelError{Channel: CycleChannel, Op: "split"}
	}

	groups := make(map[int][]int)
	for i, c := range cycle {
		k := int(c)
		groups[k] = append(groups[k], i)
	}

	out := make(map[int]*series.Series, len(groups))
	for k, idx := range groups {
		out[k] = s.Select(idx)
	}
	return out, nil
}

// Cycles returns the cycle numbers of a Split result in ascending order.
func Cycles(parts map[int]*series.Series) []int {
	keys := make([]int, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Segment is a contiguous run of samples sharing state and cycle.
// End is exclusive.
type Segment struct {
	State State
	Cycle int
	Start int
	End   int
}

// Len returns the number of samples in the run.
func (g Segment) Len() int { return g.End - g.Start }

// Segments returns the runs of a categorized series in sample order.
func Segments(s *series.Series) ([]Segment, error) {
	if err := s.Require("segments", StateChannel, CycleChannel); err != nil {
		return nil, err
	}
	state := s.Values(StateChannel)
	cycle := s.Values(CycleChannel)

	var runs []Segment
	for i := range state {
		st, cy := State(state[i]), int(cycle[i])
		if n := len(runs); n > 0 && runs[n-1].State == st && runs[n-1].Cycle == cy {
			runs[n-1].End = i + 1
			continue
		}
		runs = append(runs, Segment{State: st, Cycle: cy, Start: i, End: i + 1})
	}
	return runs, nil
}
