package series

import (
	"fmt"
	"math"
	"regexp"
	"slices"

	"github.com/cwbudde/algo-ica/cell/table"
	"github.com/cwbudde/algo-ica/cell/units"
	"github.com/cwbudde/algo-ica/stats/robust"
)

// Canonical channel names.
const (
	Time        = "t"
	Voltage     = "V"
	Current     = "I"
	Capacity    = "Q"
	Temperature = "T"
)

// dtDigits is the number of significant digits kept when rounding intervals.
const dtDigits = 4

type channelKey struct {
	name    string
	pattern *regexp.Regexp
	dim     units.Dimension
}

var channelKeys = []channelKey{
	{Time, regexp.MustCompile(`(?i)(Time|시간)`), units.Time},
	{Voltage, regexp.MustCompile(`(?i)(Voltage|전압|전위)`), units.Voltage},
	{Current, regexp.MustCompile(`(?i)(Current|전류)`), units.Current},
	{Capacity, regexp.MustCompile(`(?i)(Capacity|용량)`), units.Charge},
	{Temperature, regexp.MustCompile(`(?i)(Temp|온도)`), units.Temperature},
}

var unitPattern = regexp.MustCompile(`\((.*?)\)`)

// Series holds index-aligned channels of equal length with unit metadata.
type Series struct {
	raw     *table.Table
	n       int
	names   []string
	values  map[string][]float64
	units   map[string]units.Unit
	sources map[string]string
	derived []string

	dt  float64
	dir Direction
}

// Construct resolves the channels of raw into canonical units.
// The raw table is retained, not copied.
func Construct(raw *table.Table) (*Series, error) {
	if raw == nil {
		return nil, ErrNilTable
	}

	s := &Series{
		raw:     raw,
		n:       raw.Len(),
		values:  make(map[string][]float64),
		units:   make(map[string]units.Unit),
		sources: make(map[string]string),
	}

	for _, key := range channelKeys {
		for _, col := range raw.Columns() {
			if !key.pattern.MatchString(col.Name) {
				continue
			}
			q := units.NewQuantity(col.Values, headerUnit(col.Name, key.dim)).Canonical()
			s.set(key.name, q.Values, q.Unit)
			s.sources[key.name] = col.Name
			break
		}
	}

	s.dt = spacing(s.TimeAxis())
	s.dir = detectDirection(s.values[Voltage], s.values[Current])

	return s, nil
}

// headerUnit parses the parenthesised unit of a header, falling back to the
// canonical unit of dim when absent or unknown.
func headerUnit(header string, dim units.Dimension) units.Unit {
	m := unitPattern.FindStringSubmatch(header)
	if m == nil {
		return units.CanonicalFor(dim)
	}
	u, err := units.ParseFor(m[1], dim)
	if err != nil {
		return units.CanonicalFor(dim)
	}
	return u
}

// spacing is the median of successive intervals of axis, each rounded to
// dtDigits significant digits. Returns 1 when no positive interval exists.
func spacing(axis []float64) float64 {
	if len(axis) < 2 {
		return 1
	}
	diffs := make([]float64, 0, len(axis)-1)
	for i := 1; i < len(axis); i++ {
		diffs = append(diffs, robust.RoundSignificant(axis[i]-axis[i-1], dtDigits))
	}
	dt := robust.RoundSignificant(robust.NaNMedian(diffs), dtDigits)
	if math.IsNaN(dt) || dt <= 0 {
		return 1
	}
	return dt
}

// Len returns the number of samples.
func (s *Series) Len() int { return s.n }

// DT returns the robust sample spacing in seconds.
func (s *Series) DT() float64 { return s.dt }

// Direction returns the dominant process detected at construction.
func (s *Series) Direction() Direction { return s.dir }

// Raw returns the source table.
func (s *Series) Raw() *table.Table { return s.raw }

// Source returns the raw column a canonical channel was read from.
func (s *Series) Source(name string) (string, bool) {
	col, ok := s.sources[name]
	return col, ok
}

// Names returns the channel names in insertion order.
func (s *Series) Names() []string {
	return slices.Clone(s.names)
}

// Has reports whether the named channel exists.
func (s *Series) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Channel returns the stored values of a channel. The slice is shared with
// the series and must not be modified; use Update instead.
func (s *Series) Channel(name string) ([]float64, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Values is like Channel but returns nil for absent channels.
func (s *Series) Values(name string) []float64 {
	return s.values[name]
}

// Unit returns the unit of a channel, or the zero Unit when it is absent or
// dimensionless.
func (s *Series) Unit(name string) units.Unit {
	return s.units[name]
}

// Quantity returns a channel together with its unit.
func (s *Series) Quantity(name string) (units.Quantity, bool) {
	v, ok := s.values[name]
	if !ok {
		return units.Quantity{}, false
	}
	return units.NewQuantity(v, s.units[name]), true
}

// Require returns a MissingChannelError for the first absent channel.
func (s *Series) Require(op string, names ...string) error {
	for _, name := range names {
		if !s.Has(name) {
			return &MissingChannelError{Channel: name, Op: op}
		}
	}
	return nil
}

// Update adds or replaces a channel. A quantity with the zero unit is stored
// as dimensionless data.
func (s *Series) Update(name string, q units.Quantity) error {
	if len(q.Values) != s.n {
		return fmt.Errorf("%w: %q has %d samples, series has %d", ErrLengthMismatch, name, len(q.Values), s.n)
	}
	if !s.Has(name) {
		s.derived = append(s.derived, name)
	}
	s.set(name, q.Values, q.Unit)
	return nil
}

func (s *Series) set(name string, values []float64, u units.Unit) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = values
	s.units[name] = u
}

// TimeAxis returns the time channel, or a pseudo-time axis Q/|median(ΔQ)|
// when only capacity is present, or the sample index as a last resort.
func (s *Series) TimeAxis() []float64 {
	if t, ok := s.values[Time]; ok {
		return t
	}

	if q, ok := s.values[Capacity]; ok && len(q) > 1 {
		diffs := make([]float64, len(q)-1)
		for i := range diffs {
			diffs[i] = q[i+1] - q[i]
		}
		step := math.Abs(robust.NaNMedian(diffs))
		if step > 0 && !math.IsNaN(step) {
			axis := make([]float64, len(q))
			for i, v := range q {
				axis[i] = v / step
			}
			return axis
		}
	}

	axis := make([]float64, s.n)
	for i := range axis {
		axis[i] = float64(i)
	}
	return axis
}

// Slice returns a new series holding samples [from, to).
// Spacing and direction are recomputed for the slice.
func (s *Series) Slice(from, to int) *Series {
	from = max(from, 0)
	to = min(to, s.n)
	if to < from {
		to = from
	}
	idx := make([]int, to-from)
	for i := range idx {
		idx[i] = from + i
	}
	return s.Select(idx)
}

// Select returns a new series holding the given samples in order.
// Out-of-range indices panic.
func (s *Series) Select(indices []int) *Series {
	pick := func(v []float64) []float64 {
		out := make([]float64, len(indices))
		for i, k := range indices {
			out[i] = v[k]
		}
		return out
	}

	raw := table.New()
	for _, col := range s.raw.Columns() {
		// Column lengths match by construction.
		_ = raw.AddColumn(col.Name, pick(col.Values))
	}

	out := &Series{
		raw:     raw,
		n:       len(indices),
		values:  make(map[string][]float64, len(s.values)),
		units:   make(map[string]units.Unit, len(s.units)),
		sources: make(map[string]string, len(s.sources)),
		derived: slices.Clone(s.derived),
	}
	for _, name := range s.names {
		out.set(name, pick(s.values[name]), s.units[name])
	}
	for k, v := range s.sources {
		out.sources[k] = v
	}
	out.dt = spacing(out.TimeAxis())
	out.dir = detectDirection(out.values[Voltage], out.values[Current])
	return out
}

// Table exports the raw columns followed by every channel added through
// Update. Added channels replace raw columns of the same name.
func (s *Series) Table() *table.Table {
	out := table.New()
	for _, col := range s.raw.Columns() {
		_ = out.AddColumn(col.Name, col.Values)
	}
	for _, name := range s.derived {
		_ = out.AddColumn(name, s.values[name])
	}
	return out
}
