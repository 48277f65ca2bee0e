package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownUnit is returned when a unit symbol cannot be interpreted.
var ErrUnknownUnit = errors.New("units: unknown unit")

// Dimension identifies the physical quantity a unit measures.
type Dimension string

const (
	NoDimension Dimension = ""
	Time        Dimension = "time"
	Voltage     Dimension = "voltage"
	Current     Dimension = "current"
	Charge      Dimension = "charge"
	Temperature Dimension = "temperature"
)

// Unit describes how to bring a value into the canonical unit of its dimension.
type Unit struct {
	Symbol string
	Dim    Dimension
	Scale  float64
	Offset float64
}

// Canonical units per dimension.
var (
	Second  = Unit{Symbol: "s", Dim: Time, Scale: 1}
	Volt    = Unit{Symbol: "V", Dim: Voltage, Scale: 1}
	Ampere  = Unit{Symbol: "A", Dim: Current, Scale: 1}
	AmpHour = Unit{Symbol: "Ah", Dim: Charge, Scale: 1}
	Celsius = Unit{Symbol: "℃", Dim: Temperature, Scale: 1}
	None    = Unit{}
)

// CanonicalFor returns the canonical unit of d.
func CanonicalFor(d Dimension) Unit {
	switch d {
	case Time:
		return Second
	case Voltage:
		return Volt
	case Current:
		return Ampere
	case Charge:
		return AmpHour
	case Temperature:
		return Celsius
	default:
		return None
	}
}

// IsZero reports whether u is the zero Unit, used for dimensionless data.
func (u Unit) IsZero() bool {
	return u == Unit{}
}

// IsCanonical reports whether values in u need no conversion.
func (u Unit) IsCanonical() bool {
	return u.Offset == 0 && (u.Scale == 1 || u.IsZero())
}

// ToCanonical converts a single value expressed in u.
func (u Unit) ToCanonical(v float64) float64 {
	if u.IsZero() {
		return v
	}
	return v*u.Scale + u.Offset
}

// FromCanonical converts a canonical value back into u.
func (u Unit) FromCanonical(v float64) float64 {
	if u.IsZero() {
		return v
	}
	return (v - u.Offset) / u.Scale
}

// Div returns the ratio unit u/o, for example V/s or V/Ah.
// Both operands must be offset-free.
func (u Unit) Div(o Unit) (Unit, error) {
	if u.Offset != 0 || o.Offset != 0 {
		return Unit{}, fmt.Errorf("units: cannot divide affine units %q and %q", u.Symbol, o.Symbol)
	}
	return Unit{
		Symbol: symbolOf(u) + "/" + symbolOf(o),
		Dim:    Dimension(string(u.Dim) + "/" + string(o.Dim)),
		Scale:  scaleOf(u) / scaleOf(o),
	}, nil
}

// MustDiv is like Div but panics on affine operands.
func (u Unit) MustDiv(o Unit) Unit {
	r, err := u.Div(o)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the unit symbol, or "1" for dimensionless data.
func (u Unit) String() string {
	return symbolOf(u)
}

func symbolOf(u Unit) string {
	if u.Symbol == "" {
		return "1"
	}
	return u.Symbol
}

func scaleOf(u Unit) float64 {
	if u.IsZero() {
		return 1
	}
	return u.Scale
}

// ParseFor interprets symbol as a unit of dimension d.
func ParseFor(symbol string, d Dimension) (Unit, error) {
	s := normalize(symbol)
	if s == "" {
		return Unit{}, fmt.Errorf("%w: empty symbol", ErrUnknownUnit)
	}
	table, ok := symbols[d]
	if !ok {
		return Unit{}, fmt.Errorf("%w: no symbols for dimension %q", ErrUnknownUnit, d)
	}

	e, ok := table[s]
	if !ok {
		e, ok = withPrefix(s, table)
	}
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q as %s", ErrUnknownUnit, symbol, d)
	}

	return Unit{Symbol: strings.TrimSpace(symbol), Dim: d, Scale: e.scale, Offset: e.offset}, nil
}

func normalize(symbol string) string {
	s := strings.TrimSpace(symbol)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "µ", "u")
	s = strings.ReplaceAll(s, "μ", "u")
	return s
}

var prefixes = map[string]float64{
	"n": 1e-9,
	"u": 1e-6,
	"m": 1e-3,
	"k": 1e3,
	"M": 1e6,
}

// withPrefix resolves SI prefixes on base units that accept them.
func withPrefix(s string, table map[string]entry) (entry, bool) {
	for p, f := range prefixes {
		if !strings.HasPrefix(s, p) {
			continue
		}
		base, ok := table[s[len(p):]]
		if !ok || !base.prefixed {
			continue
		}
		base.scale *= f
		return base, true
	}
	return entry{}, false
}

type entry struct {
	scale    float64
	offset   float64
	prefixed bool
}

const fahrenheit = 5.0 / 9

// symbols maps accepted spellings to conversions per dimension.
var symbols = map[Dimension]map[string]entry{
	Time: {
		"s":       {scale: 1, prefixed: true},
		"sec":     {scale: 1, prefixed: true},
		"second":  {scale: 1},
		"seconds": {scale: 1},
		"min":     {scale: 60},
		"minute":  {scale: 60},
		"minutes": {scale: 60},
		"h":       {scale: 3600},
		"hr":      {scale: 3600},
		"hour":    {scale: 3600},
		"hours":   {scale: 3600},
		"초":       {scale: 1},
		"분":       {scale: 60},
	},
	Voltage: {
		"V": {scale: 1, prefixed: true},
		"v": {scale: 1},
	},
	Current: {
		"A": {scale: 1, prefixed: true},
		"a": {scale: 1},
	},
	Charge: {
		"Ah":  {scale: 1, prefixed: true},
		"AH":  {scale: 1},
		"ah":  {scale: 1},
		"mAH": {scale: 1e-3},
		"mah": {scale: 1e-3},
		"As":  {scale: 1.0 / 3600, prefixed: true},
		"C":   {scale: 1.0 / 3600, prefixed: true},
	},
	Temperature: {
		"℃":     {scale: 1},
		"°C":    {scale: 1},
		"'C":    {scale: 1},
		"C":     {scale: 1},
		"degC":  {scale: 1},
		"deg_C": {scale: 1},
		"K":     {scale: 1, offset: -273.15},
		"℉":     {scale: fahrenheit, offset: -32 * fahrenheit},
		"°F":    {scale: fahrenheit, offset: -32 * fahrenheit},
		"F":     {scale: fahrenheit, offset: -32 * fahrenheit},
		"degF":  {scale: fahrenheit, offset: -32 * fahrenheit},
	},
}
