package units

// Quantity is a sample array tagged with the unit its values are expressed in.
// A zero Unit marks dimensionless data.
type Quantity struct {
	Values []float64
	Unit   Unit
}

// NewQuantity wraps values measured in u.
func NewQuantity(values []float64, u Unit) Quantity {
	return Quantity{Values: values, Unit: u}
}

// Dimensionless wraps values that carry no unit.
func Dimensionless(values []float64) Quantity {
	return Quantity{Values: values}
}

// Canonical returns a copy of q converted to the canonical unit of its dimension.
// Derived units (such as V/Ah) keep their symbol and are rescaled to a unit
// scale factor.
func (q Quantity) Canonical() Quantity {
	out := make([]float64, len(q.Values))
	for i, v := range q.Values {
		out[i] = q.Unit.ToCanonical(v)
	}

	target := CanonicalFor(q.Unit.Dim)
	if target.IsZero() && !q.Unit.IsZero() {
		target = Unit{Symbol: q.Unit.Symbol, Dim: q.Unit.Dim, Scale: 1}
	}

	return Quantity{Values: out, Unit: target}
}

// Len returns the number of samples.
func (q Quantity) Len() int {
	return len(q.Values)
}
