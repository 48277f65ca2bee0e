// Package units models the physical units found in battery-cycler exports.
//
// A [Unit] converts a raw value to the canonical unit of its [Dimension]
// with an affine rule, canonical = raw*Scale + Offset. Offsets are only
// non-zero for temperature (K and °F to °C); every other unit is a pure
// scale factor.
//
// Header units are parsed in the context of the expected dimension, because
// cycler software is inconsistent: "C" in a capacity column is a coulomb and
// in a temperature column a degree Celsius.
//
//	u, err := units.ParseFor("mAh", units.Charge)   // 0.001 Ah
//	q := units.NewQuantity(raw, u).Canonical()       // values now in Ah
package units
