package table

import (
	"fmt"
	"slices"
)

// Column is a named float64 column. Missing or non-numeric cells are NaN.
type Column struct {
	Name   string
	Values []float64
}

// Table is an ordered set of equal-length columns.
type Table struct {
	cols  []Column
	index map[string]int
}

// New returns an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Len returns the number of rows, or 0 for a table without columns.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.cols)
}

// AddColumn appends a column, or replaces the values of an existing column
// with the same name in place. The slice is stored without copying.
func (t *Table) AddColumn(name string, values []float64) error {
	if len(t.cols) > 0 && len(values) != t.Len() {
		return fmt.Errorf("%w: %q has %d rows, table has %d", ErrLengthMismatch, name, len(values), t.Len())
	}
	if i, ok := t.index[name]; ok {
		t.cols[i].Values = values
		return nil
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, Column{Name: name, Values: values})
	return nil
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i].Values, true
}

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Columns returns a copy of the column list. Values are shared.
func (t *Table) Columns() []Column {
	return slices.Clone(t.cols)
}
