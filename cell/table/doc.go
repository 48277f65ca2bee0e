// Package table holds raw, column-oriented cycler exports before any unit
// interpretation.
//
// A Table keeps the header text of every column untouched so that the unit
// annotations ("Voltage(mV)", "Capacity(mAh)") survive until cell/series
// resolves them. Readers accept comma or tab separated text and XLSX
// workbooks; WriteXLSX persists an augmented table.
package table
