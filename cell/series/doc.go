// Package series is the canonical container for one battery-cycler trace.
//
// Construct scans the header of a raw table for the five physical channels
// (time t, voltage V, current I, capacity Q, temperature T), parses the unit
// written in parentheses after the header name and stores every channel in
// its canonical unit (s, V, A, Ah, ℃). Sample spacing and charge direction
// are derived once at construction.
//
// Analysis stages add their results through Update, so a Series accumulates
// derived channels ("dV/dt", "dQ/dV", ...) alongside the measured ones and
// Table exports the raw columns augmented with everything that was added.
package series
