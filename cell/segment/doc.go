// Package segment labels cycler samples as charge, discharge or rest and
// numbers the cycles they belong to.
//
// Categorize writes two dimensionless channels into a series: "state"
// (+1 charge, -1 discharge, 0 rest, decided by the current against a
// threshold) and "cycle" (incremented at every entry into charge).
// Split partitions a categorized series by cycle and Segments returns the
// contiguous runs of equal state.
package segment
