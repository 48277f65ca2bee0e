package ica

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ica/cell/series"
)

// Condition is a recovered problem observed during a run.
type Condition struct {
	Stage string
	Err   error
}

func (c Condition) String() string {
	return fmt.Sprintf("%s: %v", c.Stage, c.Err)
}

// Result summarizes a completed run.
type Result struct {
	// DT is the sample spacing in seconds.
	DT float64
	// Direction is the detected process of the trace.
	Direction series.Direction
	// SlopeWindow is the largest slope window in samples.
	SlopeWindow int
	// GaussianSigma is the width of the Gaussian variant in samples.
	GaussianSigma int
	// ValidStart and ValidEnd bound the range used for the large-window fit.
	ValidStart, ValidEnd int
	// Singular counts samples where dV/dQ or dQ/dV had a vanishing
	// denominator.
	Singular int
	// Conditions lists recovered problems in stage order.
	Conditions []Condition
}

// Has reports whether any condition wraps target.
func (r *Result) Has(target error) bool {
	for _, c := range r.Conditions {
		if errors.Is(c.Err, target) {
			return true
		}
	}
	return false
}

func (r *Result) note(stage string, err error) {
	r.Conditions = append(r.Conditions, Condition{Stage: stage, Err: err})
}
