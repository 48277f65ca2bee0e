package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRatioSingular(t *testing.T) {
	tests := []struct {
		name    string
		num     float64
		den     float64
		wantNaN bool
	}{
		{name: "regular", num: 3, den: 2},
		{name: "zero denominator", num: 1, den: 0, wantNaN: true},
		{name: "tiny denominator", num: 1, den: 1e-15, wantNaN: true},
		{name: "nan denominator", num: 1, den: math.NaN(), wantNaN: true},
		{name: "nan numerator", num: math.NaN(), den: 1, wantNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.num, tt.den, 0)
			if math.IsNaN(got) != tt.wantNaN {
				t.Fatalf("Ratio(%v, %v) = %v, wantNaN %v", tt.num, tt.den, got, tt.wantNaN)
			}
			if math.IsInf(got, 0) {
				t.Fatalf("Ratio returned infinity")
			}
		})
	}
}

func TestReciprocalInPlace(t *testing.T) {
	x := []float64{2, 0, -4}
	Reciprocal(x, x)

	if x[0] != 0.5 || !math.IsNaN(x[1]) || x[2] != -0.25 {
		t.Fatalf("unexpected reciprocal: %v", x)
	}
}

func TestFiniteHelpers(t *testing.T) {
	x := []float64{1, math.NaN(), math.Inf(1), 4}

	if AllFinite(x) {
		t.Fatal("AllFinite should be false")
	}
	if got := CountFinite(x); got != 2 {
		t.Fatalf("CountFinite = %d, want 2", got)
	}

	idx := FiniteIndices(x)
	if len(idx) != 2 || idx[0] != 0 || idx[1] != 3 {
		t.Fatalf("FiniteIndices = %v, want [0 3]", idx)
	}
}

func TestSign(t *testing.T) {
	if Sign(-2) != -1 || Sign(0) != 0 || Sign(3) != 1 {
		t.Fatal("unexpected Sign result")
	}
	if !math.IsNaN(Sign(math.NaN())) {
		t.Fatal("Sign(NaN) should be NaN")
	}
}
