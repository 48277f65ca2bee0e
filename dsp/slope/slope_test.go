package slope

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ica/internal/testutil"
)

func TestEstimateLinearExact(t *testing.T) {
	const n = 200
	x := testutil.Linspace(0, n-1, n)
	for _, b := range []float64{0.37, -2.5, 0} {
		v := testutil.Linear(x, b, 3.1)
		for maxWindow := 1; maxWindow <= 41; maxWindow++ {
			got := Estimate(v, maxWindow)
			if len(got) != n {
				t.Fatalf("len = %d, want %d", len(got), n)
			}
			edge := Edge(maxWindow)
			for i, s := range got {
				if i < edge || i >= n-edge {
					if !math.IsNaN(s) {
						t.Fatalf("window %d: index %d = %v, want NaN", maxWindow, i, s)
					}
					continue
				}
				if math.Abs(s-b) > 1e-9 {
					t.Fatalf("window %d: slope[%d] = %v, want %v", maxWindow, i, s, b)
				}
			}
		}
	}
}

func TestEstimateNaNEdges(t *testing.T) {
	v := testutil.Linspace(0, 1, 50)
	for _, tc := range []struct{ maxWindow, edge int }{
		{0, 1}, {1, 1}, {2, 1}, {3, 2}, {4, 2}, {9, 5}, {10, 5},
	} {
		lead, trail, interior := testutil.NaNEdges(Estimate(v, tc.maxWindow))
		if lead != tc.edge || trail != tc.edge || interior != 0 {
			t.Errorf("maxWindow %d: NaN edges = (%d, %d, %d), want (%d, %d, 0)",
				tc.maxWindow, lead, trail, interior, tc.edge, tc.edge)
		}
	}
}

func TestEstimateAllWindows(t *testing.T) {
	v := testutil.Linspace(0, 9, 10)
	med, all := EstimateAll(v, 5)
	if len(all) != 3 {
		t.Fatalf("windows = %d, want 3", len(all))
	}
	for j, est := range all {
		lead, trail, _ := testutil.NaNEdges(est)
		if lead != j+1 || trail != j+1 {
			t.Errorf("window %d edges = (%d, %d), want %d", j, lead, trail, j+1)
		}
	}
	if med[5] != 1 {
		t.Errorf("median slope = %v, want 1", med[5])
	}
}

func TestEstimateShortInput(t *testing.T) {
	if got := Estimate(nil, 5); len(got) != 0 {
		t.Fatalf("empty input gave %v", got)
	}
	got := Estimate([]float64{1, 2, 3}, 9)
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Errorf("short input index %d = %v, want NaN", i, v)
		}
	}
}

func TestEstimateRejectsOutlier(t *testing.T) {
	v := testutil.Linspace(0, 99, 100)
	v[50] += 40
	got := Estimate(v, 15)
	for _, i := range []int{45, 49, 51, 55} {
		if math.Abs(got[i]-1) > 0.5 {
			t.Errorf("slope[%d] = %v, outlier leaked into median", i, got[i])
		}
	}
}

func TestEstimateNaNStaysLocal(t *testing.T) {
	v := testutil.Linspace(0, 99, 100)
	v[50] = math.NaN()
	got := Estimate(v, 3)
	for i := 2; i < 98; i++ {
		if i >= 48 && i <= 52 {
			continue
		}
		if math.Abs(got[i]-1) > 1e-12 {
			t.Fatalf("slope[%d] = %v, want 1", i, got[i])
		}
	}
}

func TestDerivativeUnevenSpacing(t *testing.T) {
	const n = 120
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) + 0.3*math.Sin(float64(i))
	}
	y := testutil.Linear(x, 2.5, 1)

	got := Derivative(y, x, 7)
	edge := Edge(7)
	for i := edge; i < n-edge; i++ {
		if math.Abs(got[i]-2.5) > 1e-9 {
			t.Fatalf("dy/dx[%d] = %v, want 2.5", i, got[i])
		}
	}
}

func TestWindowSamples(t *testing.T) {
	tests := []struct {
		seconds, dt float64
		want        int
	}{
		{60, 1, 60},
		{60, 10, 6},
		{60, 7, 8},
		{1, 10, 1},
		{60, 0, 1},
		{math.NaN(), 1, 1},
		{60, 1e-320, 1},
	}
	for _, tt := range tests {
		if got := WindowSamples(tt.seconds, tt.dt); got != tt.want {
			t.Errorf("WindowSamples(%v, %v) = %d, want %d", tt.seconds, tt.dt, got, tt.want)
		}
	}
}
