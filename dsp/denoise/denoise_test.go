package denoise

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ica/dsp/wavelet"
	"github.com/cwbudde/algo-ica/internal/testutil"
)

func noisyPeak(n int, sigma float64) (clean, noisy []float64) {
	clean = testutil.GaussianPeak(n, float64(n)/2, float64(n)/16, 1)
	noisy = testutil.Add(clean, testutil.GaussianNoise(7, sigma, n))
	return clean, noisy
}

func TestDenoiseReducesNoiseAndKeepsPeak(t *testing.T) {
	const n = 1000
	clean, noisy := noisyPeak(n, 0.03)

	got := Denoise(noisy, 3.5)
	if len(got) != n {
		t.Fatalf("len = %d, want %d", len(got), n)
	}
	testutil.RequireFinite(t, got)

	before := testutil.FirstDiffStd(noisy)
	after := testutil.FirstDiffStd(got)
	if after > 0.5*before {
		t.Fatalf("first-difference std %v -> %v, want at least 50%% reduction", before, after)
	}

	shift := testutil.ArgMax(got) - testutil.ArgMax(clean)
	if shift < 0 {
		shift = -shift
	}
	if shift > n/100 {
		t.Fatalf("peak moved by %d samples", shift)
	}
}

func TestDenoiseKeepsFirstSample(t *testing.T) {
	_, noisy := noisyPeak(300, 0.05)
	noisy[0] = 42
	got := Denoise(noisy, 3.5)
	if got[0] != 42 {
		t.Fatalf("first sample = %v, want 42", got[0])
	}
}

func TestDenoiseShortInput(t *testing.T) {
	for _, in := range [][]float64{nil, {1}, {1, 2}, {3, 1, 2, 5}} {
		got := Denoise(in, 3.5)
		if len(got) != len(in) {
			t.Fatalf("len(%v) = %d", in, len(got))
		}
		testutil.RequireFinite(t, got)
	}
}

func TestDenoiseConstant(t *testing.T) {
	in := testutil.DC(2.5, 200)
	testutil.RequireSliceNearlyEqual(t, Denoise(in, 3.5), in, 1e-9)
}

func TestDenoiseDoesNotModifyInput(t *testing.T) {
	_, noisy := noisyPeak(256, 0.05)
	orig := append([]float64(nil), noisy...)
	Denoise(noisy, 3.5)
	testutil.RequireSliceNearlyEqual(t, noisy, orig, 0)
}

func TestZeroStrengthReconstructs(t *testing.T) {
	_, noisy := noisyPeak(256, 0.05)
	d, err := New(WithFamilies("bior2.6"), WithOffsets(0))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, d.Denoise(noisy, 0), noisy, 1e-9)
}

func TestOptions(t *testing.T) {
	if _, err := New(WithFamilies("db4")); !errors.Is(err, wavelet.ErrUnknownFamily) {
		t.Fatalf("unknown family error = %v", err)
	}
	if _, err := New(WithOffsets()); !errors.Is(err, ErrNoEnsemble) {
		t.Fatalf("empty offsets error = %v", err)
	}

	_, noisy := noisyPeak(400, 0.05)
	hard, err := New(WithThresholdMode(Hard), WithPadding(20), WithFamilies("bior3.7", "rbio3.7"))
	if err != nil {
		t.Fatal(err)
	}
	got := hard.Denoise(noisy, 3.5)
	testutil.RequireFinite(t, got)
	if testutil.FirstDiffStd(got) >= testutil.FirstDiffStd(noisy) {
		t.Fatal("hard thresholding did not smooth")
	}
}

func TestDenoiseValid(t *testing.T) {
	const n = 400
	_, in := noisyPeak(n, 0.05)
	for i := 0; i < 5; i++ {
		in[i] = math.NaN()
		in[n-1-i] = math.NaN()
	}
	in[200] = math.NaN()

	guard := Guard(n)
	got := DenoiseValid(in, 3.5, guard)

	for i, v := range in {
		if math.IsNaN(v) != math.IsNaN(got[i]) {
			t.Fatalf("NaN layout changed at %d", i)
		}
	}
	for k := 0; k < guard; k++ {
		if got[5+k] != in[5+k] || got[n-6-k] != in[n-6-k] {
			t.Fatalf("guard sample %d modified", k)
		}
	}
	if testutil.FirstDiffStd(got[50:190]) >= testutil.FirstDiffStd(in[50:190]) {
		t.Fatal("interior was not smoothed")
	}
}

func TestDenoiseValidFallsBack(t *testing.T) {
	in := []float64{math.NaN(), 1, 2, 3, math.NaN()}
	got := DenoiseValid(in, 3.5, 5)
	if !math.IsNaN(got[0]) || !math.IsNaN(got[4]) {
		t.Fatal("NaN samples must stay NaN")
	}
	testutil.RequireFinite(t, got[1:4])

	allNaN := []float64{math.NaN(), math.NaN()}
	if g := DenoiseValid(allNaN, 3.5, 1); !math.IsNaN(g[0]) || !math.IsNaN(g[1]) {
		t.Fatal("all-NaN input must pass through")
	}
}

func TestGuard(t *testing.T) {
	for _, tc := range []struct{ n, want int }{{0, 1}, {399, 1}, {400, 2}, {1000, 3}, {4000, 11}} {
		if got := Guard(tc.n); got != tc.want {
			t.Errorf("Guard(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
