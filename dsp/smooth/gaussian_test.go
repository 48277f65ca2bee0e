package smooth

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ica/internal/testutil"
)

func TestGaussianKernel(t *testing.T) {
	k := GaussianKernel(2, DefaultTruncate)
	if len(k) != 17 {
		t.Fatalf("len = %d, want 17", len(k))
	}
	var sum float64
	for i, v := range k {
		sum += v
		if math.Abs(v-k[len(k)-1-i]) > 1e-15 {
			t.Fatalf("kernel not symmetric at %d", i)
		}
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("kernel sums to %v", sum)
	}
	if got := GaussianKernel(0, DefaultTruncate); len(got) != 1 || got[0] != 1 {
		t.Fatalf("sigma 0 kernel = %v", got)
	}
}

func TestGaussianPreservesConstant(t *testing.T) {
	in := testutil.DC(3.3, 50)
	for _, sigma := range []float64{0.5, 3, 40} {
		got, err := Gaussian(in, sigma)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireSliceNearlyEqual(t, got, in, 1e-12)
	}
}

func TestGaussianPreservesLinearInterior(t *testing.T) {
	in := testutil.Linspace(0, 10, 200)
	got, err := Gaussian(in, 3)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got[20:180], in[20:180], 1e-9)
}

func TestGaussianSmooths(t *testing.T) {
	noisy := testutil.GaussianNoise(11, 1, 1000)
	got, err := Gaussian(noisy, 5)
	if err != nil {
		t.Fatal(err)
	}
	if testutil.FirstDiffStd(got) > 0.2*testutil.FirstDiffStd(noisy) {
		t.Fatal("noise not reduced")
	}
}

func TestGaussianLongKernelMatchesDirect(t *testing.T) {
	in := testutil.Add(testutil.GaussianPeak(400, 200, 30, 1), testutil.DeterministicNoise(5, 0.1, 400))
	fast, err := Gaussian(in, 20)
	if err != nil {
		t.Fatal(err)
	}

	withNaN := append([]float64(nil), in...)
	withNaN = append(withNaN, math.NaN())
	slow, err := Gaussian(withNaN, 20)
	if err != nil {
		t.Fatal(err)
	}
	// The trailing NaN reaches every output within one radius of the end.
	testutil.RequireSliceNearlyEqual(t, fast[:300], slow[:300], 1e-9)
}

func TestReflect(t *testing.T) {
	n := 4
	want := map[int]int{-1: 0, -2: 1, -4: 3, -5: 3, 4: 3, 5: 2, 8: 0, 0: 0, 3: 3}
	for i, w := range want {
		if got := reflect(i, n); got != w {
			t.Errorf("reflect(%d, %d) = %d, want %d", i, n, got, w)
		}
	}
}
