package wavelet

import "math"

// SoftThreshold shrinks every coefficient toward zero by t in place.
func SoftThreshold(x []float64, t float64) {
	for i, v := range x {
		mag := math.Abs(v) - t
		if mag <= 0 {
			x[i] = 0
			continue
		}
		x[i] = math.Copysign(mag, v)
	}
}

// HardThreshold zeroes coefficients with magnitude below t in place.
func HardThreshold(x []float64, t float64) {
	for i, v := range x {
		if math.Abs(v) < t {
			x[i] = 0
		}
	}
}
