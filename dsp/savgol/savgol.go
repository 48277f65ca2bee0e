package savgol

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-ica/dsp/conv"
	"github.com/cwbudde/algo-ica/dsp/core"
)

var (
	// ErrWindowTooShort is returned when the window cannot hold a fit of the
	// requested order.
	ErrWindowTooShort = errors.New("savgol: window not longer than polynomial order")
	// ErrWindowTooLong is returned when the window exceeds the signal.
	ErrWindowTooLong = errors.New("savgol: window longer than signal")
	// ErrInvalidOrder is returned for negative polynomial orders.
	ErrInvalidOrder = errors.New("savgol: invalid polynomial order")
)

// OddWindow rounds an even window length up to the next odd one.
func OddWindow(window int) int {
	if window%2 == 0 {
		return window + 1
	}
	return window
}

// FitWindow returns the window Filter would use on n samples: window forced
// odd and narrowed to the largest odd length not exceeding n. The result is
// not checked against the order.
func FitWindow(window, n int) int {
	window = OddWindow(window)
	if window > n {
		window = n
		if window%2 == 0 {
			window--
		}
	}
	return window
}

// Coefficients returns the smoothing kernel for an odd window and order.
func Coefficients(window, order int) ([]float64, error) {
	if order < 0 {
		return nil, ErrInvalidOrder
	}
	if window%2 == 0 || window < 1 {
		return nil, fmt.Errorf("savgol: window %d must be odd and positive", window)
	}
	if window <= order {
		return nil, fmt.Errorf("%w: window %d, order %d", ErrWindowTooShort, window, order)
	}

	half := window / 2
	a := vandermonde(window, order, -float64(half), float64(max(half, 1)))

	var qr mat.QR
	qr.Factorize(a)

	eye := mat.NewDense(window, window, nil)
	for i := range window {
		eye.Set(i, i, 1)
	}
	var pinv mat.Dense
	if err := qr.SolveTo(&pinv, false, eye); err != nil {
		return nil, fmt.Errorf("savgol: solve: %w", err)
	}

	return mat.Row(nil, 0, &pinv), nil
}

// Filter smooths values with the given window and polynomial order.
// An even window is rounded up to the next odd length.
func Filter(values []float64, window, order int) ([]float64, error) {
	window = OddWindow(window)
	if window > len(values) {
		return nil, fmt.Errorf("%w: window %d, %d samples", ErrWindowTooLong, window, len(values))
	}

	coeffs, err := Coefficients(window, order)
	if err != nil {
		return nil, err
	}

	out, err := conv.Smooth(values, coeffs)
	if err != nil {
		return nil, err
	}

	half := window / 2
	fitEdge(out[:half], values[:window], order, 0)
	fitEdge(out[len(out)-half:], values[len(values)-window:], order, window-half)
	return out, nil
}

// fitEdge fits a polynomial to seg and evaluates it at positions
// from, from+1, ... into dst.
func fitEdge(dst, seg []float64, order, from int) {
	if len(dst) == 0 {
		return
	}
	if !core.AllFinite(seg) {
		core.Fill(dst, math.NaN())
		return
	}

	scale := float64(len(seg))
	var qr mat.QR
	qr.Factorize(vandermonde(len(seg), order, 0, scale))

	var p mat.VecDense
	if err := qr.SolveVecTo(&p, false, mat.NewVecDense(len(seg), core.Clone(seg))); err != nil {
		core.Fill(dst, math.NaN())
		return
	}

	for i := range dst {
		x := float64(from+i) / scale
		// Horner
		v := 0.0
		for j := order; j >= 0; j-- {
			v = v*x + p.AtVec(j)
		}
		dst[i] = v
	}
}

// vandermonde returns the rows x^0..x^order for x = (start+i)/scale.
// Scaling the abscissa keeps wide windows well conditioned.
func vandermonde(rows, order int, start, scale float64) *mat.Dense {
	a := mat.NewDense(rows, order+1, nil)
	for i := range rows {
		x := (start + float64(i)) / scale
		v := 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}
	return a
}
