package wavelet

import "errors"

var (
	// ErrUnknownFamily is returned for names outside the bior/rbio families.
	ErrUnknownFamily = errors.New("wavelet: unknown family")
	// ErrInvalidOrder is returned for spline orders that cannot pair.
	ErrInvalidOrder = errors.New("wavelet: invalid order")
)
