package series

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingChannel is matched by every MissingChannelError.
	ErrMissingChannel = errors.New("series: missing channel")
	// ErrLengthMismatch is returned by Update for arrays of the wrong length.
	ErrLengthMismatch = errors.New("series: length mismatch")
	// ErrNilTable is returned by Construct when no table is given.
	ErrNilTable = errors.New("series: nil table")
)

// MissingChannelError reports an operation that needs a channel the series
// does not hold.
type MissingChannelError struct {
	Channel string
	Op      string
}

func (e *MissingChannelError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("series: missing channel %q", e.Channel)
	}
	return fmt.Sprintf("series: %s: missing channel %q", e.Op, e.Channel)
}

// Unwrap lets errors.Is match ErrMissingChannel.
func (e *MissingChannelError) Unwrap() error {
	return ErrMissingChannel
}
