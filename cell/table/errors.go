package table

import "errors"

var (
	// ErrLengthMismatch is returned when a column length differs from the table length.
	ErrLengthMismatch = errors.New("table: column length mismatch")
	// ErrNoHeader is returned when input contains no header row.
	ErrNoHeader = errors.New("table: missing header row")
	// ErrUnsupportedFormat is returned by ReadFile for unknown extensions.
	ErrUnsupportedFormat = errors.New("table: unsupported file format")
)
