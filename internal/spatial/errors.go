package spatial

import "errors"

var (
	// ErrDimensionMismatch is returned when two point sets have a different
	// number of feature columns.
	ErrDimensionMismatch = errors.New("spatial: dimension mismatch")

	// ErrDegenerateInput is returned when a statistic is undefined for the
	// given number of points.
	ErrDegenerateInput = errors.New("spatial: degenerate input")
)
