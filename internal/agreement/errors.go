package agreement

import "errors"

var (
	// ErrLengthMismatch is returned when truth and estimate differ in length.
	ErrLengthMismatch = errors.New("agreement: length mismatch")

	// ErrInvalidSign is returned for a correction sign other than -1 or +1.
	ErrInvalidSign = errors.New("agreement: invalid correction sign")

	// ErrDegenerateInput is returned when a statistic is undefined for the
	// input: too few values, zero variance, or a non-finite result.
	ErrDegenerateInput = errors.New("agreement: degenerate input")
)
