package agreement

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Sign fixes the direction of a GMFR slope, which the square root in its
// definition cannot recover.
type Sign int8

const (
	Negative Sign = -1
	Positive Sign = 1
)

func (s Sign) Valid() bool {
	return s == Negative || s == Positive
}

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+1"
	case Negative:
		return "-1"
	default:
		return fmt.Sprintf("invalid(%d)", int8(s))
	}
}

func (s Sign) validate() error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSign, int8(s))
	}
	return nil
}

// CorrelationSign returns the sign of the Pearson correlation between truth
// and estimate. Uncorrelated or constant series have no sign.
func CorrelationSign(truth, estimate []float64) (Sign, error) {
	if err := validatePaired(truth, estimate, 2); err != nil {
		return 0, err
	}

	r := stat.Correlation(truth, estimate, nil)
	switch {
	case math.IsNaN(r) || r == 0:
		return 0, fmt.Errorf("%w: correlation is %v", ErrDegenerateInput, r)
	case r < 0:
		return Negative, nil
	default:
		return Positive, nil
	}
}
