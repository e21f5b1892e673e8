package agreement

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Fit is a straight line y = Intercept + Slope*x.
type Fit struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// Predict evaluates the line at every x.
func (f Fit) Predict(x []float64) []float64 {
	y := make([]float64, len(x))
	floats.ScaleTo(y, f.Slope, x)
	floats.AddConst(f.Intercept, y)
	return y
}

// GMFR fits the geometric mean functional relationship predicting truth
// from estimate. The slope is sign * sqrt(Var(truth) / Var(estimate)).
func GMFR(truth, estimate []float64, sign Sign) (Fit, error) {
	if err := validatePaired(truth, estimate, 2); err != nil {
		return Fit{}, err
	}
	if err := sign.validate(); err != nil {
		return Fit{}, err
	}
	return gmfr(summarize(truth), summarize(estimate), sign)
}

// summary holds the moments shared by the statistics of one series.
type summary struct {
	mean     float64
	variance float64 // population variance
}

func summarize(x []float64) summary {
	mean, variance := stat.PopMeanVariance(x, nil)
	return summary{mean: mean, variance: variance}
}

// gmfr predicts y from x. Population variances are used on both sides, so
// the common 1/n cancels in the ratio.
func gmfr(y, x summary, sign Sign) (Fit, error) {
	if x.variance == 0 {
		return Fit{}, fmt.Errorf("%w: predictor has zero variance", ErrDegenerateInput)
	}

	slope := float64(sign) * math.Sqrt(y.variance/x.variance)
	fit := Fit{
		Intercept: y.mean - slope*x.mean,
		Slope:     slope,
	}

	if !isFinite(fit.Intercept) || !isFinite(fit.Slope) {
		return Fit{}, fmt.Errorf("%w: gmfr fit is not finite", ErrDegenerateInput)
	}
	return fit, nil
}

func validatePaired(truth, estimate []float64, minLen int) error {
	if len(truth) != len(estimate) {
		return fmt.Errorf("%w: truth has %d values, estimate has %d", ErrLengthMismatch, len(truth), len(estimate))
	}
	if len(truth) < minLen {
		return fmt.Errorf("%w: need at least %d paired values, got %d", ErrDegenerateInput, minLen, len(truth))
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite(name string, v float64) (float64, error) {
	if !isFinite(v) {
		return 0, fmt.Errorf("%w: %s is %v", ErrDegenerateInput, name, v)
	}
	return v, nil
}
