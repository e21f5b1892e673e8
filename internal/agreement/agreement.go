// Package agreement compares a truth series with an estimate series using
// the sum-of-product-difference family from Ji & Gallo (2006): SSD, SPOD
// and the split of SSD into unsystematic (SPDU) and systematic (SPDS) parts.
package agreement

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SSD returns the sum of squared differences between truth and estimate.
func SSD(truth, estimate []float64) (float64, error) {
	if err := validatePaired(truth, estimate, 1); err != nil {
		return 0, err
	}
	return finite("ssd", ssd(truth, estimate))
}

// SPOD returns the sum of potential difference:
// sum((d + |t - mean(t)|) * (d + |e - mean(e)|)) with d = |mean(t) - mean(e)|.
func SPOD(truth, estimate []float64) (float64, error) {
	if err := validatePaired(truth, estimate, 2); err != nil {
		return 0, err
	}
	return finite("spod", spod(truth, estimate, summarize(truth), summarize(estimate)))
}

// SPDU returns the unsystematic sum of product-difference. GMFR lines are
// fitted in both directions with the same sign and the residuals of each
// observation are multiplied.
func SPDU(truth, estimate []float64, sign Sign) (float64, error) {
	if err := validatePaired(truth, estimate, 2); err != nil {
		return 0, err
	}
	if err := sign.validate(); err != nil {
		return 0, err
	}

	truthFit, estimateFit, err := fitBoth(summarize(truth), summarize(estimate), sign)
	if err != nil {
		return 0, err
	}
	return finite("spdu", spdu(truth, estimate, truthFit, estimateFit))
}

// SPDS returns the systematic sum of product-difference, SSD - SPDU.
// It is not clamped and can be negative when the sign disagrees with the data.
func SPDS(truth, estimate []float64, sign Sign) (float64, error) {
	unsystematic, err := SPDU(truth, estimate, sign)
	if err != nil {
		return 0, err
	}
	return finite("spds", ssd(truth, estimate)-unsystematic)
}

func ssd(truth, estimate []float64) float64 {
	diff := make([]float64, len(truth))
	floats.SubTo(diff, truth, estimate)
	return floats.Dot(diff, diff)
}

func spod(truth, estimate []float64, t, e summary) float64 {
	d := math.Abs(t.mean - e.mean)

	var sum float64
	for i := range truth {
		sum += (d + math.Abs(truth[i]-t.mean)) * (d + math.Abs(estimate[i]-e.mean))
	}
	return sum
}

// fitBoth returns the GMFR line predicting truth from estimate and the one
// predicting estimate from truth.
func fitBoth(t, e summary, sign Sign) (truthFit, estimateFit Fit, err error) {
	truthFit, err = gmfr(t, e, sign)
	if err != nil {
		return Fit{}, Fit{}, err
	}
	estimateFit, err = gmfr(e, t, sign)
	if err != nil {
		return Fit{}, Fit{}, err
	}
	return truthFit, estimateFit, nil
}

func spdu(truth, estimate []float64, truthFit, estimateFit Fit) float64 {
	predictedTruth := truthFit.Predict(estimate)
	predictedEstimate := estimateFit.Predict(truth)

	var sum float64
	for i := range truth {
		sum += math.Abs(estimate[i]-predictedEstimate[i]) * math.Abs(truth[i]-predictedTruth[i])
	}
	return sum
}
