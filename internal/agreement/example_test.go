package agreement_test

import (
	"fmt"

	"github.com/mikemahoney218/waywiserrr/internal/agreement"
)

func ExampleGMFR() {
	truth := []float64{1, 2, 3, 4}
	estimate := []float64{2, 1, 4, 3}

	fit, err := agreement.GMFR(truth, estimate, agreement.Positive)
	if err != nil {
		panic(err)
	}
	fmt.Printf("a=%.2f b=%.2f\n", fit.Intercept, fit.Slope)
	// Output: a=0.00 b=1.00
}

func ExampleSPDS() {
	truth := []float64{1, 2, 3}
	estimate := []float64{2, 4, 6}

	ssd, _ := agreement.SSD(truth, estimate)
	spdu, _ := agreement.SPDU(truth, estimate, agreement.Positive)
	spds, _ := agreement.SPDS(truth, estimate, agreement.Positive)
	fmt.Printf("ssd=%.1f spdu=%.1f spds=%.1f\n", ssd, spdu, spds)
	// Output: ssd=14.0 spdu=0.0 spds=14.0
}
