package agreement

import "fmt"

// Coefficients are the Ji & Gallo agreement coefficients. AC is 1 for
// perfect agreement; ACU and ACS split the disagreement into its
// unsystematic and systematic parts.
type Coefficients struct {
	AC  float64 `json:"ac"`
	ACU float64 `json:"acu"`
	ACS float64 `json:"acs"`
}

// AgreementCoefficients returns 1 - SSD/SPOD, 1 - SPDU/SPOD and
// 1 - SPDS/SPOD.
func AgreementCoefficients(truth, estimate []float64, sign Sign) (Coefficients, error) {
	report, err := NewPipeline(WithSign(sign)).Process(truth, estimate)
	if err != nil {
		return Coefficients{}, err
	}
	return report.Coefficients, nil
}

func coefficients(ssd, spod, spdu, spds float64) (Coefficients, error) {
	if spod == 0 {
		return Coefficients{}, fmt.Errorf("%w: spod is zero", ErrDegenerateInput)
	}
	return Coefficients{
		AC:  1 - ssd/spod,
		ACU: 1 - spdu/spod,
		ACS: 1 - spds/spod,
	}, nil
}
