package agreement

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Report carries every agreement statistic for one pair of series.
type Report struct {
	N            int          `json:"n"`
	Sign         Sign         `json:"sign"`
	GMFR         Fit          `json:"gmfr"`
	SSD          float64      `json:"ssd"`
	SPOD         float64      `json:"spod"`
	SPDU         float64      `json:"spdu"`
	SPDS         float64      `json:"spds"`
	Coefficients Coefficients `json:"coefficients"`
}

type Pipeline struct {
	Sign Sign
	// DeriveSign takes the sign from the correlation of the series instead
	// of Sign.
	DeriveSign bool
}

type PipelineOption func(*Pipeline)

func WithSign(sign Sign) PipelineOption {
	return func(p *Pipeline) {
		p.Sign = sign
		p.DeriveSign = false
	}
}

func WithCorrelationSign() PipelineOption {
	return func(p *Pipeline) {
		p.DeriveSign = true
	}
}

func DefaultPipeline() Pipeline {
	return Pipeline{
		Sign:       Positive,
		DeriveSign: true,
	}
}

func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := DefaultPipeline()

	for _, opt := range opts {
		opt(&p)
	}

	return &p
}

// Process computes the full report. Means, variances and the two GMFR fits
// are computed once and shared between the statistics.
func (p *Pipeline) Process(truth, estimate []float64) (Report, error) {
	startTime := time.Now()

	if err := validatePaired(truth, estimate, 2); err != nil {
		return Report{}, err
	}

	sign := p.Sign
	if p.DeriveSign {
		derived, err := CorrelationSign(truth, estimate)
		if err != nil {
			return Report{}, err
		}
		sign = derived
	}
	if err := sign.validate(); err != nil {
		return Report{}, err
	}

	t, e := summarize(truth), summarize(estimate)

	truthFit, estimateFit, err := fitBoth(t, e, sign)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		N:    len(truth),
		Sign: sign,
		GMFR: truthFit,
		SSD:  ssd(truth, estimate),
		SPOD: spod(truth, estimate, t, e),
		SPDU: spdu(truth, estimate, truthFit, estimateFit),
	}
	report.SPDS = report.SSD - report.SPDU

	for _, stat := range []struct {
		name  string
		value float64
	}{
		{"ssd", report.SSD},
		{"spod", report.SPOD},
		{"spdu", report.SPDU},
		{"spds", report.SPDS},
	} {
		if _, err := finite(stat.name, stat.value); err != nil {
			return Report{}, err
		}
	}

	report.Coefficients, err = coefficients(report.SSD, report.SPOD, report.SPDU, report.SPDS)
	if err != nil {
		return Report{}, err
	}

	log.Debug().
		Int("n", report.N).
		Stringer("sign", sign).
		Float64("ssd", report.SSD).
		Float64("spod", report.SPOD).
		Float64("ac", report.Coefficients.AC).
		Dur("elapsed", time.Since(startTime)).
		Msg("processed agreement report")

	return report, nil
}
