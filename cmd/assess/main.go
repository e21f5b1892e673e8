package main

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/mikemahoney218/waywiserrr/internal/agreement"
	"github.com/mikemahoney218/waywiserrr/internal/spatial"
	"github.com/mikemahoney218/waywiserrr/internal/utils/logger"
)

func main() {
	logger.Init()

	assessDistances()
	assessAgreement()
}

func assessDistances() {
	log.Info().Msg("--- Assessing distances ---")
	training := mat.NewDense(4, 2, []float64{
		0, 0,
		3, 4,
		6, 8,
		1, 1,
	})
	prediction := mat.NewDense(2, 2, []float64{
		2, 2,
		10, 10,
	})

	dBar, err := spatial.MeanDistance(training)
	if err != nil {
		log.Error().Err(err).Msg("mean distance failed")
	} else {
		log.Info().Float64("d_bar", dBar).Msgf("mean pairwise distance %f", dBar)
	}

	self, err := spatial.NearestDistances(training, training, false)
	if err != nil {
		log.Error().Err(err).Msg("nearest distances within training failed")
	} else {
		log.Info().Floats64("min_dists", self).Msg("nearest neighbour within training set")
	}

	cross, err := spatial.NearestDistances(training, prediction, true)
	if err != nil {
		log.Error().Err(err).Msg("nearest distances to training failed")
	} else {
		log.Info().Floats64("min_dists", cross).Msg("nearest training point for each prediction point")
	}
}

func assessAgreement() {
	log.Info().Msg("--- Assessing agreement ---")
	cases := []struct {
		name     string
		truth    []float64
		estimate []float64
	}{
		{"close fit", []float64{1, 2, 3, 4, 5}, []float64{1.1, 2.3, 2.8, 4.2, 4.9}},
		{"scaled", []float64{1, 2, 3}, []float64{2, 4, 6}},
		{"reversed", []float64{1, 2, 3, 4}, []float64{4, 3, 2, 1}},
		{"uncorrelated", []float64{-1, 0, 1, 0}, []float64{1, 0, 1, 2}},
	}

	pipeline := agreement.NewPipeline()
	for _, c := range cases {
		report, err := pipeline.Process(c.truth, c.estimate)
		if err != nil {
			log.Error().Err(err).Str("case", c.name).Msg("agreement failed")
			continue
		}
		log.Info().
			Str("case", c.name).
			Stringer("sign", report.Sign).
			Float64("intercept", report.GMFR.Intercept).
			Float64("slope", report.GMFR.Slope).
			Float64("ssd", report.SSD).
			Float64("spod", report.SPOD).
			Float64("spdu", report.SPDU).
			Float64("spds", report.SPDS).
			Float64("ac", report.Coefficients.AC).
			Float64("acu", report.Coefficients.ACU).
			Float64("acs", report.Coefficients.ACS).
			Msgf("case %s scored AC %f", c.name, report.Coefficients.AC)
	}
}
