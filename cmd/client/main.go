package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mikemahoney218/waywiserrr/internal/agreement"
	"github.com/mikemahoney218/waywiserrr/internal/service"
	"github.com/mikemahoney218/waywiserrr/internal/utils/logger"
	"github.com/mikemahoney218/waywiserrr/pkg/rpc"
)

var baseURL = flag.String("url", "http://localhost:8888", "server base url")

func main() {
	logger.Init()

	client, err := rpc.NewClient(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create client")
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := client.WaitReady(ctx, *baseURL); err != nil {
		log.Fatal().Err(err).Str("url", *baseURL).Msg("Server not ready")
	}

	points := service.Points{{0, 0}, {3, 4}, {6, 8}, {1, 1}}

	dBar, err := rpc.Send[service.DBarRequest, service.DBarResponse](ctx, client, *baseURL, service.DBarRequest{Points: points})
	if err != nil {
		log.Error().Err(err).Msg("DBarRequest failed")
	} else {
		log.Info().Float64("d_bar", dBar.DBar).Msg("mean distance")
	}

	minDists, err := rpc.Send[service.MinDistsRequest, service.MinDistsResponse](ctx, client, *baseURL, service.MinDistsRequest{Data: points, Query: points})
	if err != nil {
		log.Error().Err(err).Msg("MinDistsRequest failed")
	} else {
		log.Info().Any("min_dists", minDists.MinDists).Msg("nearest neighbour distances")
	}

	series := []service.PairedSeries{
		{Truth: []float64{1, 2, 3, 4, 5}, Estimate: []float64{1.1, 2.3, 2.8, 4.2, 4.9}},
		{Truth: []float64{1, 2, 3, 4}, Estimate: []float64{4, 3, 2, 1}},
		{Truth: []float64{1, 2, 3}, Estimate: []float64{1, 2}},
	}
	requests := make([]service.AgreementRequest, len(series))
	for i, s := range series {
		requests[i] = service.AgreementRequest{PairedSeries: s}
	}

	reports, errs := rpc.SendMany[service.AgreementRequest, agreement.Report](ctx, client, *baseURL, requests)
	for i, report := range reports {
		if errs[i] != nil {
			log.Error().Err(errs[i]).Int("request", i).Msg("AgreementRequest failed")
			continue
		}
		log.Info().
			Int("request", i).
			Stringer("sign", report.Sign).
			Float64("ssd", report.SSD).
			Float64("spod", report.SPOD).
			Float64("spdu", report.SPDU).
			Float64("spds", report.SPDS).
			Float64("ac", report.Coefficients.AC).
			Msg("agreement report")
	}
}
