package service

import (
	"math"
	"strconv"

	"github.com/mikemahoney218/waywiserrr/internal/agreement"
)

// Points is a point set on the wire, one row per observation.
type Points [][]float64

// Distance is a distance on the wire. JSON has no infinity, so +Inf travels
// as null. The spatial package only reports +Inf for a point with no
// neighbour left after self-exclusion.
type Distance float64

func (d Distance) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(d), 1) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(d), 'g', -1, 64), nil
}

func (d *Distance) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Distance(math.Inf(1))
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*d = Distance(v)
	return nil
}

type PairedSeries struct {
	Truth    []float64 `json:"truth"`
	Estimate []float64 `json:"estimate"`
}

type DBarRequest struct {
	Points Points `json:"points"`
}

type DBarResponse struct {
	DBar float64 `json:"d_bar"`
}

type MinDistsRequest struct {
	Data     Points `json:"data"`
	Query    Points `json:"query"`
	Distinct bool   `json:"distinct"`
}

type MinDistsResponse struct {
	MinDists []Distance `json:"min_dists"`
}

type GMFRRequest struct {
	PairedSeries
	Sign agreement.Sign `json:"sign"`
}

type SSDRequest struct {
	PairedSeries
}

type SPODRequest struct {
	PairedSeries
}

type SPDURequest struct {
	PairedSeries
	Sign agreement.Sign `json:"sign"`
}

type SPDSRequest struct {
	PairedSeries
	Sign agreement.Sign `json:"sign"`
}

// AgreementRequest asks for the full report. A missing sign is derived from
// the correlation of the series.
type AgreementRequest struct {
	PairedSeries
	Sign *agreement.Sign `json:"sign,omitempty"`
}

type StatisticResponse struct {
	Value float64 `json:"value"`
}
