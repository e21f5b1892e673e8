package service

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mikemahoney218/waywiserrr/internal/spatial"
)

// toDense packs rows into a matrix. No rows gives the empty matrix.
func toDense(points Points) (*mat.Dense, error) {
	if len(points) == 0 {
		return &mat.Dense{}, nil
	}

	cols := len(points[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: points have no coordinates", spatial.ErrDegenerateInput)
	}

	data := make([]float64, 0, len(points)*cols)
	for i, row := range points {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", spatial.ErrDimensionMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(points), cols, data), nil
}

func toDistances(values []float64) []Distance {
	out := make([]Distance, len(values))
	for i, v := range values {
		out[i] = Distance(v)
	}
	return out
}
