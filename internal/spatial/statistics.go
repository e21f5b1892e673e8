package spatial

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MeanDistance returns d_bar, the mean distance between all pairs of
// distinct points. Self-distances are left in the sum (they are zero) and
// excluded through the n*(n-1) divisor.
func MeanDistance(points mat.Matrix, opts ...Option) (float64, error) {
	n, _ := dims(points)
	if n <= 1 {
		return 0, fmt.Errorf("%w: mean distance needs at least 2 points, got %d", ErrDegenerateInput, n)
	}

	dists, err := distanceMatrix(points, points, newConfig(opts...))
	if err != nil {
		return 0, err
	}

	dBar := mat.Sum(dists) / float64(n*n-n)
	if math.IsNaN(dBar) || math.IsInf(dBar, 0) {
		return 0, fmt.Errorf("%w: mean distance is not finite", ErrDegenerateInput)
	}
	return dBar, nil
}

// NearestDistances returns, for every query row, the distance to the
// closest data row.
//
// When distinct is false the two sets are assumed to share points
// positionally (query row i is data row i), so the diagonal is masked with
// +Inf before the search and a point is never matched with itself. A row
// with nothing left to match reports +Inf, and that is the only way +Inf
// appears: a distance that overflows is ErrDegenerateInput.
func NearestDistances(data, query mat.Matrix, distinct bool, opts ...Option) ([]float64, error) {
	cfg := newConfig(opts...)

	nData, _ := dims(data)
	nQuery, _ := dims(query)
	if nQuery == 0 {
		return []float64{}, nil
	}
	if nData == 0 {
		return nil, fmt.Errorf("%w: nearest distances need at least 1 data point", ErrDegenerateInput)
	}

	dists, err := distanceMatrix(data, query, cfg)
	if err != nil {
		return nil, err
	}

	if err := checkFinite(dists); err != nil {
		return nil, err
	}

	if !distinct {
		maskDiagonal(dists)
	}

	return rowMinima(dists, cfg.workers), nil
}

func checkFinite(m *mat.Dense) error {
	raw := m.RawMatrix()
	for i := range raw.Rows {
		for j, v := range raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: distance between query %d and data %d is %v", ErrDegenerateInput, i, j, v)
			}
		}
	}
	return nil
}

func maskDiagonal(m *mat.Dense) {
	rows, cols := m.Dims()
	for i := range min(rows, cols) {
		m.Set(i, i, math.Inf(1))
	}
}

func rowMinima(m *mat.Dense, workers int) []float64 {
	rows, _ := m.Dims()
	minima := make([]float64, rows)

	var g errgroup.Group
	for _, s := range partition(rows, workers) {
		g.Go(func() error {
			for i := s.lo; i < s.hi; i++ {
				minima[i] = floats.Min(m.RawRowView(i))
			}
			return nil
		})
	}
	_ = g.Wait()

	return minima
}
