// Package spatial computes pairwise Euclidean distances between point sets
// and the distance summaries used to judge how samples are placed.
//
// Point sets are gonum matrices with one observation per row and one
// feature per column. The zero-value *mat.Dense is the empty point set.
package spatial

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/viterin/vek"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// DistanceMatrix returns the n_query x n_data matrix whose (i, j) entry is
// the Euclidean distance between query row i and data row j.
//
// Cells are computed concurrently. An empty data or query set yields an
// empty matrix rather than an error.
func DistanceMatrix(data, query mat.Matrix, opts ...Option) (*mat.Dense, error) {
	return distanceMatrix(data, query, newConfig(opts...))
}

func distanceMatrix(data, query mat.Matrix, cfg config) (*mat.Dense, error) {
	nData, kData := dims(data)
	nQuery, kQuery := dims(query)
	if nData == 0 || nQuery == 0 {
		return &mat.Dense{}, nil
	}
	if kData != kQuery {
		return nil, fmt.Errorf("%w: query has %d columns, data has %d", ErrDimensionMismatch, kQuery, kData)
	}

	startTime := time.Now()
	d := asDense(data)
	q := asDense(query)

	out := mat.NewDense(nQuery, nData, nil)
	raw := out.RawMatrix()

	// each span owns a disjoint range of cells, so no locking is needed
	var g errgroup.Group
	for _, s := range partition(nQuery*nData, cfg.workers) {
		g.Go(func() error {
			for c := s.lo; c < s.hi; c++ {
				i, j := c/nData, c%nData
				raw.Data[i*raw.Stride+j] = vek.Distance(q.RawRowView(i), d.RawRowView(j))
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Debug().
		Int("query", nQuery).
		Int("data", nData).
		Int("features", kData).
		Int("workers", cfg.workers).
		Dur("elapsed", time.Since(startTime)).
		Msg("computed distance matrix")

	return out, nil
}

func dims(m mat.Matrix) (rows, cols int) {
	if m == nil {
		return 0, 0
	}
	if d, ok := m.(*mat.Dense); ok && d.IsEmpty() {
		return 0, 0
	}
	return m.Dims()
}

// asDense gives row access to m, copying only when m is not already dense.
func asDense(m mat.Matrix) *mat.Dense {
	if d, ok := m.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(m)
}

type span struct {
	lo, hi int
}

// partition splits [0, n) into at most parts contiguous spans whose sizes
// differ by at most one.
func partition(n, parts int) []span {
	if parts > n {
		parts = n
	}
	if parts < 1 {
		return nil
	}

	spans := make([]span, 0, parts)
	size, rem := n/parts, n%parts
	lo := 0
	for p := range parts {
		hi := lo + size
		if p < rem {
			hi++
		}
		spans = append(spans, span{lo: lo, hi: hi})
		lo = hi
	}
	return spans
}
