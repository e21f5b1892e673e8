package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMeanDistance(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		dBar, err := MeanDistance(line())
		require.NoError(t, err)
		// pairs (0,1)=5 (0,2)=10 (1,2)=5, each counted twice over 3*2 ordered pairs
		assert.InDelta(t, 40.0/6.0, dBar, 1e-12)
	})

	t.Run("two points", func(t *testing.T) {
		dBar, err := MeanDistance(mat.NewDense(2, 2, []float64{0, 0, 3, 4}))
		require.NoError(t, err)
		assert.InDelta(t, 5.0, dBar, 1e-12)
	})

	t.Run("identical points", func(t *testing.T) {
		points := mat.NewDense(4, 3, []float64{
			1, 2, 3,
			1, 2, 3,
			1, 2, 3,
			1, 2, 3,
		})
		dBar, err := MeanDistance(points)
		require.NoError(t, err)
		assert.Equal(t, 0.0, dBar)
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := MeanDistance(mat.NewDense(1, 2, []float64{1, 1}))
		assert.ErrorIs(t, err, ErrDegenerateInput)

		_, err = MeanDistance(&mat.Dense{})
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})

	t.Run("non-finite coordinates", func(t *testing.T) {
		_, err := MeanDistance(mat.NewDense(2, 1, []float64{0, math.Inf(1)}))
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})
}

func TestNearestDistances(t *testing.T) {
	t.Run("self matches are excluded", func(t *testing.T) {
		got, err := NearestDistances(line(), line(), false)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{5, 5, 5}, got, 1e-12)
	})

	t.Run("distinct sets keep zero distances", func(t *testing.T) {
		got, err := NearestDistances(line(), line(), true)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0}, got)
	})

	t.Run("query is a leading subset of data", func(t *testing.T) {
		query := mat.NewDense(2, 2, []float64{0, 0, 3, 4})
		got, err := NearestDistances(line(), query, false)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{5, 5}, got, 1e-12)
	})

	t.Run("coincident distinct rows still report zero", func(t *testing.T) {
		points := mat.NewDense(3, 2, []float64{
			1, 1,
			1, 1,
			4, 5,
		})
		got, err := NearestDistances(points, points, false)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0, 0, 5}, got, 1e-12)
	})

	t.Run("lone point has no neighbour", func(t *testing.T) {
		point := mat.NewDense(1, 2, []float64{1, 1})
		got, err := NearestDistances(point, point, false)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, math.IsInf(got[0], 1))
	})

	t.Run("result length follows query", func(t *testing.T) {
		data := randomPoints(31, 2)
		query := randomPoints(7, 2)
		got, err := NearestDistances(data, query, true, WithWorkers(3))
		require.NoError(t, err)
		assert.Len(t, got, 7)

		dists, err := DistanceMatrix(data, query)
		require.NoError(t, err)
		for i, v := range got {
			for j := range 31 {
				assert.LessOrEqual(t, v, dists.At(i, j))
			}
		}
	})

	t.Run("empty query", func(t *testing.T) {
		got, err := NearestDistances(line(), &mat.Dense{}, false)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty data", func(t *testing.T) {
		_, err := NearestDistances(&mat.Dense{}, line(), true)
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})

	t.Run("overflowing distances are rejected", func(t *testing.T) {
		points := mat.NewDense(3, 1, []float64{0, 1, 1e200})
		for _, distinct := range []bool{true, false} {
			_, err := NearestDistances(points, points, distinct)
			assert.ErrorIs(t, err, ErrDegenerateInput, "distinct=%v", distinct)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := NearestDistances(line(), mat.NewDense(1, 3, nil), true)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}
