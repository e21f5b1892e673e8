package agreement

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	identical = []float64{1, 2, 3, 4}
	doubled   = []float64{2, 4, 6}
	base      = []float64{1, 2, 3}
	swapped   = []float64{2, 1, 4, 3}
)

func randomSeries(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = rand.Float64() * 100
	}
	return x
}

func TestGMFR(t *testing.T) {
	t.Run("identity fit", func(t *testing.T) {
		fit, err := GMFR(identical, identical, Positive)
		require.NoError(t, err)
		assert.Equal(t, Fit{Intercept: 0, Slope: 1}, fit)
	})

	t.Run("identity fit on random series", func(t *testing.T) {
		x := randomSeries(50)
		fit, err := GMFR(x, x, Positive)
		require.NoError(t, err)
		assert.InDelta(t, 0, fit.Intercept, 1e-9)
		assert.InDelta(t, 1, fit.Slope, 1e-12)
	})

	t.Run("estimate is twice truth", func(t *testing.T) {
		fit, err := GMFR(base, doubled, Positive)
		require.NoError(t, err)
		assert.InDelta(t, 0, fit.Intercept, 1e-12)
		assert.InDelta(t, 0.5, fit.Slope, 1e-12)
	})

	t.Run("negative sign flips the slope", func(t *testing.T) {
		fit, err := GMFR(identical, swapped, Negative)
		require.NoError(t, err)
		assert.Equal(t, Fit{Intercept: 5, Slope: -1}, fit)
	})

	t.Run("zero estimate variance", func(t *testing.T) {
		_, err := GMFR(base, []float64{5, 5, 5}, Positive)
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})

	t.Run("zero truth variance is a flat line", func(t *testing.T) {
		fit, err := GMFR([]float64{5, 5, 5}, base, Positive)
		require.NoError(t, err)
		assert.Equal(t, Fit{Intercept: 5, Slope: 0}, fit)
	})

	t.Run("contract violations", func(t *testing.T) {
		_, err := GMFR(base, identical, Positive)
		assert.ErrorIs(t, err, ErrLengthMismatch)

		_, err = GMFR([]float64{1}, []float64{1}, Positive)
		assert.ErrorIs(t, err, ErrDegenerateInput)

		_, err = GMFR(base, doubled, 0)
		assert.ErrorIs(t, err, ErrInvalidSign)

		_, err = GMFR(base, doubled, 2)
		assert.ErrorIs(t, err, ErrInvalidSign)
	})
}

func TestFitPredict(t *testing.T) {
	fit := Fit{Intercept: 1, Slope: 2}
	assert.Equal(t, []float64{1, 3, 5}, fit.Predict([]float64{0, 1, 2}))
	assert.Empty(t, fit.Predict(nil))
}

func TestSSD(t *testing.T) {
	tests := []struct {
		name     string
		truth    []float64
		estimate []float64
		want     float64
	}{
		{name: "identical", truth: identical, estimate: identical, want: 0},
		{name: "doubled", truth: base, estimate: doubled, want: 14},
		{name: "swapped", truth: identical, estimate: swapped, want: 4},
		{name: "single pair", truth: []float64{3}, estimate: []float64{1}, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SSD(tt.truth, tt.estimate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			reversed, err := SSD(tt.estimate, tt.truth)
			require.NoError(t, err)
			assert.Equal(t, got, reversed)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, err := SSD(nil, nil)
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := SSD(base, identical)
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := SSD([]float64{math.MaxFloat64}, []float64{-math.MaxFloat64})
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})
}

func TestSPOD(t *testing.T) {
	tests := []struct {
		name     string
		truth    []float64
		estimate []float64
		want     float64
	}{
		// deviations 1.5, .5, .5, 1.5 squared and summed
		{name: "identical", truth: identical, estimate: identical, want: 5},
		// d = 2: (2+1)(2+2) + (2+0)(2+0) + (2+1)(2+2)
		{name: "doubled", truth: base, estimate: doubled, want: 28},
		{name: "swapped", truth: identical, estimate: swapped, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SPOD(tt.truth, tt.estimate)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}

	t.Run("constant series with equal means", func(t *testing.T) {
		got, err := SPOD([]float64{2, 2}, []float64{2, 2})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := SPOD([]float64{1}, []float64{1})
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})
}

func TestSPDUAndSPDS(t *testing.T) {
	tests := []struct {
		name     string
		truth    []float64
		estimate []float64
		sign     Sign
		wantSPDU float64
		wantSPDS float64
	}{
		{name: "identical", truth: identical, estimate: identical, sign: Positive, wantSPDU: 0, wantSPDS: 0},
		{name: "doubled", truth: base, estimate: doubled, sign: Positive, wantSPDU: 0, wantSPDS: 14},
		{name: "swapped", truth: identical, estimate: swapped, sign: Positive, wantSPDU: 4, wantSPDS: 0},
		// the wrong sign inflates SPDU past SSD; SPDS is left negative
		{name: "swapped with wrong sign", truth: identical, estimate: swapped, sign: Negative, wantSPDU: 16, wantSPDS: -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spdu, err := SPDU(tt.truth, tt.estimate, tt.sign)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantSPDU, spdu, 1e-9)

			spds, err := SPDS(tt.truth, tt.estimate, tt.sign)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantSPDS, spds, 1e-9)
		})
	}

	t.Run("decomposition identity", func(t *testing.T) {
		for range 20 {
			truth, estimate := randomSeries(30), randomSeries(30)
			for _, sign := range []Sign{Positive, Negative} {
				ssd, err := SSD(truth, estimate)
				require.NoError(t, err)
				spdu, err := SPDU(truth, estimate, sign)
				require.NoError(t, err)
				spds, err := SPDS(truth, estimate, sign)
				require.NoError(t, err)

				assert.InDelta(t, ssd, spdu+spds, 1e-6*ssd)
			}
		}
	})

	t.Run("constant truth", func(t *testing.T) {
		_, err := SPDU([]float64{1, 1, 1}, base, Positive)
		assert.ErrorIs(t, err, ErrDegenerateInput)

		_, err = SPDS([]float64{1, 1, 1}, base, Positive)
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})

	t.Run("invalid sign", func(t *testing.T) {
		_, err := SPDU(base, doubled, 0)
		assert.ErrorIs(t, err, ErrInvalidSign)
	})
}

func TestCorrelationSign(t *testing.T) {
	sign, err := CorrelationSign(base, doubled)
	require.NoError(t, err)
	assert.Equal(t, Positive, sign)

	sign, err = CorrelationSign(base, []float64{3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, Negative, sign)

	_, err = CorrelationSign([]float64{-1, 0, 1, 0}, []float64{1, 0, 1, 2})
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, err = CorrelationSign(base, []float64{7, 7, 7})
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestSignString(t *testing.T) {
	assert.Equal(t, "+1", Positive.String())
	assert.Equal(t, "-1", Negative.String())
	assert.Equal(t, "invalid(0)", Sign(0).String())
	assert.False(t, Sign(3).Valid())
}
