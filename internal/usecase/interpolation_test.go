package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebag-backend/internal/domain"
)

func TestInterpolationWeights(t *testing.T) {
	neighborsAt := func(distances ...float64) []domain.ZoneDistance {
		neighbors := make([]domain.ZoneDistance, len(distances))
		for i, d := range distances {
			neighbors[i] = domain.ZoneDistance{
				Zone:     &domain.ReferenceZone{ID: int64(i + 1)},
				Distance: d,
			}
		}
		return neighbors
	}

	t.Run("weights sum to one", func(t *testing.T) {
		cases := []struct {
			name      string
			distances []float64
		}{
			{"varied distances", []float64{0.013, 0.2, 1.7}},
			{"query exactly on a centroid", []float64{0, 0.05, 0.1}},
			{"all centroids coincident", []float64{0, 0, 0}},
			{"single neighbor", []float64{0.42}},
			{"far-flung neighbors", []float64{12.5, 80.1, 179.9}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				weights := interpolationWeights(neighborsAt(tc.distances...))
				require.Len(t, weights, len(tc.distances))

				sum := 0.0
				for _, w := range weights {
					assert.False(t, math.IsNaN(w))
					assert.False(t, math.IsInf(w, 0))
					assert.GreaterOrEqual(t, w, 0.0)
					sum += w
				}
				assert.InDelta(t, 1.0, sum, 1e-6)
			})
		}
	})

	t.Run("closer neighbor carries more weight", func(t *testing.T) {
		weights := interpolationWeights(neighborsAt(0.01, 0.5))
		assert.Greater(t, weights[0], weights[1])
	})

	t.Run("centroid hit dominates but stays finite", func(t *testing.T) {
		weights := interpolationWeights(neighborsAt(0, 0.1))
		assert.Greater(t, weights[0], 0.99)
		assert.Less(t, weights[0], 1.0)
	})
}
