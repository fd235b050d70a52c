package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/repository/model"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const riskArtifact = `{
	"classes": ["Low", "Moderate", "High", "Critical"],
	"centroids": [
		{"features": [4, 51.54, -0.14, 12, 2, 2], "probabilities": [0.7, 0.2, 0.07, 0.03]},
		{"features": [11, 51.55, -0.06, 23, 5, 3], "probabilities": [0.1, 0.2, 0.3, 0.4]}
	],
	"encoders": {
		"day": {"Monday": 0, "Tuesday": 1, "Wednesday": 2, "Thursday": 3, "Friday": 4, "Saturday": 5, "Sunday": 6},
		"timeslot": {"Night": 0, "Morning": 1, "Afternoon": 2, "Evening": 3}
	}
}`

func TestLoad(t *testing.T) {
	logger := zap.NewNop()

	t.Run("loads a valid artifact", func(t *testing.T) {
		clf, err := model.Load(writeArtifact(t, riskArtifact), logger)
		require.NoError(t, err)

		assert.Equal(t, []string{"Low", "Moderate", "High", "Critical"}, clf.Classes())
		assert.NotNil(t, clf.DayEncoder())
		assert.NotNil(t, clf.TimeslotEncoder())
		assert.Nil(t, clf.TargetEncoder())
	})

	t.Run("numeric class values become decimal strings", func(t *testing.T) {
		clf, err := model.Load(writeArtifact(t, `{
			"classes": [0, 1, 2],
			"centroids": [{"features": [0, 0, 0, 0, 0, 0], "probabilities": [0.5, 0.3, 0.2]}]
		}`), logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1", "2"}, clf.Classes())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := model.Load(filepath.Join(t.TempDir(), "absent.json"), logger)
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := model.Load(writeArtifact(t, `{"classes": [`), logger)
		assert.Error(t, err)
	})

	t.Run("no classes", func(t *testing.T) {
		_, err := model.Load(writeArtifact(t, `{
			"classes": [],
			"centroids": [{"features": [0], "probabilities": []}]
		}`), logger)
		assert.Error(t, err)
	})

	t.Run("no centroids", func(t *testing.T) {
		_, err := model.Load(writeArtifact(t, `{
			"classes": ["Low"],
			"centroids": []
		}`), logger)
		assert.Error(t, err)
	})

	t.Run("probability count must match class count", func(t *testing.T) {
		_, err := model.Load(writeArtifact(t, `{
			"classes": ["Low", "High"],
			"centroids": [{"features": [0, 0, 0, 0, 0, 0], "probabilities": [1.0]}]
		}`), logger)
		assert.Error(t, err)
	})
}

func TestClassifier_Predict(t *testing.T) {
	logger := zap.NewNop()
	clf, err := model.Load(writeArtifact(t, riskArtifact), logger)
	require.NoError(t, err)

	t.Run("uses the nearest centroid distribution", func(t *testing.T) {
		// Right on top of the first centroid.
		features := domain.NewFeatureVector(4, 51.54, -0.14, 12, 2, 2)

		probs, err := clf.PredictProbabilities(features)
		require.NoError(t, err)
		assert.InDelta(t, 0.7, probs["Low"], 1e-9)
		assert.InDelta(t, 0.03, probs["Critical"], 1e-9)

		label, err := clf.Predict(features)
		require.NoError(t, err)
		assert.Equal(t, "Low", label)
	})

	t.Run("distant query snaps to the other centroid", func(t *testing.T) {
		features := domain.NewFeatureVector(11, 51.55, -0.06, 23, 5, 3)

		label, err := clf.Predict(features)
		require.NoError(t, err)
		assert.Equal(t, "Critical", label)
	})
}

func TestClassifier_Encoders(t *testing.T) {
	logger := zap.NewNop()
	clf, err := model.Load(writeArtifact(t, riskArtifact), logger)
	require.NoError(t, err)

	t.Run("fitted day encoder round-trips", func(t *testing.T) {
		code, err := clf.DayEncoder().Encode("Wednesday")
		require.NoError(t, err)
		assert.Equal(t, 2, code)

		label, err := clf.DayEncoder().Decode(2)
		require.NoError(t, err)
		assert.Equal(t, "Wednesday", label)
	})

	t.Run("unknown label errors", func(t *testing.T) {
		_, err := clf.DayEncoder().Encode("Caturday")
		assert.Error(t, err)

		_, err = clf.TimeslotEncoder().Decode(42)
		assert.Error(t, err)
	})
}
