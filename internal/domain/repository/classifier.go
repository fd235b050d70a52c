package repository

import (
	"github.com/safebag-backend/internal/domain"
)

// LabelEncoder translates between human-readable category labels and the
// integer class values a trained classifier uses internally.
type LabelEncoder interface {
	Encode(label string) (int, error)
	Decode(value int) (string, error)
}

// Classifier is the capability surface of a trained model artifact. Class
// values are rendered as strings: either the category name itself ("Low")
// or the decimal form of an internal integer code ("3"), depending on how
// the model was trained.
//
// Encoder accessors return nil when the artifact carries no encoder for
// that field; callers resolve this once at load time, not per prediction.
type Classifier interface {
	// Predict returns the raw predicted class value for the features.
	Predict(features domain.FeatureVector) (string, error)

	// PredictProbabilities returns the probability mass per class value.
	PredictProbabilities(features domain.FeatureVector) (map[string]float64, error)

	// Classes returns the model's class values in training order.
	Classes() []string

	DayEncoder() LabelEncoder
	TimeslotEncoder() LabelEncoder
	TargetEncoder() LabelEncoder
}
