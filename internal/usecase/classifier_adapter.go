package usecase

import (
	"strconv"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"github.com/safebag-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

// ClassifierAdapter gives the scorer uniform probability and label access
// over a classifier regardless of how the model represents its class
// values: raw category names ("Low") or integer codes behind a fitted
// label encoder.
type ClassifierAdapter struct {
	clf    repository.Classifier
	logger *zap.Logger
}

func NewClassifierAdapter(clf repository.Classifier, logger *zap.Logger) *ClassifierAdapter {
	return &ClassifierAdapter{
		clf:    clf,
		logger: logger,
	}
}

// SafetyProbability computes the probability mass of non-dangerous
// outcomes for the feature vector. The fallback order is a contract, not
// an implementation detail:
//
//  1. "Low" (weight 1.0) and "Moderate" (weight 0.5) looked up directly
//     among the class values;
//  2. the same lookup translated through the label encoder;
//  3. when tiers 1-2 attribute no mass, 1 - P("Critical"), resolved
//     direct-or-encoded;
//  4. the maximum class probability. Imprecise, but better than refusing
//     to answer when the class list matches nothing we know.
func (a *ClassifierAdapter) SafetyProbability(features domain.FeatureVector) (float64, error) {
	probs, err := a.clf.PredictProbabilities(features)
	if err != nil {
		return 0, err
	}

	// Tier 1: category names appear directly among the class values.
	if score := a.weightedMass(probs, nil); score > 0 {
		return clamp01(score), nil
	}

	// Tier 2: translate the category names into the model's class-value
	// space and retry.
	if enc := a.clf.TargetEncoder(); enc != nil {
		if score := a.weightedMass(probs, enc); score > 0 {
			return clamp01(score), nil
		}
	}

	// Tier 3: no mass attributed so far; invert the critical class.
	if p, ok := a.lookup(probs, domain.LabelCritical, nil); ok {
		return clamp01(1 - p), nil
	}
	if enc := a.clf.TargetEncoder(); enc != nil {
		if p, ok := a.lookup(probs, domain.LabelCritical, enc); ok {
			return clamp01(1 - p), nil
		}
	}

	// Tier 4: last resort.
	a.logger.Debug("Classifier classes match no known risk category, using max probability",
		zap.Strings("classes", a.clf.Classes()))
	max := 0.0
	for _, p := range probs {
		if p > max {
			max = p
		}
	}
	return clamp01(max), nil
}

// weightedMass sums P(Low)*1.0 + P(Moderate)*0.5, resolving both labels
// through enc when given.
func (a *ClassifierAdapter) weightedMass(probs map[string]float64, enc repository.LabelEncoder) float64 {
	mass := 0.0
	if p, ok := a.lookup(probs, domain.LabelLow, enc); ok {
		mass += p
	}
	if p, ok := a.lookup(probs, domain.LabelModerate, enc); ok {
		mass += 0.5 * p
	}
	return mass
}

// lookup finds the probability for a category label, optionally translated
// into the classifier's class-value space.
func (a *ClassifierAdapter) lookup(probs map[string]float64, label string, enc repository.LabelEncoder) (float64, bool) {
	key := label
	if enc != nil {
		code, err := enc.Encode(label)
		if err != nil {
			return 0, false
		}
		key = strconv.Itoa(code)
	}
	p, ok := probs[key]
	return p, ok
}

// PredictLabel runs the classifier and decodes the predicted class into a
// human-readable label. On any decode failure the raw class value's string
// form is surfaced instead of an error.
func (a *ClassifierAdapter) PredictLabel(features domain.FeatureVector) (string, error) {
	raw, err := a.clf.Predict(features)
	if err != nil {
		return "", err
	}
	return a.DecodeLabel(raw), nil
}

// DecodeLabel inverse-encodes a raw class value when an encoder is
// present; otherwise (or on decode failure) the raw value is returned.
func (a *ClassifierAdapter) DecodeLabel(raw string) string {
	enc := a.clf.TargetEncoder()
	if enc == nil {
		return raw
	}

	code, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}

	label, err := enc.Decode(code)
	if err != nil {
		a.logger.Debug("Label decode failed, surfacing raw class value",
			zap.String("raw", raw),
			zap.NamedError("cause", err),
			zap.Error(errors.ErrDecodeFailure))
		return raw
	}
	return label
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
