// Package model loads trained classifier artifacts exported from the
// training pipeline. An artifact is a JSON file holding the model's class
// values, its fitted centroids with per-class probability distributions,
// and any label encoders fitted during training.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"go.uber.org/zap"
)

// artifact mirrors the exported JSON layout. Class values may be category
// names or integer codes depending on how the model was trained; integer
// codes arrive as JSON numbers.
type artifact struct {
	Classes   []interface{} `json:"classes"`
	Centroids []centroid    `json:"centroids"`
	Encoders  encoders      `json:"encoders"`
}

type centroid struct {
	Features      []float64 `json:"features"`
	Probabilities []float64 `json:"probabilities"`
}

type encoders struct {
	Day      map[string]int `json:"day,omitempty"`
	Timeslot map[string]int `json:"timeslot,omitempty"`
	Target   map[string]int `json:"target,omitempty"`
}

// classifier is a nearest-centroid model over the exported artifact: a
// prediction is the class distribution of the centroid closest to the
// feature vector in Euclidean space.
type classifier struct {
	classes   []string
	centroids []centroid
	dayEnc    repository.LabelEncoder
	slotEnc   repository.LabelEncoder
	targetEnc repository.LabelEncoder
	logger    *zap.Logger
}

// Load reads and validates a classifier artifact.
func Load(path string, logger *zap.Logger) (repository.Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	if len(a.Classes) == 0 {
		return nil, fmt.Errorf("model artifact has no classes")
	}
	if len(a.Centroids) == 0 {
		return nil, fmt.Errorf("model artifact has no centroids")
	}
	for i, c := range a.Centroids {
		if len(c.Probabilities) != len(a.Classes) {
			return nil, fmt.Errorf("centroid %d: %d probabilities for %d classes",
				i, len(c.Probabilities), len(a.Classes))
		}
	}

	classes := make([]string, len(a.Classes))
	for i, v := range a.Classes {
		classes[i] = classValueString(v)
	}

	c := &classifier{
		classes:   classes,
		centroids: a.Centroids,
		logger:    logger,
	}
	if len(a.Encoders.Day) > 0 {
		c.dayEnc = newMapEncoder(a.Encoders.Day)
	}
	if len(a.Encoders.Timeslot) > 0 {
		c.slotEnc = newMapEncoder(a.Encoders.Timeslot)
	}
	if len(a.Encoders.Target) > 0 {
		c.targetEnc = newMapEncoder(a.Encoders.Target)
	}

	logger.Info("Classifier artifact loaded",
		zap.String("path", path),
		zap.Strings("classes", classes),
		zap.Int("centroids", len(a.Centroids)))

	return c, nil
}

// classValueString renders a raw class value as text. Integer codes are
// rendered in decimal so "3" and 3 resolve to the same key.
func classValueString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func (c *classifier) Predict(features domain.FeatureVector) (string, error) {
	probs, err := c.PredictProbabilities(features)
	if err != nil {
		return "", err
	}

	best := ""
	bestProb := -1.0
	// Iterate classes in training order so ties resolve deterministically.
	for _, class := range c.classes {
		if probs[class] > bestProb {
			best = class
			bestProb = probs[class]
		}
	}
	return best, nil
}

func (c *classifier) PredictProbabilities(features domain.FeatureVector) (map[string]float64, error) {
	nearest := c.nearestCentroid(features)
	if nearest == nil {
		return nil, fmt.Errorf("classifier has no centroids")
	}

	probs := make(map[string]float64, len(c.classes))
	for i, class := range c.classes {
		probs[class] = nearest.Probabilities[i]
	}
	return probs, nil
}

func (c *classifier) nearestCentroid(features domain.FeatureVector) *centroid {
	var nearest *centroid
	best := 0.0
	for i := range c.centroids {
		cand := &c.centroids[i]
		d := 0.0
		for j := 0; j < len(features) && j < len(cand.Features); j++ {
			diff := features[j] - cand.Features[j]
			d += diff * diff
		}
		if nearest == nil || d < best {
			nearest = cand
			best = d
		}
	}
	return nearest
}

func (c *classifier) Classes() []string {
	return c.classes
}

func (c *classifier) DayEncoder() repository.LabelEncoder {
	return c.dayEnc
}

func (c *classifier) TimeslotEncoder() repository.LabelEncoder {
	return c.slotEnc
}

func (c *classifier) TargetEncoder() repository.LabelEncoder {
	return c.targetEnc
}
