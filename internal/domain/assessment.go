package domain

import "time"

// RiskBand is the banded risk level shown to the user.
type RiskBand string

const (
	RiskLow      RiskBand = "Low"
	RiskModerate RiskBand = "Moderate"
	RiskHigh     RiskBand = "High"
	RiskCritical RiskBand = "Critical"
	RiskUnknown  RiskBand = "Unknown"
)

// Canonical risk category labels as the training data spelled them. The
// classifier adapter resolves its class values against these.
const (
	LabelLow      = "Low"
	LabelModerate = "Moderate"
	LabelHigh     = "High"
	LabelCritical = "Critical"
)

// Timeslot is the coarse hour-of-day bucket used as a model feature.
type Timeslot string

const (
	TimeslotNight     Timeslot = "Night"
	TimeslotMorning   Timeslot = "Morning"
	TimeslotAfternoon Timeslot = "Afternoon"
	TimeslotEvening   Timeslot = "Evening"
)

// TimeslotForHour buckets an hour into its timeslot:
// Night [0,5], Morning [6,11], Afternoon [12,17], Evening [18,23].
func TimeslotForHour(hour int) Timeslot {
	switch {
	case hour <= 5:
		return TimeslotNight
	case hour <= 11:
		return TimeslotMorning
	case hour <= 17:
		return TimeslotAfternoon
	default:
		return TimeslotEvening
	}
}

// FeatureVector is the ordered input the classifiers were trained on:
// [zone_encoding, latitude, longitude, hour, day_of_week_enc, timeslot_enc].
type FeatureVector [6]float64

// NewFeatureVector assembles the model input in training column order.
func NewFeatureVector(zoneEnc int, lat, lon float64, hour, dayEnc, slotEnc int) FeatureVector {
	return FeatureVector{
		float64(zoneEnc),
		lat,
		lon,
		float64(hour),
		float64(dayEnc),
		float64(slotEnc),
	}
}

// SafetyAssessment is the produced risk verdict for a coordinate.
type SafetyAssessment struct {
	RiskBand          RiskBand  `json:"risk"`
	IncidentType      string    `json:"crime"`
	SafetyProbability float64   `json:"safety_probability"`
	AssessedAt        time.Time `json:"assessed_at"`
}
