package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/safebag-backend/internal/config"
	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"github.com/safebag-backend/internal/pkg/errors"
	"github.com/safebag-backend/internal/pkg/utils"
	"github.com/safebag-backend/internal/repository/spatial"
	"go.uber.org/zap"
)

// interpolationEpsilon keeps inverse-distance weights finite when a query
// lands exactly on a ward centroid.
const interpolationEpsilon = 1e-4

// AssessmentUseCase is the safety scorer: safe-haven override, feature
// construction, spatially interpolated classifier scoring, time-of-day
// adjustment, banding and incident-type classification.
type AssessmentUseCase struct {
	riskAdapter     *ClassifierAdapter
	incidentAdapter *ClassifierAdapter
	riskClf         repository.Classifier
	index           *spatial.Index
	havens          []*domain.SafeHaven
	zoneRepo        repository.ZoneRepository
	cache           repository.AssessmentCache
	cfg             config.RiskConfig
	logger          *zap.Logger
}

// NewAssessmentUseCase wires the scorer. Either classifier may be nil when
// its artifact failed to load; the scorer degrades instead of failing.
func NewAssessmentUseCase(
	riskClf repository.Classifier,
	incidentClf repository.Classifier,
	index *spatial.Index,
	havens []*domain.SafeHaven,
	zoneRepo repository.ZoneRepository,
	cache repository.AssessmentCache,
	cfg config.RiskConfig,
	logger *zap.Logger,
) *AssessmentUseCase {
	uc := &AssessmentUseCase{
		riskClf:  riskClf,
		index:    index,
		havens:   havens,
		zoneRepo: zoneRepo,
		cache:    cache,
		cfg:      cfg,
		logger:   logger,
	}
	if riskClf != nil {
		uc.riskAdapter = NewClassifierAdapter(riskClf, logger)
	}
	if incidentClf != nil {
		uc.incidentAdapter = NewClassifierAdapter(incidentClf, logger)
	}
	return uc
}

// Assess produces a safety assessment for a coordinate at a point in time.
// It always returns a well-formed assessment: every internal failure
// degrades to the Unknown verdict and is logged here, never surfaced.
func (uc *AssessmentUseCase) Assess(ctx context.Context, lat, lon float64, now time.Time) *domain.SafetyAssessment {
	// 1. Safe-haven override: no classifier is consulted near a haven.
	if haven := uc.nearestHavenWithin(lat, lon); haven != nil {
		uc.logger.Debug("Safe-haven override",
			zap.String("haven", haven.Name),
			zap.Float64("lat", lat),
			zap.Float64("lon", lon))
		return &domain.SafetyAssessment{
			RiskBand:          domain.RiskLow,
			IncidentType:      "None",
			SafetyProbability: 0.99,
			AssessedAt:        now,
		}
	}

	// 2. Without a risk model there is nothing to compute.
	if uc.riskClf == nil {
		uc.logger.Debug("Risk model not loaded, degrading to unknown",
			zap.Error(errors.ErrModelUnavailable))
		return uc.unknownAssessment(now)
	}

	cacheKey := assessmentCacheKey(lat, lon, now)
	if uc.cache != nil {
		if cached, _ := uc.cache.Get(ctx, cacheKey); cached != nil {
			return cached
		}
	}

	hour := now.Hour()
	dayEnc, slotEnc := uc.encodeTimeFeatures(now)

	// 3. Interpolated scoring over the nearest wards; the ward encoding
	// is the spatially varying feature, so each neighbor gets its own
	// classifier run.
	score, err := uc.interpolatedScore(lat, lon, hour, dayEnc, slotEnc)
	if err != nil {
		uc.logger.Error("Risk scoring failed, degrading to unknown", zap.Error(err))
		return uc.unknownAssessment(now)
	}

	// 4. Time-of-day adjustment. Dividing by the daytime multiplier
	// (<1) raises apparent safety, dividing by the night multiplier
	// (>1) lowers it.
	score = clamp01(score / uc.timeMultiplier(hour))

	assessment := &domain.SafetyAssessment{
		RiskBand:          uc.band(score),
		IncidentType:      uc.incidentType(lat, lon, hour, dayEnc, slotEnc),
		SafetyProbability: score,
		AssessedAt:        now,
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, cacheKey, assessment)
	}

	return assessment
}

// NearbySafeHavens lists havens around a point, nearest first.
func (uc *AssessmentUseCase) NearbySafeHavens(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*domain.SafeHaven, error) {
	return uc.zoneRepo.GetSafeHavensNear(ctx, lat, lon, radiusKm, limit)
}

func (uc *AssessmentUseCase) nearestHavenWithin(lat, lon float64) *domain.SafeHaven {
	for _, h := range uc.havens {
		if utils.DegreeDistanceKm(lat, lon, h.Lat, h.Lon) <= uc.cfg.SafeHavenRadiusKm {
			return h
		}
	}
	return nil
}

// encodeTimeFeatures encodes day-of-week and timeslot through the risk
// classifier's encoders when fitted, defaulting to 0 otherwise. Never
// fails: an unknown label also defaults to 0.
func (uc *AssessmentUseCase) encodeTimeFeatures(now time.Time) (int, int) {
	dayEnc, slotEnc := 0, 0

	if enc := uc.riskClf.DayEncoder(); enc != nil {
		if v, err := enc.Encode(now.Weekday().String()); err == nil {
			dayEnc = v
		}
	}
	if enc := uc.riskClf.TimeslotEncoder(); enc != nil {
		slot := domain.TimeslotForHour(now.Hour())
		if v, err := enc.Encode(string(slot)); err == nil {
			slotEnc = v
		}
	}

	return dayEnc, slotEnc
}

func (uc *AssessmentUseCase) interpolatedScore(lat, lon float64, hour, dayEnc, slotEnc int) (float64, error) {
	if uc.index == nil {
		// No spatial corpus: single-point scoring with a neutral ward.
		features := domain.NewFeatureVector(0, lat, lon, hour, dayEnc, slotEnc)
		return uc.riskAdapter.SafetyProbability(features)
	}

	neighbors := uc.index.Query(lat, lon, uc.cfg.NeighborCount)
	weights := interpolationWeights(neighbors)

	score := 0.0
	for i, n := range neighbors {
		features := domain.NewFeatureVector(n.Zone.RiskEncoding, lat, lon, hour, dayEnc, slotEnc)
		s, err := uc.riskAdapter.SafetyProbability(features)
		if err != nil {
			return 0, fmt.Errorf("neighbor %d scoring failed: %w", n.Zone.ID, err)
		}
		score += weights[i] * s
	}

	return score, nil
}

// interpolationWeights computes normalized inverse-distance weights for
// the neighbor set; the weights sum to 1.
func interpolationWeights(neighbors []domain.ZoneDistance) []float64 {
	weights := make([]float64, len(neighbors))
	total := 0.0
	for i, n := range neighbors {
		weights[i] = 1.0 / (n.Distance + interpolationEpsilon)
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// timeMultiplier: Day [6,19) / Evening [19,23) / Night otherwise.
func (uc *AssessmentUseCase) timeMultiplier(hour int) float64 {
	switch {
	case hour >= 6 && hour < 19:
		return uc.cfg.DayMultiplier
	case hour >= 19 && hour < 23:
		return uc.cfg.EveningMultiplier
	default:
		return uc.cfg.NightMultiplier
	}
}

// band maps an adjusted probability onto its risk band. Thresholds are
// configuration, not literals: they are a tunable policy surface.
func (uc *AssessmentUseCase) band(probability float64) domain.RiskBand {
	switch {
	case probability > uc.cfg.LowThreshold:
		return domain.RiskLow
	case probability > uc.cfg.ModerateThreshold:
		return domain.RiskModerate
	case probability > uc.cfg.HighThreshold:
		return domain.RiskHigh
	default:
		return domain.RiskCritical
	}
}

// incidentType classifies the likely incident category from the
// single-point feature vector (neutral ward, no interpolation).
func (uc *AssessmentUseCase) incidentType(lat, lon float64, hour, dayEnc, slotEnc int) string {
	if uc.incidentAdapter == nil {
		return "Unknown"
	}

	features := domain.NewFeatureVector(0, lat, lon, hour, dayEnc, slotEnc)
	label, err := uc.incidentAdapter.PredictLabel(features)
	if err != nil {
		uc.logger.Warn("Incident classification failed", zap.Error(err))
		return "Unknown"
	}
	return label
}

func (uc *AssessmentUseCase) unknownAssessment(now time.Time) *domain.SafetyAssessment {
	return &domain.SafetyAssessment{
		RiskBand:          domain.RiskUnknown,
		IncidentType:      "Unknown",
		SafetyProbability: 0.0,
		AssessedAt:        now,
	}
}

// assessmentCacheKey quantizes the scoring inputs: coordinate to four
// decimal places (~11 m) plus hour and weekday, the two time features
// the classifier sees.
func assessmentCacheKey(lat, lon float64, now time.Time) string {
	return fmt.Sprintf("%.4f:%.4f:%d:%d", lat, lon, now.Hour(), int(now.Weekday()))
}
