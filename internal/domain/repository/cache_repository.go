package repository

import (
	"context"

	"github.com/safebag-backend/internal/domain"
)

// AssessmentCache caches risk assessments for a short TTL so repeated
// polling from the same area does not re-run the classifiers.
type AssessmentCache interface {
	// Get returns the cached assessment or nil on miss.
	Get(ctx context.Context, key string) (*domain.SafetyAssessment, error)
	Set(ctx context.Context, key string, assessment *domain.SafetyAssessment) error
}
