package repository

import (
	"context"

	"github.com/safebag-backend/internal/domain"
)

// ZoneRepository serves the static reference datasets: ward centroids the
// spatial index is built over and the safe-haven list.
type ZoneRepository interface {
	GetReferenceZones(ctx context.Context) ([]*domain.ReferenceZone, error)
	GetSafeHavens(ctx context.Context) ([]*domain.SafeHaven, error)
	GetSafeHavensNear(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]*domain.SafeHaven, error)
}
