package postgres

import (
	"context"
	"sort"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"github.com/safebag-backend/internal/pkg/errors"
	"github.com/safebag-backend/internal/pkg/utils"
	"go.uber.org/zap"
)

type zoneRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewZoneRepository(db *DB) repository.ZoneRepository {
	return &zoneRepository{
		db:     db,
		logger: db.logger,
	}
}

// GetReferenceZones loads the full ward-centroid corpus. Called once at
// startup to build the spatial index.
func (r *zoneRepository) GetReferenceZones(ctx context.Context) ([]*domain.ReferenceZone, error) {
	query := `
		SELECT id, name, lat, lon, risk_encoding
		FROM reference_zones
		ORDER BY id
	`

	var zones []*domain.ReferenceZone
	if err := r.db.SelectContext(ctx, &zones, query); err != nil {
		r.logger.Error("Failed to load reference zones", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return zones, nil
}

func (r *zoneRepository) GetSafeHavens(ctx context.Context) ([]*domain.SafeHaven, error) {
	query := `
		SELECT id, name, lat, lon
		FROM safe_havens
		ORDER BY id
	`

	var havens []*domain.SafeHaven
	if err := r.db.SelectContext(ctx, &havens, query); err != nil {
		r.logger.Error("Failed to load safe havens", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return havens, nil
}

// GetSafeHavensNear returns havens within radiusKm of the point, nearest
// first. The degree-space bounding box keeps the scan cheap; exact
// distance filtering happens in Go.
func (r *zoneRepository) GetSafeHavensNear(
	ctx context.Context,
	lat, lon, radiusKm float64,
	limit int,
) ([]*domain.SafeHaven, error) {
	delta := radiusKm / utils.KmPerDegree

	query := `
		SELECT id, name, lat, lon
		FROM safe_havens
		WHERE lat BETWEEN $1 AND $2
		  AND lon BETWEEN $3 AND $4
	`

	var candidates []*domain.SafeHaven
	err := r.db.SelectContext(ctx, &candidates, query,
		lat-delta, lat+delta, lon-delta, lon+delta)
	if err != nil {
		r.logger.Error("Failed to query safe havens", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	havens := make([]*domain.SafeHaven, 0, len(candidates))
	for _, h := range candidates {
		if utils.DegreeDistanceKm(lat, lon, h.Lat, h.Lon) <= radiusKm {
			havens = append(havens, h)
		}
	}

	sort.Slice(havens, func(i, j int) bool {
		return utils.DegreeDistance(lat, lon, havens[i].Lat, havens[i].Lon) <
			utils.DegreeDistance(lat, lon, havens[j].Lat, havens[j].Lon)
	})
	if limit > 0 && len(havens) > limit {
		havens = havens[:limit]
	}

	return havens, nil
}
