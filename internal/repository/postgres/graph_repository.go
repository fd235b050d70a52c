package postgres

import (
	"context"

	"github.com/lib/pq"
	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"github.com/safebag-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

type graphRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewGraphRepository(db *DB) repository.GraphRepository {
	return &graphRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *graphRepository) LoadNodes(ctx context.Context) ([]*domain.GraphNode, error) {
	query := `
		SELECT id, lat, lon
		FROM road_nodes
	`

	var nodes []*domain.GraphNode
	if err := r.db.SelectContext(ctx, &nodes, query); err != nil {
		r.logger.Error("Failed to load road nodes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return nodes, nil
}

// LoadEdges reads the directed edge set. Geometry is stored as parallel
// float8 arrays of (lon, lat) vertices, matching the source data's
// coordinate order; it is flipped to (lat, lon) here at the boundary.
func (r *graphRepository) LoadEdges(ctx context.Context) ([]*domain.GraphEdge, error) {
	query := `
		SELECT from_node, to_node, travel_weight, safety_weight,
		       geometry_lons, geometry_lats
		FROM road_edges
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to load road edges", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var edges []*domain.GraphEdge
	for rows.Next() {
		var e domain.GraphEdge
		var lons, lats pq.Float64Array

		err := rows.Scan(&e.From, &e.To, &e.TravelWeight, &e.SafetyWeight, &lons, &lats)
		if err != nil {
			r.logger.Error("Failed to scan road edge", zap.Error(err))
			continue
		}

		if len(lons) > 0 && len(lons) == len(lats) {
			e.Geometry = make([]domain.Point, len(lons))
			for i := range lons {
				e.Geometry[i] = domain.Point{Lat: lats[i], Lon: lons[i]}
			}
		}

		edges = append(edges, &e)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Road edge iteration failed", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return edges, nil
}
