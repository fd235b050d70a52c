package repository

import (
	"context"

	"github.com/safebag-backend/internal/domain"
)

// GraphRepository reads the persisted road graph rows.
type GraphRepository interface {
	LoadNodes(ctx context.Context) ([]*domain.GraphNode, error)
	LoadEdges(ctx context.Context) ([]*domain.GraphEdge, error)
}

// GraphProvider hands out the shared in-memory road graph. The first call
// performs the expensive load; all later calls reuse the published
// snapshot. A failed load is also published, so callers short-circuit
// instead of retrying the load per request.
type GraphProvider interface {
	Graph(ctx context.Context) (*domain.RoadGraph, error)
}
