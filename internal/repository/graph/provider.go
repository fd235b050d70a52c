// Package graph holds the shared in-memory road network behind a lazy,
// once-only initializer.
package graph

import (
	"context"
	"sync"
	"time"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"github.com/safebag-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

// Provider loads the road graph on first use and publishes the result to
// every caller. The outcome — success or failure — is published exactly
// once: a failed load never re-runs per request.
type Provider struct {
	repo   repository.GraphRepository
	logger *zap.Logger

	mu     sync.Mutex
	loaded bool
	graph  *domain.RoadGraph
	err    error
}

func NewProvider(repo repository.GraphRepository, logger *zap.Logger) *Provider {
	return &Provider{
		repo:   repo,
		logger: logger,
	}
}

// Graph returns the shared graph snapshot. Under concurrent first access
// exactly one caller performs the load while the rest block on the mutex
// and then observe the published result.
func (p *Provider) Graph(ctx context.Context) (*domain.RoadGraph, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaded {
		return p.graph, p.err
	}

	p.graph, p.err = p.load(ctx)
	p.loaded = true
	return p.graph, p.err
}

func (p *Provider) load(ctx context.Context) (*domain.RoadGraph, error) {
	start := time.Now()
	p.logger.Info("Loading road graph")

	nodes, err := p.repo.LoadNodes(ctx)
	if err != nil {
		p.logger.Error("Road graph node load failed, marking graph unavailable", zap.Error(err))
		return nil, errors.ErrGraphUnavailable
	}

	edges, err := p.repo.LoadEdges(ctx)
	if err != nil {
		p.logger.Error("Road graph edge load failed, marking graph unavailable", zap.Error(err))
		return nil, errors.ErrGraphUnavailable
	}

	g := &domain.RoadGraph{
		Nodes:     make(map[int64]*domain.GraphNode, len(nodes)),
		Adjacency: make(map[int64][]*domain.GraphEdge),
	}
	for _, n := range nodes {
		g.Nodes[n.ID] = n
	}
	for _, e := range edges {
		// Drop edges referencing unknown nodes rather than poisoning
		// the search with unreachable endpoints.
		if _, ok := g.Nodes[e.From]; !ok {
			continue
		}
		if _, ok := g.Nodes[e.To]; !ok {
			continue
		}
		g.Adjacency[e.From] = append(g.Adjacency[e.From], e)
	}

	p.logger.Info("Road graph loaded",
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(edges)),
		zap.Duration("took", time.Since(start)))

	return g, nil
}
