package usecase

import (
	"context"
	"sync"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"github.com/safebag-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

// RouteUseCase produces the dual-route answer: the provider's fastest line
// and the graph-derived safest line, computed independently and composed
// here. Both degrade to an empty plan on failure, so the caller can treat
// them uniformly.
type RouteUseCase struct {
	graphProvider repository.GraphProvider
	fastProvider  repository.RouteProvider
	logger        *zap.Logger
}

func NewRouteUseCase(
	graphProvider repository.GraphProvider,
	fastProvider repository.RouteProvider,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		graphProvider: graphProvider,
		fastProvider:  fastProvider,
		logger:        logger,
	}
}

// PlanRoutes computes both lines concurrently.
func (uc *RouteUseCase) PlanRoutes(ctx context.Context, origin, destination domain.Point) *domain.RoutePair {
	pair := &domain.RoutePair{
		FastRoute: domain.RoutePlan{},
		SafeRoute: domain.RoutePlan{},
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		pair.FastRoute = uc.FastRoute(ctx, origin, destination)
	}()
	go func() {
		defer wg.Done()
		pair.SafeRoute = uc.SafeRoute(ctx, origin, destination)
	}()

	wg.Wait()
	return pair
}

// FastRoute delegates to the external provider. Timeouts, non-200s and
// malformed payloads all collapse to an empty plan.
func (uc *RouteUseCase) FastRoute(ctx context.Context, origin, destination domain.Point) domain.RoutePlan {
	route, err := uc.fastProvider.FastRoute(ctx, origin, destination)
	if err != nil {
		uc.logger.Warn("Fast route unavailable", zap.Error(err))
		return domain.RoutePlan{}
	}
	if route == nil {
		route = domain.RoutePlan{}
	}
	return route
}

// SafeRoute resolves the endpoints to graph nodes, searches the minimal
// safety-cost path and reconstructs the road geometry. Absence of a route
// is a normal outcome, never an error.
func (uc *RouteUseCase) SafeRoute(ctx context.Context, origin, destination domain.Point) domain.RoutePlan {
	g, err := uc.graphProvider.Graph(ctx)
	if err != nil {
		uc.logger.Warn("Road graph unavailable, returning empty safe route", zap.Error(err))
		return domain.RoutePlan{}
	}

	from := nearestNode(g, origin)
	to := nearestNode(g, destination)
	if from == nil || to == nil {
		uc.logger.Warn("Could not resolve route endpoints to graph nodes")
		return domain.RoutePlan{}
	}

	path := shortestSafePath(g, from.ID, to.ID)
	if path == nil {
		uc.logger.Info("No safe path between endpoints",
			zap.Int64("from", from.ID),
			zap.Int64("to", to.ID),
			zap.Error(errors.ErrNoPathFound))
		return domain.RoutePlan{}
	}

	return buildPolyline(g, path)
}
