package repository

import (
	"context"

	"github.com/safebag-backend/internal/domain"
)

// RouteProvider is the external fastest-route service. Implementations
// return the provider's polyline in (lat, lon) order; failures surface as
// errors and are degraded to an empty route by the caller.
type RouteProvider interface {
	FastRoute(ctx context.Context, origin, destination domain.Point) (domain.RoutePlan, error)
}
