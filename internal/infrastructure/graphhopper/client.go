package graphhopper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/safebag-backend/internal/config"
	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	apperrors "github.com/safebag-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	vehicle    string
	logger     *zap.Logger
}

// routeResponse is the subset of the provider response this service reads.
// Points arrive unencoded as (lon, lat) pairs.
type routeResponse struct {
	Paths []struct {
		Points struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"points"`
	} `json:"paths"`
}

// NewClient creates the external fastest-route provider client.
func NewClient(cfg *config.RoutingConfig, logger *zap.Logger) repository.RouteProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.ProviderBaseURL,
		apiKey:  cfg.ProviderAPIKey,
		vehicle: cfg.Vehicle,
		logger:  logger,
	}
}

// FastRoute requests the provider's fastest path between two waypoints and
// returns its polyline translated to (lat, lon) order.
func (c *client) FastRoute(ctx context.Context, origin, destination domain.Point) (domain.RoutePlan, error) {
	params := url.Values{}
	params.Add("point", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
	params.Add("point", fmt.Sprintf("%f,%f", destination.Lat, destination.Lon))
	params.Set("vehicle", c.vehicle)
	params.Set("points_encoded", "false")
	params.Set("key", c.apiKey)

	requestURL := fmt.Sprintf("%s/route?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling routing provider",
		zap.Float64("origin_lat", origin.Lat),
		zap.Float64("origin_lon", origin.Lon),
		zap.Float64("dest_lat", destination.Lat),
		zap.Float64("dest_lon", destination.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Routing provider returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrExternalProvider, resp.StatusCode)
	}

	var routeResp routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("%w: undecodable response: %v", apperrors.ErrExternalProvider, err)
	}

	if len(routeResp.Paths) == 0 {
		c.logger.Warn("Routing provider returned no paths")
		return nil, fmt.Errorf("%w: no paths returned", apperrors.ErrExternalProvider)
	}

	coords := routeResp.Paths[0].Points.Coordinates
	route := make(domain.RoutePlan, 0, len(coords))
	for _, pair := range coords {
		if len(pair) < 2 {
			continue
		}
		// Provider speaks (lon, lat); the service speaks (lat, lon).
		route = append(route, domain.Point{Lat: pair[1], Lon: pair[0]})
	}

	c.logger.Debug("Routing provider call successful",
		zap.Int("points", len(route)))

	return route, nil
}
