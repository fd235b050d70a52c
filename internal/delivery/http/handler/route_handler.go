package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/pkg/errors"
	"github.com/safebag-backend/internal/pkg/utils"
	"github.com/safebag-backend/internal/usecase"
	"github.com/safebag-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// RouteHandler serves the dual-route query.
type RouteHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

func NewRouteHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// Routes godoc
// @Summary Fastest and safest routes between two points
// @Description Computes two alternative travel routes. The fast line comes from the external routing provider, the safe line from the safety-weighted road graph. Either list may be empty when no route could be computed.
// @Tags Routing
// @Produce json
// @Param start_lat query number true "Origin latitude"
// @Param start_lon query number true "Origin longitude"
// @Param end_lat query number true "Destination latitude"
// @Param end_lon query number true "Destination longitude"
// @Success 200 {object} dto.RouteResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/route [get]
func (h *RouteHandler) Routes(c *fiber.Ctx) error {
	startLat, e1 := parseCoordinate(c.Query("start_lat"))
	startLon, e2 := parseCoordinate(c.Query("start_lon"))
	endLat, e3 := parseCoordinate(c.Query("end_lat"))
	endLon, e4 := parseCoordinate(c.Query("end_lon"))

	if e1 != nil || e2 != nil || e3 != nil || e4 != nil ||
		!utils.ValidateCoordinates(startLat, startLon) ||
		!utils.ValidateCoordinates(endLat, endLon) {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	pair := h.routeUC.PlanRoutes(c.Context(),
		domain.Point{Lat: startLat, Lon: startLon},
		domain.Point{Lat: endLat, Lon: endLon},
	)

	return c.JSON(dto.RouteResponse{
		FastRoute: planToPairs(pair.FastRoute),
		SafeRoute: planToPairs(pair.SafeRoute),
	})
}

// planToPairs renders a route plan as [lat, lon] pairs for the app.
func planToPairs(plan domain.RoutePlan) [][]float64 {
	pairs := make([][]float64, 0, len(plan))
	for _, p := range plan {
		pairs = append(pairs, []float64{p.Lat, p.Lon})
	}
	return pairs
}

// parseCoordinate parses a required coordinate query parameter.
func parseCoordinate(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}
