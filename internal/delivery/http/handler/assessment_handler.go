package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safebag-backend/internal/pkg/errors"
	"github.com/safebag-backend/internal/pkg/utils"
	"github.com/safebag-backend/internal/usecase"
	"github.com/safebag-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// AssessmentHandler serves risk predictions and nearby safe havens.
type AssessmentHandler struct {
	assessmentUC *usecase.AssessmentUseCase
	logger       *zap.Logger
}

func NewAssessmentHandler(assessmentUC *usecase.AssessmentUseCase, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentUC: assessmentUC,
		logger:       logger,
	}
}

// Predict godoc
// @Summary Risk assessment for a coordinate
// @Description Returns the risk band, likely incident category and numeric safety probability for a location at the current time.
// @Tags Safety
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/predict [get]
func (h *AssessmentHandler) Predict(c *fiber.Ctx) error {
	lat, err1 := parseCoordinate(c.Query("lat"))
	lon, err2 := parseCoordinate(c.Query("lon"))
	if err1 != nil || err2 != nil || !utils.ValidateCoordinates(lat, lon) {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	assessment := h.assessmentUC.Assess(c.Context(), lat, lon, time.Now())

	return c.JSON(dto.AssessmentResponse{
		Risk:              string(assessment.RiskBand),
		Crime:             assessment.IncidentType,
		SafetyProbability: assessment.SafetyProbability,
	})
}

// Police godoc
// @Summary Safe havens near a coordinate
// @Description Lists police stations and other safe havens around a point, nearest first.
// @Tags Safety
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_km query number false "Search radius in kilometers" default(2)
// @Success 200 {object} dto.PoliceResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/police [get]
func (h *AssessmentHandler) Police(c *fiber.Ctx) error {
	lat, err1 := parseCoordinate(c.Query("lat"))
	lon, err2 := parseCoordinate(c.Query("lon"))
	if err1 != nil || err2 != nil || !utils.ValidateCoordinates(lat, lon) {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	radiusKm := c.QueryFloat("radius_km", 2)
	havens, err := h.assessmentUC.NearbySafeHavens(c.Context(), lat, lon, radiusKm, 10)
	if err != nil {
		h.logger.Error("Safe haven lookup failed", zap.Error(err))
		// The app renders an empty station list; a lookup failure is
		// not worth a hard error on this screen.
		return c.JSON(dto.PoliceResponse{Stations: []dto.SafeHavenDTO{}})
	}

	stations := make([]dto.SafeHavenDTO, 0, len(havens))
	for _, haven := range havens {
		stations = append(stations, dto.SafeHavenDTO{
			Name:       haven.Name,
			Lat:        haven.Lat,
			Lon:        haven.Lon,
			DistanceKm: utils.DegreeDistanceKm(lat, lon, haven.Lat, haven.Lon),
		})
	}

	return c.JSON(dto.PoliceResponse{Stations: stations})
}
