package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/pkg/errors"
	"github.com/safebag-backend/internal/pkg/utils"
	"github.com/safebag-backend/internal/pkg/validator"
	"github.com/safebag-backend/internal/usecase"
	"github.com/safebag-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// DeviceHandler serves the live-location relay and the emergency paths.
type DeviceHandler struct {
	sosUC  *usecase.SOSUseCase
	logger *zap.Logger
}

func NewDeviceHandler(sosUC *usecase.SOSUseCase, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{
		sosUC:  sosUC,
		logger: logger,
	}
}

// Location godoc
// @Summary Latest device location
// @Description Relays the device's most recent state from the live-location store. Always answers 200 with a well-formed payload so the app UI keeps updating; store problems surface as SERVER_ERROR / WAITING_FOR_DATA event types.
// @Tags Device
// @Produce json
// @Success 200 {object} dto.LocationResponse
// @Router /api/v1/location [get]
func (h *DeviceHandler) Location(c *fiber.Ctx) error {
	loc := h.sosUC.LiveLocation(c.Context())

	return c.JSON(dto.LocationResponse{
		Latitude:     loc.Lat,
		Longitude:    loc.Lon,
		EventType:    loc.EventType,
		Acknowledged: loc.Acknowledged,
		Timestamp:    loc.Timestamp,
	})
}

// Acknowledge godoc
// @Summary Acknowledge the device alarm
// @Description Marks the device's latest event as handled so the hardware stops alarming.
// @Tags Device
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/ack [post]
func (h *DeviceHandler) Acknowledge(c *fiber.Ctx) error {
	if err := h.sosUC.Acknowledge(c.Context()); err != nil {
		h.logger.Error("Acknowledge failed", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}
	return c.JSON(fiber.Map{"status": "acknowledged"})
}

// SOS godoc
// @Summary Manual SOS
// @Description Raises a manual emergency from the app: notifies the alert sink, publishes the event for the alert worker and acknowledges the device.
// @Tags Device
// @Accept json
// @Produce json
// @Param request body dto.SOSRequest true "Device location"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sos [post]
func (h *DeviceHandler) SOS(c *fiber.Ctx) error {
	var req dto.SOSRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrLocationRequired)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrLocationRequired)
	}
	if !utils.ValidateCoordinates(*req.Latitude, *req.Longitude) {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	event, err := h.sosUC.RaiseSOS(c.Context(), *req.Latitude, *req.Longitude, domain.EventUserSOS)
	if err != nil {
		h.logger.Error("SOS pipeline failed", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	return c.JSON(fiber.Map{
		"message":  "SOS Sent",
		"event_id": event.ID.String(),
	})
}

// Escalate godoc
// @Summary Automatic escalation
// @Description Escalates an automatically detected emergency (unusual activity, hardware SOS) through the same alert pipeline as a manual SOS.
// @Tags Device
// @Accept json
// @Produce json
// @Param request body dto.EscalateRequest true "Event details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/escalate [post]
func (h *DeviceHandler) Escalate(c *fiber.Ctx) error {
	var req dto.EscalateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if !utils.ValidateCoordinates(*req.Latitude, *req.Longitude) {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	if _, err := h.sosUC.RaiseSOS(c.Context(), *req.Latitude, *req.Longitude, req.EventType); err != nil {
		h.logger.Error("Escalation pipeline failed", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	return c.JSON(fiber.Map{"status": "success"})
}
