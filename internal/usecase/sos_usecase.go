package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"go.uber.org/zap"
)

// SOSUseCase covers the emergency paths: live device location, alarm
// acknowledgement and SOS escalation.
type SOSUseCase struct {
	deviceStore repository.DeviceStore
	streamRepo  repository.StreamRepository
	notifier    repository.AlertNotifier
	deviceID    string
	logger      *zap.Logger
}

func NewSOSUseCase(
	deviceStore repository.DeviceStore,
	streamRepo repository.StreamRepository,
	notifier repository.AlertNotifier,
	deviceID string,
	logger *zap.Logger,
) *SOSUseCase {
	return &SOSUseCase{
		deviceStore: deviceStore,
		streamRepo:  streamRepo,
		notifier:    notifier,
		deviceID:    deviceID,
		logger:      logger,
	}
}

// LiveLocation returns the device's latest state. The app expects a
// well-formed payload in every case: store failures map to SERVER_ERROR
// and missing data to WAITING_FOR_DATA, so the UI keeps updating instead
// of showing a dead error screen.
func (uc *SOSUseCase) LiveLocation(ctx context.Context) *domain.DeviceLocation {
	loc, err := uc.deviceStore.Latest(ctx, uc.deviceID)
	if err != nil {
		uc.logger.Error("Device store lookup failed", zap.Error(err))
		return &domain.DeviceLocation{
			EventType: domain.EventServerError,
		}
	}
	if loc == nil {
		return &domain.DeviceLocation{
			EventType:    domain.EventWaitingForData,
			Acknowledged: true,
		}
	}
	return loc
}

// Acknowledge marks the device's latest event as handled so the hardware
// stops alarming.
func (uc *SOSUseCase) Acknowledge(ctx context.Context) error {
	if err := uc.deviceStore.Acknowledge(ctx, uc.deviceID, domain.EventSafe); err != nil {
		return fmt.Errorf("failed to acknowledge device: %w", err)
	}
	return nil
}

// RaiseSOS records an emergency: notify the alert sink, publish the event
// for the worker, and acknowledge the device. Notification and publishing
// failures are logged but do not fail the request; the device-store patch
// is the one step whose failure the app needs to know about.
func (uc *SOSUseCase) RaiseSOS(ctx context.Context, lat, lon float64, eventType string) (*domain.SOSEvent, error) {
	event := &domain.SOSEvent{
		ID:        uuid.New(),
		DeviceID:  uc.deviceID,
		Lat:       lat,
		Lon:       lon,
		EventType: eventType,
		Timestamp: time.Now().UnixMilli(),
	}

	if err := uc.notifier.NotifyEmergency(ctx, event); err != nil {
		uc.logger.Error("Emergency notification failed",
			zap.String("event_id", event.ID.String()),
			zap.Error(err))
	}

	if uc.streamRepo != nil {
		if err := uc.streamRepo.PublishSOSEvent(ctx, event); err != nil {
			uc.logger.Error("Failed to publish SOS event to stream",
				zap.String("event_id", event.ID.String()),
				zap.Error(err))
		}
	}

	if err := uc.deviceStore.Acknowledge(ctx, uc.deviceID, eventType); err != nil {
		return nil, fmt.Errorf("failed to acknowledge device after SOS: %w", err)
	}

	return event, nil
}
