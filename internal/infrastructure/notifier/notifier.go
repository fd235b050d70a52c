// Package notifier records emergency alerts server-side. Actual SMS
// delivery is performed by the phone app over the native SMS stack, so the
// server sink only produces an operator-visible audit record.
package notifier

import (
	"context"
	"time"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"go.uber.org/zap"
)

var eventDescriptions = map[string]string{
	domain.EventUserSOS:         "SOS BUTTON PRESSED",
	domain.EventUnusualActivity: "UNUSUAL ACTIVITY DETECTED",
}

type logNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) repository.AlertNotifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) NotifyEmergency(_ context.Context, event *domain.SOSEvent) error {
	description, ok := eventDescriptions[event.EventType]
	if !ok {
		description = "Emergency: " + event.EventType
	}

	n.logger.Warn("EMERGENCY REPORTED",
		zap.String("event_id", event.ID.String()),
		zap.String("device_id", event.DeviceID),
		zap.String("description", description),
		zap.Float64("lat", event.Lat),
		zap.Float64("lon", event.Lon),
		zap.Time("reported_at", time.UnixMilli(event.Timestamp)),
	)
	return nil
}
