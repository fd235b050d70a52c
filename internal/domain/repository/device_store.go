package repository

import (
	"context"

	"github.com/safebag-backend/internal/domain"
)

// DeviceStore is the live-location store the wearable pushes its state to.
type DeviceStore interface {
	// Latest returns the most recent event for a device, or nil when the
	// store has no data for it yet.
	Latest(ctx context.Context, deviceID string) (*domain.DeviceLocation, error)

	// Acknowledge marks the device's latest event as handled and records
	// the new event type, which stops the device-side alarm.
	Acknowledge(ctx context.Context, deviceID, eventType string) error
}
