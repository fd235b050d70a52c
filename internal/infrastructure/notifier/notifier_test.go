package notifier_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/infrastructure/notifier"
)

func TestLogNotifier_NotifyEmergency(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n := notifier.NewLogNotifier(zap.New(core))

	event := &domain.SOSEvent{
		ID:        uuid.New(),
		DeviceID:  "handbag_001",
		Lat:       51.5174,
		Lon:       -0.1190,
		EventType: domain.EventUserSOS,
		Timestamp: time.Now().UnixMilli(),
	}

	t.Run("records a warning for the operator", func(t *testing.T) {
		err := n.NotifyEmergency(context.Background(), event)
		assert.NoError(t, err)

		entries := logs.TakeAll()
		assert.Len(t, entries, 1)
		assert.Equal(t, "EMERGENCY REPORTED", entries[0].Message)

		fields := entries[0].ContextMap()
		assert.Equal(t, "handbag_001", fields["device_id"])
		assert.Equal(t, "SOS BUTTON PRESSED", fields["description"])
	})

	t.Run("unknown event types get a generic description", func(t *testing.T) {
		odd := *event
		odd.EventType = "SOMETHING_NEW"

		err := n.NotifyEmergency(context.Background(), &odd)
		assert.NoError(t, err)

		entries := logs.TakeAll()
		assert.Len(t, entries, 1)
		assert.Equal(t, "Emergency: SOMETHING_NEW", entries[0].ContextMap()["description"])
	})
}
