package repository

import (
	"context"

	"github.com/safebag-backend/internal/domain"
)

// AlertNotifier delivers emergency notifications to the configured sink.
// SMS delivery is owned by the phone app; the server-side notifier records
// the emergency for operators.
type AlertNotifier interface {
	NotifyEmergency(ctx context.Context, event *domain.SOSEvent) error
}
