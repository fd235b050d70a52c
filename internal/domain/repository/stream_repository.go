package repository

import (
	"context"

	"github.com/safebag-backend/internal/domain"
)

// StreamRepository is the SOS event stream between the API and the alert
// worker, backed by Redis Streams.
type StreamRepository interface {
	CreateConsumerGroup(ctx context.Context, stream, group string) error
	PublishSOSEvent(ctx context.Context, event *domain.SOSEvent) error
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
