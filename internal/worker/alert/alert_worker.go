// Package alert consumes the SOS event stream and fans emergencies out to
// the notifier.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"github.com/safebag-backend/internal/worker"
	"go.uber.org/zap"
)

const maxBatchSize = 20

// AlertWorker reads SOS events from the stream, deduplicates them by
// event ID and escalates the ones that warrant an alert.
type AlertWorker struct {
	*worker.BaseWorker
	streamRepo      repository.StreamRepository
	notifier        repository.AlertNotifier
	consumerName    string
	emptyQueueSleep time.Duration

	// processed remembers escalated event IDs so redelivered stream
	// messages do not re-alert. Only the worker goroutine touches it.
	processed map[string]bool
}

func NewAlertWorker(
	streamRepo repository.StreamRepository,
	notifier repository.AlertNotifier,
	consumerGroup string,
	emptyQueueSleep time.Duration,
	logger *zap.Logger,
) *AlertWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &AlertWorker{
		BaseWorker:      worker.NewBaseWorker("sos-alert", consumerGroup, logger),
		streamRepo:      streamRepo,
		notifier:        notifier,
		consumerName:    consumerName,
		emptyQueueSleep: emptyQueueSleep,
		processed:       make(map[string]bool),
	}
}

func (w *AlertWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AlertWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamSOSEvents, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(w.emptyQueueSleep)
			}
		}
	}
}

// processBatch drains up to maxBatchSize pending messages and returns how
// many it handled.
func (w *AlertWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamSOSEvents,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing SOS batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		w.handleMessage(ctx, msg)

		if err := w.streamRepo.AckMessage(ctx, domain.StreamSOSEvents, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

func (w *AlertWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.SOSEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Malformed SOS event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return
	}

	if !domain.EscalationEventTypes[event.EventType] {
		logger.Debug("Event type does not escalate",
			zap.String("event_type", event.EventType))
		return
	}

	key := event.ID.String()
	if w.processed[key] {
		logger.Debug("Duplicate SOS event ignored", zap.String("event_id", key))
		return
	}

	if err := w.notifier.NotifyEmergency(ctx, &event); err != nil {
		logger.Error("Emergency notification failed",
			zap.String("event_id", key),
			zap.Error(err))
		return
	}

	w.processed[key] = true
}
