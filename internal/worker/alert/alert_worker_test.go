package alert_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/worker/alert"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishSOSEvent(ctx context.Context, event *domain.SOSEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

// MockAlertNotifier is a mock of AlertNotifier
type MockAlertNotifier struct {
	mock.Mock
}

func (m *MockAlertNotifier) NotifyEmergency(ctx context.Context, event *domain.SOSEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func sosMessage(t *testing.T, id, eventType, msgID string) domain.StreamMessage {
	t.Helper()
	event := domain.SOSEvent{
		ID:        uuid.MustParse(id),
		DeviceID:  "handbag_001",
		Lat:       51.5174,
		Lon:       -0.1190,
		EventType: eventType,
		Timestamp: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatal(err)
	}
	return domain.StreamMessage{ID: msgID, Data: string(data)}
}

func newWorker(streamRepo *MockStreamRepository, notifier *MockAlertNotifier) *alert.AlertWorker {
	return alert.NewAlertWorker(streamRepo, notifier, "test-group", 10*time.Millisecond, zap.NewNop())
}

// runUntilStopped runs the worker, lets it churn for a moment and stops it.
func runUntilStopped(t *testing.T, w *alert.AlertWorker) {
	t.Helper()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	time.Sleep(200 * time.Millisecond)
	assert.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop")
	}
}

func TestAlertWorker_Name(t *testing.T) {
	w := newWorker(&MockStreamRepository{}, &MockAlertNotifier{})
	assert.Equal(t, "sos-alert", w.Name())
}

func TestAlertWorker_Stop(t *testing.T) {
	w := newWorker(&MockStreamRepository{}, &MockAlertNotifier{})

	// Stop should not error even if not started, and must be idempotent.
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestAlertWorker_ConsumerGroupFailure(t *testing.T) {
	streamRepo := &MockStreamRepository{}
	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamSOSEvents, "test-group").
		Return(errors.New("redis down"))

	w := newWorker(streamRepo, &MockAlertNotifier{})

	err := w.Start(context.Background())
	assert.Error(t, err)
}

func TestAlertWorker_ContextCancellation(t *testing.T) {
	streamRepo := &MockStreamRepository{}
	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamSOSEvents, "test-group").
		Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)

	w := newWorker(streamRepo, &MockAlertNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}
}

func TestAlertWorker_EscalatesSOSEvents(t *testing.T) {
	msg := sosMessage(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", domain.EventUserSOS, "1-0")

	streamRepo := &MockStreamRepository{}
	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamSOSEvents, "test-group").
		Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{msg}, nil).Once()
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	streamRepo.On("AckMessage", mock.Anything, domain.StreamSOSEvents, "test-group", "1-0").
		Return(nil)

	notifier := &MockAlertNotifier{}
	notifier.On("NotifyEmergency", mock.Anything, mock.MatchedBy(func(e *domain.SOSEvent) bool {
		return e.EventType == domain.EventUserSOS && e.DeviceID == "handbag_001"
	})).Return(nil)

	w := newWorker(streamRepo, notifier)
	runUntilStopped(t, w)

	notifier.AssertNumberOfCalls(t, "NotifyEmergency", 1)
	streamRepo.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamSOSEvents, "test-group", "1-0")
}

func TestAlertWorker_DeduplicatesByEventID(t *testing.T) {
	// Same event delivered twice under different stream message IDs.
	first := sosMessage(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", domain.EventUserSOS, "1-0")
	second := sosMessage(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", domain.EventUserSOS, "2-0")

	streamRepo := &MockStreamRepository{}
	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamSOSEvents, "test-group").
		Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{first, second}, nil).Once()
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	streamRepo.On("AckMessage", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string")).
		Return(nil)

	notifier := &MockAlertNotifier{}
	notifier.On("NotifyEmergency", mock.Anything, mock.Anything).Return(nil)

	w := newWorker(streamRepo, notifier)
	runUntilStopped(t, w)

	// One alert, but both messages acknowledged.
	notifier.AssertNumberOfCalls(t, "NotifyEmergency", 1)
	streamRepo.AssertNumberOfCalls(t, "AckMessage", 2)
}

func TestAlertWorker_SkipsNonEscalatingEvents(t *testing.T) {
	msg := sosMessage(t, "9b2d6ca0-59b0-4f3a-8f3e-3d3f6a1c2b4d", domain.EventNormal, "1-0")
	malformed := domain.StreamMessage{ID: "2-0", Data: "not json"}

	streamRepo := &MockStreamRepository{}
	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamSOSEvents, "test-group").
		Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{msg, malformed}, nil).Once()
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	streamRepo.On("AckMessage", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string")).
		Return(nil)

	notifier := &MockAlertNotifier{}

	w := newWorker(streamRepo, notifier)
	runUntilStopped(t, w)

	// Nothing escalates, yet both messages leave the stream.
	notifier.AssertNumberOfCalls(t, "NotifyEmergency", 0)
	streamRepo.AssertNumberOfCalls(t, "AckMessage", 2)
}

func TestAlertWorker_NotifierFailureLeavesEventUnprocessed(t *testing.T) {
	msg := sosMessage(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", domain.EventUserSOS, "1-0")
	retry := sosMessage(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", domain.EventUserSOS, "2-0")

	streamRepo := &MockStreamRepository{}
	streamRepo.On("CreateConsumerGroup", mock.Anything, domain.StreamSOSEvents, "test-group").
		Return(nil)
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{msg}, nil).Once()
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{retry}, nil).Once()
	streamRepo.On("ConsumeBatch", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	streamRepo.On("AckMessage", mock.Anything, domain.StreamSOSEvents, "test-group", mock.AnythingOfType("string")).
		Return(nil)

	// First delivery fails, the redelivery succeeds.
	notifier := &MockAlertNotifier{}
	notifier.On("NotifyEmergency", mock.Anything, mock.Anything).
		Return(errors.New("sink down")).Once()
	notifier.On("NotifyEmergency", mock.Anything, mock.Anything).
		Return(nil)

	w := newWorker(streamRepo, notifier)
	runUntilStopped(t, w)

	notifier.AssertNumberOfCalls(t, "NotifyEmergency", 2)
}
