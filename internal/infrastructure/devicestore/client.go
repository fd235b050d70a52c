// Package devicestore talks to the live-location store the wearable pushes
// its state to (a Firebase-style REST document store).
package devicestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/safebag-backend/internal/config"
	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// storedEvent is the document layout the device firmware writes.
type storedEvent struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	EventType    string   `json:"event_type"`
	Acknowledged bool     `json:"acknowledged"`
	TimestampMS  int64    `json:"timestamp_ms"`
}

func NewClient(cfg *config.DeviceStoreConfig, logger *zap.Logger) repository.DeviceStore {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

func (c *client) Latest(ctx context.Context, deviceID string) (*domain.DeviceLocation, error) {
	requestURL := fmt.Sprintf("%s/latest_events/%s.json", c.baseURL, deviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Device store request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Device store returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("device store error: status %d", resp.StatusCode)
	}

	// The store returns the JSON literal null for unknown documents.
	var stored *storedEvent
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		c.logger.Error("Failed to decode device store response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if stored == nil || stored.Latitude == nil || stored.Longitude == nil {
		return nil, nil
	}

	eventType := stored.EventType
	if eventType == "" {
		eventType = domain.EventNormal
	}

	return &domain.DeviceLocation{
		Lat:          *stored.Latitude,
		Lon:          *stored.Longitude,
		EventType:    eventType,
		Acknowledged: stored.Acknowledged,
		Timestamp:    stored.TimestampMS,
	}, nil
}

// Acknowledge patches the device's latest event so the hardware stops
// alarming.
func (c *client) Acknowledge(ctx context.Context, deviceID, eventType string) error {
	requestURL := fmt.Sprintf("%s/latest_events/%s.json", c.baseURL, deviceID)

	payload := map[string]interface{}{
		"acknowledged": true,
	}
	if eventType != "" {
		payload["event_type"] = eventType
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal patch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, requestURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Device store patch failed", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Device store patch rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return fmt.Errorf("device store error: status %d", resp.StatusCode)
	}

	c.logger.Debug("Device acknowledged",
		zap.String("device_id", deviceID),
		zap.String("event_type", eventType))
	return nil
}
