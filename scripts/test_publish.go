// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SOSEvent mirrors the payload the API publishes to the SOS stream.
type SOSEvent struct {
	ID        uuid.UUID `json:"id"`
	DeviceID  string    `json:"device_id"`
	Lat       float64   `json:"latitude"`
	Lon       float64   `json:"longitude"`
	EventType string    `json:"event_type"`
	Timestamp int64     `json:"timestamp"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	deviceID := flag.String("device", "handbag_001", "Device ID to report")
	eventType := flag.String("event", "USER_SOS", "Event type (USER_SOS or AUTO_UNUSUAL_ACTIVITY)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Test event (Holborn, central London)
	event := SOSEvent{
		ID:        uuid.New(),
		DeviceID:  *deviceID,
		Lat:       51.5174,
		Lon:       -0.1190,
		EventType: *eventType,
		Timestamp: time.Now().UnixMilli(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:sos:events",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published SOS event %s as stream message %s\n", event.ID, result)
}
