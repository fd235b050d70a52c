package domain

import "github.com/google/uuid"

// Stream names (must match the mobile backend)
const (
	StreamSOSEvents = "stream:sos:events"
)

// Device event types as the hardware and the app report them.
const (
	EventNormal          = "NORMAL"
	EventSafe            = "SAFE"
	EventUserSOS         = "USER_SOS"
	EventUnusualActivity = "AUTO_UNUSUAL_ACTIVITY"
	EventWaitingForData  = "WAITING_FOR_DATA"
	EventServerError     = "SERVER_ERROR"
)

// EscalationEventTypes are the event types the alert worker reacts to.
var EscalationEventTypes = map[string]bool{
	EventUserSOS:         true,
	EventUnusualActivity: true,
}

// DeviceLocation is the latest state of a device as held by the live
// location store.
type DeviceLocation struct {
	Lat          float64 `json:"latitude"`
	Lon          float64 `json:"longitude"`
	EventType    string  `json:"event_type"`
	Acknowledged bool    `json:"acknowledged"`
	Timestamp    int64   `json:"timestamp"`
}

// SOSEvent is an emergency raised manually from the app or automatically
// by the device, published to the SOS stream for the alert worker.
type SOSEvent struct {
	ID        uuid.UUID `json:"id"`
	DeviceID  string    `json:"device_id"`
	Lat       float64   `json:"latitude"`
	Lon       float64   `json:"longitude"`
	EventType string    `json:"event_type"`
	Timestamp int64     `json:"timestamp"`
}

// StreamMessage is a raw message read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
