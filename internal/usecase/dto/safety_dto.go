package dto

// AssessmentRequest - query parameters of the risk prediction endpoint
type AssessmentRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// AssessmentResponse - risk verdict returned to the app
type AssessmentResponse struct {
	Risk              string  `json:"risk"`
	Crime             string  `json:"crime"`
	SafetyProbability float64 `json:"safety_probability"`
}

// RouteRequest - origin and destination of a dual-route query
type RouteRequest struct {
	StartLat float64 `json:"start_lat" validate:"min=-90,max=90"`
	StartLon float64 `json:"start_lon" validate:"min=-180,max=180"`
	EndLat   float64 `json:"end_lat" validate:"min=-90,max=90"`
	EndLon   float64 `json:"end_lon" validate:"min=-180,max=180"`
}

// RouteResponse - the two alternative lines; either may be empty
type RouteResponse struct {
	FastRoute [][]float64 `json:"fast_route"`
	SafeRoute [][]float64 `json:"safe_route"`
}

// LocationResponse - latest device state relayed to the app
type LocationResponse struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	EventType    string  `json:"event_type"`
	Acknowledged bool    `json:"acknowledged"`
	Timestamp    int64   `json:"timestamp"`
}

// SOSRequest - manual SOS raised from the app
type SOSRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// EscalateRequest - automatic escalation pushed by the device pipeline
type EscalateRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	EventType string   `json:"event_type" validate:"required"`
}

// SafeHavenDTO - a nearby safe haven (police station, hospital)
type SafeHavenDTO struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
}

// PoliceResponse - safe havens around the requested point
type PoliceResponse struct {
	Stations []SafeHavenDTO `json:"stations"`
}
