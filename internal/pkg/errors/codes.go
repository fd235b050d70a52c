package errors

import "net/http"

// Degradation errors are logged where they occur and converted to
// well-typed "unknown/empty" values; they never reach the HTTP caller.
// Only ErrInvalidCoordinates is rejected at the boundary.
var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrModelUnavailable = New(
		"MODEL_UNAVAILABLE",
		"Risk classifier is not loaded",
		http.StatusServiceUnavailable,
	)

	ErrGraphUnavailable = New(
		"GRAPH_UNAVAILABLE",
		"Road graph is not loaded",
		http.StatusServiceUnavailable,
	)

	ErrDecodeFailure = New(
		"DECODE_FAILURE",
		"Failed to decode classifier label",
		http.StatusInternalServerError,
	)

	ErrNoPathFound = New(
		"NO_PATH_FOUND",
		"No path between the requested points",
		http.StatusNotFound,
	)

	ErrExternalProvider = New(
		"EXTERNAL_PROVIDER_ERROR",
		"External routing provider failed",
		http.StatusBadGateway,
	)

	ErrLocationRequired = New(
		"LOCATION_REQUIRED",
		"Latitude and longitude are required",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
