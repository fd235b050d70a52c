package graphhopper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safebag-backend/internal/config"
	"github.com/safebag-backend/internal/domain"
	apperrors "github.com/safebag-backend/internal/pkg/errors"
)

func testConfig(baseURL string) *config.RoutingConfig {
	return &config.RoutingConfig{
		ProviderBaseURL: baseURL,
		ProviderAPIKey:  "test_key",
		Vehicle:         "car",
		RequestTimeout:  2 * time.Second,
	}
}

func TestClient_FastRoute(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	origin := domain.Point{Lat: 51.50, Lon: -0.12}
	destination := domain.Point{Lat: 51.52, Lon: -0.10}

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Len(t, q["point"], 2)
			assert.Equal(t, "car", q.Get("vehicle"))
			assert.Equal(t, "false", q.Get("points_encoded"))
			assert.Equal(t, "test_key", q.Get("key"))

			w.Header().Set("Content-Type", "application/json")
			// Provider speaks (lon, lat).
			w.Write([]byte(`{
				"paths": [{
					"points": {
						"coordinates": [[-0.12, 51.50], [-0.11, 51.51], [-0.10, 51.52]]
					}
				}]
			}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		route, err := client.FastRoute(context.Background(), origin, destination)
		require.NoError(t, err)
		require.Len(t, route, 3)
		assert.Equal(t, domain.Point{Lat: 51.50, Lon: -0.12}, route[0])
		assert.Equal(t, domain.Point{Lat: 51.52, Lon: -0.10}, route[2])
	})

	t.Run("short coordinate pairs are skipped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"paths": [{"points": {"coordinates": [[-0.12, 51.50], [-0.11], []]}}]}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		route, err := client.FastRoute(context.Background(), origin, destination)
		require.NoError(t, err)
		assert.Len(t, route, 1)
	})

	t.Run("api error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid key"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		route, err := client.FastRoute(context.Background(), origin, destination)
		assert.Error(t, err)
		assert.Nil(t, route)
		assert.ErrorIs(t, err, apperrors.ErrExternalProvider)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("no paths in response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"paths": []}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		route, err := client.FastRoute(context.Background(), origin, destination)
		assert.Error(t, err)
		assert.Nil(t, route)
		assert.ErrorIs(t, err, apperrors.ErrExternalProvider)
		assert.Contains(t, err.Error(), "no paths")
	})

	t.Run("malformed response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"paths": [`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), logger)

		_, err := client.FastRoute(context.Background(), origin, destination)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrExternalProvider)
	})

	t.Run("request timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.RequestTimeout = 50 * time.Millisecond
		client := NewClient(cfg, logger)

		_, err := client.FastRoute(context.Background(), origin, destination)
		assert.Error(t, err)
	})
}
