package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/wanderlust/config"
	"github.com/Domenick1991/wanderlust/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestHealthHandler(t *testing.T) {
	srv := health.NewServer()
	handler := healthHandler(srv)

	// Тест 1: сервис ещё не зарегистрирован
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/v1/health", nil), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Тест 2: сервис обслуживает запросы
	srv.SetServingStatus(healthService, healthpb.HealthCheckResponse_SERVING)
	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/v1/health", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"SERVING"}`, w.Body.String())

	// Тест 3: остановка
	srv.SetServingStatus(healthService, healthpb.HealthCheckResponse_NOT_SERVING)
	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/v1/health", nil), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNewServers_Routes(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.Address = ":0"
	cfg.HTTP.AllowedOrigins = []string{"http://localhost:3000"}

	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	s, err := newServers(cfg, api, logger.NewNop())
	require.NoError(t, err)
	s.health.SetServingStatus(healthService, healthpb.HealthCheckResponse_SERVING)

	testCases := []struct {
		path   string
		status int
	}{
		{"/api/listings", http.StatusTeapot},
		{"/v1/health", http.StatusOK},
		{"/metrics", http.StatusOK},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.httpServer.Handler.ServeHTTP(w, httptest.NewRequest("GET", tc.path, nil))
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
