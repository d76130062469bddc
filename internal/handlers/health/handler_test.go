package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storeflight/config"
	otelMocks "storeflight/infras/otel/mocks"
	"storeflight/internal/handlers/health"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type pinger struct {
	err error
}

func (p pinger) Ping(_ context.Context) error {
	return p.err
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		drain      bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "healthy",
			wantStatus: http.StatusOK,
			wantBody:   "StoreFlight API running",
		},
		{
			name:       "database down",
			pingErr:    errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "SERVER UNHEALTHY",
		},
		{
			name:       "draining",
			drain:      true,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "SERVER PREPARING TO SHUT DOWN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.Name = "StoreFlight"

			handler := health.New(pinger{err: tt.pingErr}, cfg, otelMocks.NewOtel())
			if tt.drain {
				handler.Drain()
			}

			router := chi.NewRouter()
			router.Route("/api", handler.Router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
