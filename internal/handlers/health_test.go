package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BradenHooton/storefront/internal/handlers"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expected       handlers.HealthResponse
	}{
		{"database up", nil, http.StatusOK, handlers.HealthResponse{Status: "healthy", Database: "up"}},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, handlers.HealthResponse{Status: "unhealthy", Database: "down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewHealthHandler(pingerFunc(func(ctx context.Context) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return tt.pingErr
			}))

			w := httptest.NewRecorder()
			handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			var resp handlers.HealthResponse
			handlers.AssertJSONResponse(t, w, tt.expectedStatus, &resp)
			assert.Equal(t, tt.expected, resp)
		})
	}
}
