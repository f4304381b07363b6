package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"edurooms/internal/handlers/health"
)

func TestHealth(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name         string
		dependencies []health.Dependency
		wantStatus   int
		wantBody     string
	}{
		{
			name:         "all dependencies up",
			dependencies: []health.Dependency{{Name: "postgres", Check: up}, {Name: "redis", Check: up}},
			wantStatus:   http.StatusOK,
			wantBody:     `"redis":"up"`,
		},
		{
			name:         "redis down",
			dependencies: []health.Dependency{{Name: "postgres", Check: up}, {Name: "redis", Check: down}},
			wantStatus:   http.StatusServiceUnavailable,
			wantBody:     `"redis":"down"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := health.NewWithDependencies(tt.dependencies...)

			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
