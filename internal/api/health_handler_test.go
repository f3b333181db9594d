package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		pinger         Pinger
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no database",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"ver":1}`,
		},
		{
			name:           "database reachable",
			pinger:         pingFunc(func(ctx context.Context) error { return nil }),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"ver":1}`,
		},
		{
			name:           "database down",
			pinger:         pingFunc(func(ctx context.Context) error { return errors.New("connection refused") }),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"Database unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			HealthCheck(tt.pinger).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health-check", nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}
