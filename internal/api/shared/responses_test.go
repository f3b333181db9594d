package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "health check",
			status:       http.StatusOK,
			data:         map[string]interface{}{"success": true, "ver": 1},
			expectedBody: `{"success":true,"ver":1}`,
		},
		{
			name:         "empty response",
			status:       http.StatusOK,
			data:         map[string]interface{}{},
			expectedBody: `{}`,
		},
		{
			name:         "nil response",
			status:       http.StatusOK,
			data:         nil,
			expectedBody: `null`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithRawJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/activities/home", nil)

	w := httptest.NewRecorder()
	RespondWithRawJSON(w, req, http.StatusOK, json.RawMessage(`[{"uuid":"x"}]`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `[{"uuid":"x"}]`, w.Body.String(), "raw documents are written byte for byte")

	w = httptest.NewRecorder()
	RespondWithRawJSON(w, req, http.StatusOK, nil)
	assert.Equal(t, "null", w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/activities/bad", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-123"))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "Invalid activity ID")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid activity ID", resp.Error)
	assert.Equal(t, "trace-123", resp.TraceID)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	logBuf, l := logger.NewTestLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/activities/home", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), l))
	w := httptest.NewRecorder()

	err := errors.New("connect postgresql://cruddur:s3cretpass@db:5432/cruddur failed")
	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "An unexpected error occurred", err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "postgresql://")
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")

	entry, found := logBuf.FindEntry("API error response")
	require.True(t, found)
	assert.Equal(t, "ERROR", entry["level"])
	assert.NotContains(t, entry["error"], "s3cretpass")
}

func TestRespondWithErrorAndLogLevels(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		opts  []ResponseOption
		level string
	}{
		{"client error", http.StatusBadRequest, nil, "DEBUG"},
		{"elevated client error", http.StatusUnauthorized, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
		{"server error", http.StatusServiceUnavailable, nil, "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logBuf, l := logger.NewTestLogger()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(logger.WithLogger(context.Background(), l))

			RespondWithErrorAndLog(httptest.NewRecorder(), req, tc.code, "msg", errors.New("x"), tc.opts...)

			entry, found := logBuf.FindEntry("API error response")
			require.True(t, found)
			assert.Equal(t, tc.level, entry["level"])
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Message string `json:"message"`
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `{"message":"hi"}`, false},
		{"malformed", `{"message":`, true},
		{"trailing object", `{"message":"a"}{"message":"b"}`, true},
		{"empty", ``, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.input))
			var b body
			err := DecodeJSON(req, &b)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "hi", b.Message)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		TTL string `validate:"max=5"`
	}
	assert.NoError(t, ValidateRequest(req{TTL: "1-day"}))
	err := ValidateRequest(req{TTL: "30-days"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = SetTraceID(ctx)
	assert.Len(t, GetTraceID(ctx), TraceIDLength*2)

	_, ok := GetHandle(ctx)
	assert.False(t, ok)

	ctx = WithHandle(ctx, "andrewbrown")
	handle, ok := GetHandle(ctx)
	assert.True(t, ok)
	assert.Equal(t, "andrewbrown", handle)

	_, ok = GetHandle(WithHandle(context.Background(), ""))
	assert.False(t, ok)
}
