package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/api/shared"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/domain"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handlePathUUID extracts a UUID path parameter and writes a 400 response
// when it is missing or malformed.
func handlePathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, err := getPathUUID(r, paramName)
	if err != nil {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		log.Warn("invalid "+paramName,
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, false
	}
	return id, true
}

// resolveHandle picks the author handle for a request. With authentication
// enabled the token's handle wins and the body value is ignored.
func resolveHandle(r *http.Request, bodyHandle string) string {
	if handle, ok := shared.GetHandle(r.Context()); ok {
		return handle
	}
	return strings.TrimSpace(bodyHandle)
}
