package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/api/shared"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/logger"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/service"
	"github.com/go-chi/chi/v5"
)

// CreateActivityRequest is the body of POST /api/activities. Content rules
// (blank message, length, TTL codes) are enforced by the service so their
// error codes reach the client; the tags only bound the input size.
type CreateActivityRequest struct {
	Handle  string `json:"handle"  validate:"omitempty,max=64"`
	Message string `json:"message" validate:"max=4096"`
	TTL     string `json:"ttl"     validate:"max=32"`
}

// ActivityCountResponse is the body of GET /api/users/{handle}/activities/count.
type ActivityCountResponse struct {
	Handle string `json:"handle"`
	Count  int64  `json:"count"`
}

// ActivityHandler handles activity-related HTTP requests
type ActivityHandler struct {
	activities    service.ActivityService
	notifications service.NotificationsService
	logger        *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(
	activities service.ActivityService,
	notifications service.NotificationsService,
	logger *slog.Logger,
) *ActivityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityHandler{
		activities:    activities,
		notifications: notifications,
		logger:        logger.With(slog.String("handler", "activity")),
	}
}

// HomeActivities handles GET /api/activities/home
func (h *ActivityHandler) HomeActivities(w http.ResponseWriter, r *http.Request) {
	raw, err := h.activities.HomeActivities(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load activities")
		return
	}
	shared.RespondWithRawJSON(w, r, http.StatusOK, raw)
}

// NotificationsActivities handles GET /api/activities/notifications
func (h *ActivityHandler) NotificationsActivities(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.notifications.Feed(r.Context()))
}

// ShowActivity handles GET /api/activities/{activity_uuid}
func (h *ActivityHandler) ShowActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "activity_uuid")
	if !ok {
		return
	}

	raw, err := h.activities.ShowActivity(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// The object executor reports a missing row as {}.
	if isEmptyObject(raw) {
		HandleAPIError(w, r, service.ErrActivityNotFound, "")
		return
	}

	shared.RespondWithRawJSON(w, r, http.StatusOK, raw)
}

// CreateActivity handles POST /api/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateActivityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid create activity body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	handle := resolveHandle(r, req.Handle)
	model := h.activities.CreateActivity(r.Context(), handle, req.Message, strings.TrimSpace(req.TTL))
	if model.Failed() {
		log.Info("activity not created",
			slog.String("handle", handle),
			slog.Any("errors", model.Errors))
		shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, model)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, model.Data)
}

// CountActivities handles GET /api/users/{handle}/activities/count
func (h *ActivityHandler) CountActivities(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimSpace(chi.URLParam(r, "handle"))
	if handle == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid handle")
		return
	}

	count, err := h.activities.CountActivities(r.Context(), handle)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to count activities")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ActivityCountResponse{Handle: handle, Count: count})
}

func isEmptyObject(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("{}"))
}
