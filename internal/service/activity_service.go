package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/domain"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/store"
	"github.com/google/uuid"
)

// Template keys used by the activity service.
var (
	templateCreateActivity = []string{"activities", "create"}
	templateActivityObject = []string{"activities", "object"}
	templateHomeActivities = []string{"activities", "home"}
	templateCountByHandle  = []string{"activities", "count"}
)

// ActivityModel is the result of a create request. Exactly one of the two
// shapes is populated: Errors with Data echoing the input, or Data holding
// the stored activity.
type ActivityModel struct {
	Errors []string `json:"errors"`
	Data   any      `json:"data"`
}

// Failed reports whether the request produced validation or runtime errors.
func (m ActivityModel) Failed() bool {
	return len(m.Errors) > 0
}

// ActivityService provides activity-related operations
type ActivityService interface {
	// CreateActivity validates and stores a new activity, then reads it back.
	CreateActivity(ctx context.Context, handle, message, ttl string) ActivityModel

	// HomeActivities returns the latest activities as a JSON array.
	HomeActivities(ctx context.Context) (json.RawMessage, error)

	// ShowActivity returns one activity as a JSON object, or {} when none matches.
	ShowActivity(ctx context.Context, id uuid.UUID) (json.RawMessage, error)

	// CountActivities returns how many activities the handle has published.
	CountActivities(ctx context.Context, handle string) (int64, error)
}

// activityServiceImpl implements the ActivityService interface
type activityServiceImpl struct {
	gateway   store.Gateway
	templates store.TemplateLoader
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an activity service.
type Option func(*activityServiceImpl)

// WithClock overrides the time source used to compute expiry.
func WithClock(now func() time.Time) Option {
	return func(s *activityServiceImpl) {
		s.now = now
	}
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	gateway store.Gateway,
	templates store.TemplateLoader,
	logger *slog.Logger,
	opts ...Option,
) (ActivityService, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway cannot be nil")
	}
	if templates == nil {
		return nil, fmt.Errorf("template loader cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &activityServiceImpl{
		gateway:   gateway,
		templates: templates,
		logger:    logger.With(slog.String("component", "activity_service")),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateActivity implements ActivityService.CreateActivity
func (s *activityServiceImpl) CreateActivity(ctx context.Context, handle, message, ttl string) ActivityModel {
	req := domain.NewActivity{Handle: handle, Message: message, TTL: ttl}

	if errs := req.Validate(); errs != nil {
		s.logger.DebugContext(ctx, "activity rejected",
			slog.String("handle", handle),
			slog.Any("errors", errs))
		return ActivityModel{
			Errors: errs,
			Data: map[string]string{
				"handle":  handle,
				"message": message,
			},
		}
	}

	expiresAt, err := req.ExpiresAt(s.now().UTC())
	if err != nil {
		return s.unexpected(ctx, "compute expiry", err)
	}

	createSQL, err := s.templates.Load(templateCreateActivity...)
	if err != nil {
		return s.unexpected(ctx, "load create template", err)
	}

	res := s.gateway.QueryCommit(ctx, createSQL, store.Params{
		"handle":     handle,
		"message":    message,
		"expires_at": expiresAt,
	})
	if res.Failed() {
		return s.unexpected(ctx, "insert activity", res.Err())
	}

	id, err := res.UUID()
	if err != nil {
		return s.unexpected(ctx, "read returned uuid", err)
	}

	activity, err := s.ShowActivity(ctx, id)
	if err != nil {
		return s.unexpected(ctx, "read back activity", err)
	}

	s.logger.InfoContext(ctx, "activity created",
		slog.String("activity_uuid", id.String()),
		slog.String("handle", handle))

	return ActivityModel{Data: activity}
}

func (s *activityServiceImpl) unexpected(ctx context.Context, step string, err error) ActivityModel {
	s.logger.ErrorContext(ctx, "unexpected error creating activity",
		slog.String("step", step),
		slog.String("error", err.Error()))
	return ActivityModel{Errors: []string{domain.ErrCodeUnexpected}}
}

// HomeActivities implements ActivityService.HomeActivities
func (s *activityServiceImpl) HomeActivities(ctx context.Context) (json.RawMessage, error) {
	sql, err := s.templates.Load(templateHomeActivities...)
	if err != nil {
		return nil, NewActivityServiceError("home_activities", "failed to load template", err)
	}

	raw, err := s.gateway.QueryArrayJSON(ctx, sql, nil)
	if err != nil {
		return nil, NewActivityServiceError("home_activities", "failed to query activities", err)
	}
	if raw == nil {
		return json.RawMessage("[]"), nil
	}
	return raw, nil
}

// ShowActivity implements ActivityService.ShowActivity
func (s *activityServiceImpl) ShowActivity(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	sql, err := s.templates.Load(templateActivityObject...)
	if err != nil {
		return nil, NewActivityServiceError("show_activity", "failed to load template", err)
	}

	raw, err := s.gateway.QueryObjectJSON(ctx, sql, store.Params{"uuid": id})
	if err != nil {
		return nil, NewActivityServiceError("show_activity", "failed to query activity", err)
	}
	return raw, nil
}

// CountActivities implements ActivityService.CountActivities
func (s *activityServiceImpl) CountActivities(ctx context.Context, handle string) (int64, error) {
	sql, err := s.templates.Load(templateCountByHandle...)
	if err != nil {
		return 0, NewActivityServiceError("count_activities", "failed to load template", err)
	}

	v, err := s.gateway.QueryValue(ctx, sql, store.Params{"handle": handle})
	if err != nil {
		return 0, NewActivityServiceError("count_activities", "failed to query count", err)
	}

	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, NewActivityServiceError("count_activities", "unexpected count type",
			fmt.Errorf("got %T", v))
	}
}
