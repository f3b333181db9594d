package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/service"
	"github.com/google/uuid"
)

// CreateActivityCall records the arguments of one CreateActivity call.
type CreateActivityCall struct {
	Handle  string
	Message string
	TTL     string
}

// MockActivityService implements service.ActivityService for testing
type MockActivityService struct {
	CreateActivityFn  func(ctx context.Context, handle, message, ttl string) service.ActivityModel
	HomeActivitiesFn  func(ctx context.Context) (json.RawMessage, error)
	ShowActivityFn    func(ctx context.Context, id uuid.UUID) (json.RawMessage, error)
	CountActivitiesFn func(ctx context.Context, handle string) (int64, error)

	mu          sync.Mutex
	createCalls []CreateActivityCall
}

// Ensure MockActivityService implements service.ActivityService
var _ service.ActivityService = (*MockActivityService)(nil)

// CreateActivity implements service.ActivityService
func (m *MockActivityService) CreateActivity(ctx context.Context, handle, message, ttl string) service.ActivityModel {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, CreateActivityCall{Handle: handle, Message: message, TTL: ttl})
	m.mu.Unlock()

	if m.CreateActivityFn != nil {
		return m.CreateActivityFn(ctx, handle, message, ttl)
	}
	return service.ActivityModel{Data: json.RawMessage(`{}`)}
}

// CreateCalls returns the recorded CreateActivity calls.
func (m *MockActivityService) CreateCalls() []CreateActivityCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CreateActivityCall(nil), m.createCalls...)
}

// HomeActivities implements service.ActivityService
func (m *MockActivityService) HomeActivities(ctx context.Context) (json.RawMessage, error) {
	if m.HomeActivitiesFn != nil {
		return m.HomeActivitiesFn(ctx)
	}
	return json.RawMessage(`[]`), nil
}

// ShowActivity implements service.ActivityService
func (m *MockActivityService) ShowActivity(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	if m.ShowActivityFn != nil {
		return m.ShowActivityFn(ctx, id)
	}
	return json.RawMessage(`{}`), nil
}

// CountActivities implements service.ActivityService
func (m *MockActivityService) CountActivities(ctx context.Context, handle string) (int64, error) {
	if m.CountActivitiesFn != nil {
		return m.CountActivitiesFn(ctx, handle)
	}
	return 0, nil
}
