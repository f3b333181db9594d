package service

import (
	"context"
	"encoding/json"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockGateway mocks the store.Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) QueryCommit(ctx context.Context, sql string, params store.Params) store.CommitResult {
	args := m.Called(ctx, sql, params)
	return args.Get(0).(store.CommitResult)
}

func (m *MockGateway) QueryObjectJSON(ctx context.Context, sql string, params store.Params) (json.RawMessage, error) {
	args := m.Called(ctx, sql, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockGateway) QueryArrayJSON(ctx context.Context, sql string, params store.Params) (json.RawMessage, error) {
	args := m.Called(ctx, sql, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockGateway) QueryValue(ctx context.Context, sql string, params store.Params) (any, error) {
	args := m.Called(ctx, sql, params)
	return args.Get(0), args.Error(1)
}

// MockTemplateLoader mocks the store.TemplateLoader interface
type MockTemplateLoader struct {
	mock.Mock
}

func (m *MockTemplateLoader) Load(segments ...string) (string, error) {
	args := m.Called(segments)
	return args.String(0), args.Error(1)
}
