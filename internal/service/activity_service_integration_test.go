//go:build integration

package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/domain"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/logger"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/postgres"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/service"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/testdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntegrationService(t *testing.T) service.ActivityService {
	t.Helper()

	sqlDB := testdb.Open(t)
	testdb.Reset(t, sqlDB)
	testdb.SeedUser(t, sqlDB, "andrewbrown", "Andrew Brown")

	_, l := logger.NewTestLogger()
	pool := testdb.NewPool(t, l)

	svc, err := service.NewActivityService(
		postgres.NewDb(pool, l, nil),
		postgres.NewTemplateStore(testdb.TemplateDir(t), l, nil),
		l,
	)
	require.NoError(t, err)
	return svc
}

func TestIntegrationCreateActivityRoundTrip(t *testing.T) {
	svc := newIntegrationService(t)
	ctx := context.Background()

	model := svc.CreateActivity(ctx, "andrewbrown", "hello cruddur", "1-day")
	require.False(t, model.Failed(), "errors: %v", model.Errors)

	raw, ok := model.Data.(json.RawMessage)
	require.True(t, ok, "data is %T", model.Data)

	var created struct {
		UUID      uuid.UUID `json:"uuid"`
		Handle    string    `json:"handle"`
		Message   string    `json:"message"`
		ExpiresAt string    `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "andrewbrown", created.Handle)
	assert.Equal(t, "hello cruddur", created.Message)
	assert.NotEmpty(t, created.ExpiresAt)

	shown, err := svc.ShowActivity(ctx, created.UUID)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(shown))

	home, err := svc.HomeActivities(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(home), created.UUID.String())

	count, err := svc.CountActivities(ctx, "andrewbrown")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIntegrationCreateActivityUnknownHandle(t *testing.T) {
	svc := newIntegrationService(t)

	// The subselect yields NULL for an unknown handle and the NOT NULL
	// constraint rejects the row.
	model := svc.CreateActivity(context.Background(), "nobody", "hello", "1-hour")
	assert.Equal(t, []string{domain.ErrCodeUnexpected}, model.Errors)
}

func TestIntegrationCreateActivityTooLong(t *testing.T) {
	svc := newIntegrationService(t)

	model := svc.CreateActivity(context.Background(), "andrewbrown", strings.Repeat("a", 281), "1-hour")
	assert.Equal(t, []string{domain.ErrCodeMessageExceedMaxChars}, model.Errors)

	count, err := svc.CountActivities(context.Background(), "andrewbrown")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIntegrationShowMissingActivity(t *testing.T) {
	svc := newIntegrationService(t)

	raw, err := svc.ShowActivity(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestIntegrationHomeEmpty(t *testing.T) {
	svc := newIntegrationService(t)

	raw, err := svc.HomeActivities(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}
