// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/config"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	tests := []struct {
		name        string
		level       string
		debugLogged bool
		infoLogged  bool
	}{
		{name: "debug level", level: "debug", debugLogged: true, infoLogged: true},
		{name: "info level", level: "info", debugLogged: false, infoLogged: true},
		{name: "uppercase warn", level: "WARN", debugLogged: false, infoLogged: false},
		{name: "invalid falls back to info", level: "verbose", debugLogged: false, infoLogged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tt.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")

			_, debugFound := buf.FindEntry("debug message")
			_, infoFound := buf.FindEntry("info message")
			assert.Equal(t, tt.debugLogged, debugFound)
			assert.Equal(t, tt.infoLogged, infoFound)
			assert.Same(t, l, slog.Default(), "Setup should install the logger as default")
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok := logger.ParseLevel("Error")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelError, level)

	level, ok = logger.ParseLevel("")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	_, l := logger.NewTestLogger()
	_, fallback := logger.NewTestLogger()

	t.Run("context without logger uses fallback", func(t *testing.T) {
		t.Parallel()
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("context logger wins", func(t *testing.T) {
		t.Parallel()
		ctx := logger.WithLogger(context.Background(), l)
		assert.Same(t, l, logger.FromContextOrDefault(ctx, fallback))
		assert.Same(t, l, logger.FromContext(ctx))
	})

	t.Run("nil fallback uses default", func(t *testing.T) {
		t.Parallel()
		assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
	})
}

func TestTestLogBuffer_GetLogEntries(t *testing.T) {
	t.Parallel()

	buf, l := logger.NewTestLogger()
	l.Info("first", "key", "value")
	l.Warn("second")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
	assert.Equal(t, "WARN", entries[1]["level"])

	logger.AssertLogContains(t, buf, "second")
}
