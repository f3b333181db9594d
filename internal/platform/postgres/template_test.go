package postgres_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/logger"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/platform/postgres"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loadCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *loadCounter) ObserveTemplateLoad(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[status]++
}

func writeTemplate(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestTemplateStorePath(t *testing.T) {
	t.Parallel()

	ts := postgres.NewTemplateStore(filepath.Join("db", "sql"), nil, nil)

	assert.Equal(t, filepath.Join("db", "sql", "activities", "create.sql"), ts.Path("activities", "create"))
	assert.Equal(t, filepath.Join("db", "sql", "health.sql"), ts.Path("health"))
	assert.Equal(t, filepath.Join("db", "sql"), ts.Root())
}

func TestTemplateStoreLoad(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTemplate(t, root, "activities/create.sql", "INSERT INTO public.activities (message) VALUES (@message) RETURNING uuid;\n")
	writeTemplate(t, root, "activities/home.sql", "SELECT * FROM public.activities")

	counter := &loadCounter{}
	logBuf, l := logger.NewTestLogger()
	ts := postgres.NewTemplateStore(root, l, counter)

	t.Run("existing template", func(t *testing.T) {
		sql, err := ts.Load("activities", "create")
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO public.activities (message) VALUES (@message) RETURNING uuid;\n", sql)
		logger.AssertLogContains(t, logBuf, "load sql template")
	})

	t.Run("missing template", func(t *testing.T) {
		_, err := ts.Load("activities", "nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrTemplateNotFound)
		assert.ErrorIs(t, err, fs.ErrNotExist)

		var nf *postgres.TemplateNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, []string{"activities", "nope"}, nf.Segments)
		assert.Equal(t, filepath.Join(root, "activities", "nope.sql"), nf.Path)
	})

	t.Run("escape attempts are rejected", func(t *testing.T) {
		for _, segments := range [][]string{
			{"..", "secret"},
			{"activities", "..", "..", "secret"},
			{"/etc", "passwd"},
			{},
		} {
			_, err := ts.Load(segments...)
			assert.ErrorIs(t, err, store.ErrTemplateNotFound, "segments %v", segments)
			assert.ErrorIs(t, err, fs.ErrInvalid, "segments %v", segments)
		}
	})

	t.Run("edits are picked up without restart", func(t *testing.T) {
		writeTemplate(t, root, "activities/home.sql", "SELECT uuid FROM public.activities")
		sql, err := ts.Load("activities", "home")
		require.NoError(t, err)
		assert.Equal(t, "SELECT uuid FROM public.activities", sql)
	})

	counter.mu.Lock()
	defer counter.mu.Unlock()
	assert.Equal(t, 2, counter.counts["ok"])
	assert.Equal(t, 5, counter.counts["error"])
}

func TestTemplateNotFoundErrorMessage(t *testing.T) {
	t.Parallel()

	err := &postgres.TemplateNotFoundError{
		Segments: []string{"activities", "create"},
		Path:     "db/sql/activities/create.sql",
		Err:      fs.ErrNotExist,
	}

	assert.Contains(t, err.Error(), `"activities/create"`)
	assert.Contains(t, err.Error(), "db/sql/activities/create.sql")
	assert.True(t, errors.Is(err, store.ErrTemplateNotFound))
	assert.False(t, errors.Is(err, store.ErrNotFound))
}
