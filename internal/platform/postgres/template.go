package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/store"
)

// TemplateExt is appended to the last path segment of a template key.
const TemplateExt = ".sql"

// TemplateRecorder receives one observation per template load.
type TemplateRecorder interface {
	ObserveTemplateLoad(status string)
}

// TemplateNotFoundError reports a template key that resolves to no file.
// It matches store.ErrTemplateNotFound and unwraps to the filesystem error.
type TemplateNotFoundError struct {
	Segments []string
	Path     string
	Err      error
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("sql template %q not found at %s", strings.Join(e.Segments, "/"), e.Path)
}

// Unwrap returns the underlying filesystem error.
func (e *TemplateNotFoundError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, store.ErrTemplateNotFound) hold.
func (e *TemplateNotFoundError) Is(target error) bool {
	return target == store.ErrTemplateNotFound
}

// TemplateStore reads SQL templates from a directory tree laid out as
// <root>/<category>/<operation>.sql. Templates are read on every Load.
type TemplateStore struct {
	root     string
	fsys     fs.FS
	logger   *slog.Logger
	recorder TemplateRecorder
}

// Ensure TemplateStore implements store.TemplateLoader interface
var _ store.TemplateLoader = (*TemplateStore)(nil)

// NewTemplateStore creates a store rooted at root. recorder may be nil.
func NewTemplateStore(root string, logger *slog.Logger, recorder TemplateRecorder) *TemplateStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateStore{
		root:     root,
		fsys:     os.DirFS(root),
		logger:   logger.With(slog.String("component", "sql_templates")),
		recorder: recorder,
	}
}

// Root returns the configured template directory.
func (s *TemplateStore) Root() string {
	return s.root
}

// Path resolves segments to a filesystem path, e.g. ("activities", "create")
// becomes <root>/activities/create.sql.
func (s *TemplateStore) Path(segments ...string) string {
	return filepath.Join(s.root, filepath.FromSlash(templateName(segments)))
}

// Load returns the text of the template named by segments.
func (s *TemplateStore) Load(segments ...string) (string, error) {
	name := templateName(segments)
	templatePath := s.Path(segments...)

	if len(segments) == 0 || !fs.ValidPath(name) {
		s.observe("error")
		return "", &TemplateNotFoundError{Segments: segments, Path: templatePath, Err: fs.ErrInvalid}
	}

	s.logger.Debug("load sql template", slog.String("path", templatePath))

	content, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		s.observe("error")
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("sql template not found",
				slog.String("path", templatePath),
				slog.String("error", err.Error()))
			return "", &TemplateNotFoundError{Segments: segments, Path: templatePath, Err: err}
		}
		return "", fmt.Errorf("read sql template %s: %w", templatePath, err)
	}

	s.observe("ok")
	return string(content), nil
}

func (s *TemplateStore) observe(status string) {
	if s.recorder != nil {
		s.recorder.ObserveTemplateLoad(status)
	}
}

func templateName(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return path.Join(segments...) + TemplateExt
}
