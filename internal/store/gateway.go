package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Params maps template placeholder names to values. Templates reference them
// as @name.
type Params map[string]any

// CommitState describes how a commit-mode statement ended.
type CommitState int

const (
	// CommitFailed means the statement or the commit did not succeed.
	CommitFailed CommitState = iota
	// CommitNoValue means the statement committed and declared no RETURNING clause.
	CommitNoValue
	// CommitWithValue means the statement committed and produced a returned value.
	CommitWithValue
)

// String returns a lowercase name suitable for logs and metric labels.
func (s CommitState) String() string {
	switch s {
	case CommitNoValue:
		return "committed"
	case CommitWithValue:
		return "committed_with_value"
	default:
		return "failed"
	}
}

// CommitResult is the outcome of a commit-mode statement. Commit-mode never
// returns a Go error; callers that care about failures must check Failed or Err.
type CommitResult struct {
	state CommitState
	value any
	err   error
}

// Committed builds a result for a statement that committed without a returned value.
func Committed() CommitResult {
	return CommitResult{state: CommitNoValue}
}

// CommittedWithValue builds a result carrying the first column of the first returned row.
func CommittedWithValue(v any) CommitResult {
	return CommitResult{state: CommitWithValue, value: v}
}

// CommitFailure builds a failed result.
func CommitFailure(err error) CommitResult {
	return CommitResult{state: CommitFailed, err: err}
}

// State reports how the statement ended.
func (r CommitResult) State() CommitState { return r.state }

// Failed reports whether the statement failed.
func (r CommitResult) Failed() bool { return r.state == CommitFailed }

// Err returns the failure cause, or nil.
func (r CommitResult) Err() error { return r.err }

// Value returns the returned value and whether one exists.
func (r CommitResult) Value() (any, bool) {
	return r.value, r.state == CommitWithValue
}

// UUID interprets the returned value as a UUID.
func (r CommitResult) UUID() (uuid.UUID, error) {
	if r.state == CommitFailed {
		return uuid.Nil, r.err
	}
	if r.state != CommitWithValue {
		return uuid.Nil, ErrNoReturnedValue
	}

	switch v := r.value.(type) {
	case uuid.UUID:
		return v, nil
	case [16]byte:
		return uuid.UUID(v), nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("returned value is not a uuid: %w", err)
		}
		return id, nil
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("returned value is not a uuid: %w", err)
		}
		return id, nil
	default:
		return uuid.Nil, fmt.Errorf("returned value of type %T is not a uuid", r.value)
	}
}

// Gateway executes SQL text in one of the four result-shaping modes.
type Gateway interface {
	// QueryCommit executes a write and commits it. The first column of the
	// first returned row is captured when the SQL declares RETURNING.
	QueryCommit(ctx context.Context, sql string, params Params) CommitResult

	// QueryObjectJSON returns the first row as a JSON object, or {} when no row matches.
	QueryObjectJSON(ctx context.Context, sql string, params Params) (json.RawMessage, error)

	// QueryArrayJSON returns all rows as a JSON array in row order, or [] when none match.
	QueryArrayJSON(ctx context.Context, sql string, params Params) (json.RawMessage, error)

	// QueryValue returns the first column of the first row. No rows is an error.
	QueryValue(ctx context.Context, sql string, params Params) (any, error)
}

// TemplateLoader resolves path segments to SQL template text.
type TemplateLoader interface {
	Load(segments ...string) (string, error)
}
