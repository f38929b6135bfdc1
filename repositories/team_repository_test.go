package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingExecutor captures queries and fails them with err.
type recordingExecutor struct {
	queries []string
	err     error
}

func (e *recordingExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.queries = append(e.queries, query)
	return nil, e.err
}

func (e *recordingExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.queries = append(e.queries, query)
	return nil, e.err
}

func (e *recordingExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	e.queries = append(e.queries, query)
	return nil
}

func TestFindByNameLocksRowsInsideTransaction(t *testing.T) {
	assert.NotContains(t, findByNameQuery(false), "FOR UPDATE")
	assert.Contains(t, findByNameQuery(true), "FOR UPDATE")

	exec := &recordingExecutor{err: &pq.Error{Code: "42501", Message: "permission denied for table teams"}}
	repo := NewPostgresTeamRepository(nil)

	_, err := repo.FindByName(context.Background(), exec, "Aces")
	require.ErrorIs(t, err, ErrPermissionDenied)
	require.Len(t, exec.queries, 1)
	assert.Contains(t, exec.queries[0], "FOR UPDATE")
}

func TestMapPQError(t *testing.T) {
	other := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"insufficient privilege", &pq.Error{Code: "42501"}, ErrPermissionDenied},
		{"access rule violation", &pq.Error{Code: "42000"}, ErrPermissionDenied},
		{"unique violation untouched", &pq.Error{Code: "23505"}, nil},
		{"plain error untouched", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPQError(tt.err)
			if tt.want == nil {
				assert.Same(t, tt.err, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
