package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	queries []string
}

func (r *recordingExecutor) Exec(_ context.Context, query string, _ ...any) (pgconn.CommandTag, error) {
	r.queries = append(r.queries, query)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *recordingExecutor) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	r.queries = append(r.queries, query)
	return errorRow{err: pgx.ErrNoRows}
}

func (r *recordingExecutor) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	r.queries = append(r.queries, query)
	return nil, errors.New("boom")
}

func TestExtractMarker(t *testing.T) {
	marker, body, err := ExtractMarker("\n--sql 3f1c2a9e-7b4d-4e8a-9c51-0d6e2b7f4a13\nselect 1;\n")
	require.NoError(t, err)
	assert.Equal(t, "3f1c2a9e-7b4d-4e8a-9c51-0d6e2b7f4a13", marker)
	assert.Equal(t, "select 1;", body)

	_, _, err = ExtractMarker("select 1;")
	assert.ErrorIs(t, err, ErrSQLMarker)

	_, _, err = ExtractMarker("   ")
	assert.Error(t, err)
}

func TestSQLRunnerStripsMarkerBeforeExecuting(t *testing.T) {
	exec := &recordingExecutor{}
	runner := NewSQLRunner(exec, NopLogger())

	tag, err := runner.Exec(context.Background(), "--sql 3f1c2a9e-7b4d-4e8a-9c51-0d6e2b7f4a13\ninsert into t values (1);")
	require.NoError(t, err)
	assert.EqualValues(t, 1, tag.RowsAffected())

	err = runner.QueryRow(context.Background(), "--sql 3f1c2a9e-7b4d-4e8a-9c51-0d6e2b7f4a13\nselect 1;").Scan()
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = runner.Query(context.Background(), "--sql 3f1c2a9e-7b4d-4e8a-9c51-0d6e2b7f4a13\nselect 2;")
	assert.EqualError(t, err, "boom")

	assert.Equal(t, []string{"insert into t values (1);", "select 1;", "select 2;"}, exec.queries)
}

func TestSQLRunnerRejectsUnmarkedStatements(t *testing.T) {
	exec := &recordingExecutor{}
	runner := NewSQLRunner(exec, NopLogger())

	_, err := runner.Exec(context.Background(), "delete from posts;")
	assert.ErrorIs(t, err, ErrSQLMarker)
	err = runner.QueryRow(context.Background(), "select 1;").Scan()
	assert.ErrorIs(t, err, ErrSQLMarker)
	_, err = runner.Query(context.Background(), "select 1;")
	assert.ErrorIs(t, err, ErrSQLMarker)
	assert.Empty(t, exec.queries)
}
