package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artgallery/internal/domain"
	"artgallery/internal/sqlinline"
)

type postTestSQL struct {
	execQuery string
	execArgs  []any
	execErr   error
	rows      []domain.Post
	queryErr  error
}

func (p *postTestSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	p.execQuery = query
	p.execArgs = args
	return pgconn.CommandTag{}, p.execErr
}

func (p *postTestSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (p *postTestSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if p.queryErr != nil {
		return nil, p.queryErr
	}
	if query != sqlinline.QListPosts {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		return nil, fmt.Errorf("unexpected args count: %d", len(args))
	}
	return &postRowsIterator{rows: p.rows}, nil
}

type postRowsIterator struct {
	testRowsBase
	rows   []domain.Post
	idx    int
	closed bool
}

func (it *postRowsIterator) Next() bool {
	if it.idx >= len(it.rows) {
		return false
	}
	it.idx++
	return true
}

func (it *postRowsIterator) Scan(dest ...any) error {
	if it.idx == 0 || it.idx > len(it.rows) {
		return pgx.ErrNoRows
	}
	if len(dest) != 5 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	row := it.rows[it.idx-1]
	*dest[0].(*string) = row.ID
	*dest[1].(*string) = row.Name
	*dest[2].(*string) = row.Prompt
	*dest[3].(*string) = row.Photo
	*dest[4].(*time.Time) = row.CreatedAt
	return nil
}

func (it *postRowsIterator) Err() error { return nil }

func (it *postRowsIterator) Close() { it.closed = true }

func TestPostRepositoryCreatePassesAllColumns(t *testing.T) {
	fake := &postTestSQL{}
	repo := NewPostRepository(fake)
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	post := &domain.Post{ID: "11111111-2222-3333-4444-555555555555", Name: "Ada", Prompt: "a cat", Photo: "data:image/png;base64,AA", CreatedAt: created}

	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, sqlinline.QInsertPost, fake.execQuery)
	assert.Equal(t, []any{post.ID, "Ada", "a cat", "data:image/png;base64,AA", created}, fake.execArgs)
}

func TestPostRepositoryCreateWrapsPersistenceError(t *testing.T) {
	repo := NewPostRepository(&postTestSQL{execErr: errors.New("connection reset")})
	err := repo.Create(context.Background(), &domain.Post{ID: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostRepositoryListScansRowsInOrder(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := []domain.Post{
		{ID: "b", Name: "Grace", Prompt: "a dog", Photo: "p2", CreatedAt: now},
		{ID: "a", Name: "Ada", Prompt: "a cat", Photo: "p1", CreatedAt: now.Add(-time.Minute)},
	}
	repo := NewPostRepository(&postTestSQL{rows: rows})

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestPostRepositoryListEmptyIsNotNil(t *testing.T) {
	repo := NewPostRepository(&postTestSQL{})
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostRepositoryListQueryError(t *testing.T) {
	repo := NewPostRepository(&postTestSQL{queryErr: errors.New("db down")})
	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestMemoryPostRepositoryNewestFirst(t *testing.T) {
	repo := NewMemoryPostRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.Post{ID: "1"}))
	require.NoError(t, repo.Create(ctx, &domain.Post{ID: "2"}))
	require.NoError(t, repo.Create(ctx, &domain.Post{ID: "3"}))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"3", "2", "1"}, ids)

	got[0].Name = "mutated"
	again, _ := repo.List(ctx)
	assert.Empty(t, again[0].Name)
}
