package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artgallery/internal/adapter/repo"
	"artgallery/internal/domain"
	"artgallery/internal/infra"
)

type countingRepo struct {
	domain.PostRepository
	creates int
	err     error
}

func (c *countingRepo) Create(ctx context.Context, p *domain.Post) error {
	c.creates++
	if c.err != nil {
		return c.err
	}
	return c.PostRepository.Create(ctx, p)
}

func TestCreateRejectsIncompleteDraftBeforeStore(t *testing.T) {
	store := &countingRepo{PostRepository: repo.NewMemoryPostRepository()}
	svc := NewService(store, infra.NopLogger())

	drafts := []domain.PostDraft{
		{Name: "", Prompt: "a cat", Photo: "data:x"},
		{Name: "Ada", Prompt: "  ", Photo: "data:x"},
		{Name: "Ada", Prompt: "a cat", Photo: ""},
	}
	for _, d := range drafts {
		_, err := svc.Create(context.Background(), d)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.Zero(t, store.creates)
}

func TestCreateTwiceYieldsDistinctPosts(t *testing.T) {
	svc := NewService(repo.NewMemoryPostRepository(), infra.NopLogger())
	draft := domain.PostDraft{Name: "Ada", Prompt: "a cat", Photo: "data:image/png;base64,AA"}

	first, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Prompt, second.Prompt)
	assert.Equal(t, first.Photo, second.Photo)

	posts, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID, "newest post first")
}

func TestCreateTrimsTextFields(t *testing.T) {
	svc := NewService(repo.NewMemoryPostRepository(), infra.NopLogger())
	post, err := svc.Create(context.Background(), domain.PostDraft{Name: " Ada ", Prompt: " a cat\n", Photo: "p"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", post.Name)
	assert.Equal(t, "a cat", post.Prompt)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePropagatesPersistenceError(t *testing.T) {
	store := &countingRepo{PostRepository: repo.NewMemoryPostRepository(), err: domain.ErrPersistence}
	svc := NewService(store, infra.NopLogger())
	_, err := svc.Create(context.Background(), domain.PostDraft{Name: "Ada", Prompt: "a cat", Photo: "p"})
	assert.True(t, errors.Is(err, domain.ErrPersistence))
}
