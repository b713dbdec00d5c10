package repo

import (
	"context"
	"sync"

	"artgallery/internal/domain"
)

// MemoryPostRepository keeps the gallery in process memory. It backs the
// service when no DATABASE_URL is configured and doubles as a test store.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts []domain.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{}
}

func (r *MemoryPostRepository) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	r.posts = append(r.posts, *post)
	r.mu.Unlock()
	return nil
}

// List returns a copy in reverse insertion order, i.e. newest first.
func (r *MemoryPostRepository) List(_ context.Context) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Post, 0, len(r.posts))
	for i := len(r.posts) - 1; i >= 0; i-- {
		out = append(out, r.posts[i])
	}
	return out, nil
}

var _ domain.PostRepository = (*MemoryPostRepository)(nil)
