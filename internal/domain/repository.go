package domain

import "context"

// PostRepository is the gallery store: append-only creation and full reads.
type PostRepository interface {
	// Create persists a fully populated post.
	Create(ctx context.Context, post *Post) error
	// List returns every post, most recently created first.
	List(ctx context.Context) ([]Post, error)
}
