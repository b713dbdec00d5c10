package repo

import (
	"context"
	"fmt"

	"artgallery/internal/domain"
	"artgallery/internal/infra"
	"artgallery/internal/sqlinline"
)

// PostRepositoryPG implements domain.PostRepository using PostgreSQL.
type PostRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewPostRepository constructs a repository over a marker-aware executor
// (normally an *infra.SQLRunner wrapping the pgx pool).
func NewPostRepository(sql infra.SQLExecutor) *PostRepositoryPG {
	return &PostRepositoryPG{sql: sql}
}

// Create inserts a single post row.
func (r *PostRepositoryPG) Create(ctx context.Context, post *domain.Post) error {
	if _, err := r.sql.Exec(ctx, sqlinline.QInsertPost, post.ID, post.Name, post.Prompt, post.Photo, post.CreatedAt); err != nil {
		return fmt.Errorf("%w: insert post: %v", domain.ErrPersistence, err)
	}
	return nil
}

// List returns the full gallery, newest first.
func (r *PostRepositoryPG) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPosts)
	if err != nil {
		return nil, fmt.Errorf("%w: list posts: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Name, &p.Prompt, &p.Photo, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan post: %v", domain.ErrPersistence, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list posts: %v", domain.ErrPersistence, err)
	}
	return posts, nil
}

var _ domain.PostRepository = (*PostRepositoryPG)(nil)
