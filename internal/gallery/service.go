package gallery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"artgallery/internal/domain"
	"artgallery/internal/infra"
	"artgallery/internal/metrics"
)

// Service publishes and lists gallery posts. Creation is not deduplicated:
// publishing the same draft twice yields two posts with distinct ids.
type Service struct {
	repo   domain.PostRepository
	logger infra.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(repo domain.PostRepository, logger infra.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Create validates the draft before touching the repository.
func (s *Service) Create(ctx context.Context, draft domain.PostDraft) (*domain.Post, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	d := draft.Normalize()
	post := &domain.Post{
		ID:        s.newID(),
		Name:      d.Name,
		Prompt:    d.Prompt,
		Photo:     d.Photo,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error().Err(err).Msg("gallery: create post failed")
		return nil, err
	}
	metrics.RecordPostCreated()
	s.logger.Info().Str("post_id", post.ID).Str("name", post.Name).Msg("gallery: post published")
	return post, nil
}

// List returns the full gallery, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("gallery: list posts failed")
		return nil, err
	}
	return posts, nil
}
