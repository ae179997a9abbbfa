package services

import (
	"context"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

type feedbackService struct {
	repo domain.FeedbackRepository
	now  func() time.Time
}

func NewFeedbackService(repo domain.FeedbackRepository) domain.FeedbackService {
	return &feedbackService{repo: repo, now: time.Now}
}

// Submit stores unverified feedback; an admin must verify it before it is listed publicly.
func (s *feedbackService) Submit(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	f := &domain.Feedback{
		Name:      strings.TrimSpace(fb.Name),
		Rating:    fb.Rating,
		Comment:   strings.TrimSpace(fb.Comment),
		CreatedAt: s.now().UTC(),
	}
	if err := domain.NewValidationError(f.Validate()); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *feedbackService) ListVerified(ctx context.Context) ([]*domain.Feedback, error) {
	return s.repo.List(ctx, true)
}

func (s *feedbackService) ListAll(ctx context.Context) ([]*domain.Feedback, error) {
	return s.repo.List(ctx, false)
}

func (s *feedbackService) Verify(ctx context.Context, id string) error {
	return s.repo.Verify(ctx, id)
}

func (s *feedbackService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
