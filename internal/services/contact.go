package services

import (
	"context"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

type contactService struct {
	repo domain.ContactRepository
	now  func() time.Time
}

func NewContactService(repo domain.ContactRepository) domain.ContactService {
	return &contactService{repo: repo, now: time.Now}
}

func (s *contactService) Submit(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{
		Name:      strings.TrimSpace(msg.Name),
		Email:     strings.TrimSpace(strings.ToLower(msg.Email)),
		Mobile:    strings.TrimSpace(msg.Mobile),
		Message:   strings.TrimSpace(msg.Message),
		CreatedAt: s.now().UTC(),
	}
	if err := domain.NewValidationError(m.Validate()); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *contactService) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.repo.List(ctx)
}

func (s *contactService) MarkRead(ctx context.Context, id string) (*domain.ContactMessage, error) {
	return s.repo.MarkRead(ctx, id)
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
