package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventregistration/internal/domain"
)

type eventService struct {
	tx             domain.Transactor
	eventRepo      domain.EventRepository
	regRepo        domain.RegistrationRepository
	banners        domain.BannerStore
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns an EventService. Capacity edits recompute leftSeats from the
// live registration count under the event lock.
func NewEventService(
	tx domain.Transactor,
	eventRepo domain.EventRepository,
	regRepo domain.RegistrationRepository,
	banners domain.BannerStore,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		tx:             tx,
		eventRepo:      eventRepo,
		regRepo:        regRepo,
		banners:        banners,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in *domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event := domain.NewEvent(in.Title, in.Date, in.Time, in.Location, in.TotalSeats, s.now().UTC())
	event.Tags = in.Tags
	event.Description = in.Description
	event.Highlights = in.Highlights
	event.Organizer = in.Organizer
	if err := domain.NewValidationError(event.Validate()); err != nil {
		return nil, err
	}

	if in.Banner != nil {
		key, err := s.banners.Save(ctx, in.Banner)
		if err != nil {
			return nil, err
		}
		event.BannerPath = key
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.removeBanner(ctx, event.BannerPath)
		return nil, fmt.Errorf("create event: %w", err)
	}
	return s.withURL(event), nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withURL(event), nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		s.withURL(e)
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, edit *domain.EventEdit) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if edit.Update.TotalSeats != nil && *edit.Update.TotalSeats < 0 {
		return nil, domain.NewValidationError([]string{"totalSeats must be zero or greater"})
	}

	// The upload happens before the lock is taken.
	var newKey string
	if edit.Banner != nil {
		key, err := s.banners.Save(ctx, edit.Banner)
		if err != nil {
			return nil, err
		}
		newKey = key
	}

	var event *domain.Event
	var oldKey string
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		e, err := s.eventRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		oldKey = e.BannerPath
		edit.Update.Apply(e)
		switch {
		case newKey != "":
			e.BannerPath = newKey
		case edit.RemoveBanner:
			e.BannerPath = ""
		}
		if err := domain.NewValidationError(e.Validate()); err != nil {
			return err
		}
		if edit.Update.TotalSeats != nil {
			if err := recomputeSeats(ctx, s.eventRepo, s.regRepo, e); err != nil {
				return err
			}
		} else if err := s.eventRepo.Save(ctx, e); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		event = e
		return nil
	})
	if err != nil {
		s.removeBanner(ctx, newKey)
		return nil, err
	}

	if oldKey != "" && oldKey != event.BannerPath {
		s.removeBanner(ctx, oldKey)
	}
	return s.withURL(event), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var bannerKey string
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		e, err := s.eventRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		bannerKey = e.BannerPath
		return s.eventRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.removeBanner(ctx, bannerKey)
	return nil
}

// removeBanner deletes an asset best-effort; failures are logged only.
func (s *eventService) removeBanner(ctx context.Context, key string) {
	if key == "" || s.banners == nil {
		return
	}
	if err := s.banners.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.WarnContext(ctx, "failed to delete banner", "key", key, "error", err)
	}
}

func (s *eventService) withURL(e *domain.Event) *domain.Event {
	if s.banners != nil && e.BannerPath != "" {
		e.BannerURL = s.banners.URL(e.BannerPath)
	}
	return e
}
