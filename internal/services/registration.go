package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventregistration/internal/domain"
	"eventregistration/internal/metrics"
)

type registrationService struct {
	tx             domain.Transactor
	eventRepo      domain.EventRepository
	regRepo        domain.RegistrationRepository
	notifier       domain.ConfirmationNotifier
	metrics        *metrics.Metrics
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewRegistrationService returns the seat accounting service. Every write runs inside
// tx with the owning event locked, and recomputes leftSeats from the live count.
// notifier and m may be nil.
func NewRegistrationService(
	tx domain.Transactor,
	eventRepo domain.EventRepository,
	regRepo domain.RegistrationRepository,
	notifier domain.ConfirmationNotifier,
	m *metrics.Metrics,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		tx:             tx,
		eventRepo:      eventRepo,
		regRepo:        regRepo,
		notifier:       notifier,
		metrics:        m,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, in *domain.RegistrationInput) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg := domain.NewRegistration(in.EventID, in.Name, in.Email, in.Mobile, in.Message, s.now().UTC())
	if err := domain.NewValidationError(reg.Validate()); err != nil {
		return nil, err
	}

	var event *domain.Event
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		e, err := s.eventRepo.GetForUpdate(ctx, reg.EventID)
		if err != nil {
			return err
		}
		count, err := s.regRepo.CountByEventID(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if domain.AvailableSeats(e.TotalSeats, count) == 0 {
			return domain.ErrSeatsExhausted
		}
		if err := s.regRepo.Create(ctx, reg); err != nil {
			return fmt.Errorf("create registration: %w", err)
		}
		e.LeftSeats = domain.AvailableSeats(e.TotalSeats, count+1)
		if err := s.eventRepo.Save(ctx, e); err != nil {
			return fmt.Errorf("update seats: %w", err)
		}
		event = e
		return nil
	})
	switch {
	case err == nil:
		s.metrics.Registration(metrics.RegistrationCreated)
	case errors.Is(err, domain.ErrSeatsExhausted):
		s.metrics.Registration(metrics.RegistrationExhausted)
		return nil, err
	case errors.Is(err, domain.ErrNotFound):
		s.metrics.Registration(metrics.RegistrationNotFound)
		return nil, err
	default:
		s.metrics.Registration(metrics.RegistrationError)
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Enqueue(&domain.ConfirmationEmailData{
			Name:       reg.Name,
			Email:      reg.Email,
			EventTitle: event.Title,
			EventDate:  event.Date,
			Time:       event.Time,
			Location:   event.Location,
			Message:    reg.Message,
		})
	}
	return reg, nil
}

func (s *registrationService) ListAll(ctx context.Context) ([]*domain.RegistrationWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.regRepo.List(ctx)
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.regRepo.ListByEventID(ctx, eventID)
}

func (s *registrationService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	restored := 0
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		reg, err := s.regRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		event, err := s.lockEvent(ctx, reg.EventID)
		if err != nil {
			return err
		}
		if err := s.regRepo.Delete(ctx, reg.ID); err != nil {
			return fmt.Errorf("delete registration: %w", err)
		}
		if event == nil {
			s.logger.InfoContext(ctx, "registration deleted for missing event", "registration_id", reg.ID, "event_id", reg.EventID)
			return nil
		}
		before := event.LeftSeats
		if err := s.reconcile(ctx, event); err != nil {
			return err
		}
		restored = event.LeftSeats - before
		return nil
	})
	if err != nil {
		return err
	}
	s.metrics.SeatsRestored(restored)
	return nil
}

func (s *registrationService) DeleteAllForEvent(ctx context.Context, eventID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var removed int
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.lockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		removed, err = s.regRepo.DeleteByEventID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}
		if event == nil {
			return nil
		}
		return s.reconcile(ctx, event)
	})
	if err != nil {
		return 0, err
	}
	s.metrics.SeatsRestored(removed)
	return removed, nil
}

// lockEvent locks the event row. A missing event yields (nil, nil).
func (s *registrationService) lockEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetForUpdate(ctx, eventID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock event: %w", err)
	}
	return event, nil
}

// reconcile recomputes leftSeats from the live count and saves event.
func (s *registrationService) reconcile(ctx context.Context, event *domain.Event) error {
	return recomputeSeats(ctx, s.eventRepo, s.regRepo, event)
}

func recomputeSeats(ctx context.Context, events domain.EventRepository, regs domain.RegistrationRepository, event *domain.Event) error {
	count, err := regs.CountByEventID(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	event.LeftSeats = domain.AvailableSeats(event.TotalSeats, count)
	if err := events.Save(ctx, event); err != nil {
		return fmt.Errorf("update seats: %w", err)
	}
	return nil
}
