package memory

import (
	"context"

	"eventregistration/internal/domain"
)

type registrationRepo struct{ s *Store }

func (r registrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	defer r.s.lock(ctx)()
	reg.ID = newID()
	cp := *reg
	r.s.registrations[reg.ID] = &cp
	return nil
}

func (r registrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	defer r.s.lock(ctx)()
	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

func (r registrationRepo) List(ctx context.Context) ([]*domain.RegistrationWithEvent, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.RegistrationWithEvent, 0, len(r.s.registrations))
	for _, reg := range r.s.registrations {
		cp := *reg
		item := &domain.RegistrationWithEvent{Registration: &cp}
		if e, ok := r.s.events[reg.EventID]; ok {
			item.EventTitle = e.Title
		}
		out = append(out, item)
	}
	sortedDesc(out,
		func(r *domain.RegistrationWithEvent) int64 { return r.RegisteredAt.UnixNano() },
		func(r *domain.RegistrationWithEvent) string { return r.ID })
	return out, nil
}

func (r registrationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	defer r.s.lock(ctx)()
	out := []*domain.Registration{}
	for _, reg := range r.s.registrations {
		if reg.EventID == eventID {
			cp := *reg
			out = append(out, &cp)
		}
	}
	sortedDesc(out,
		func(r *domain.Registration) int64 { return r.RegisteredAt.UnixNano() },
		func(r *domain.Registration) string { return r.ID })
	return out, nil
}

func (r registrationRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	defer r.s.lock(ctx)()
	n := 0
	for _, reg := range r.s.registrations {
		if reg.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (r registrationRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.registrations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.registrations, id)
	return nil
}

func (r registrationRepo) DeleteByEventID(ctx context.Context, eventID string) (int, error) {
	defer r.s.lock(ctx)()
	n := 0
	for id, reg := range r.s.registrations {
		if reg.EventID == eventID {
			delete(r.s.registrations, id)
			n++
		}
	}
	return n, nil
}
