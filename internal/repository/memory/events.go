package memory

import (
	"context"

	"eventregistration/internal/domain"
)

type eventRepo struct{ s *Store }

func (r eventRepo) Create(ctx context.Context, e *domain.Event) error {
	defer r.s.lock(ctx)()
	e.ID = newID()
	cp := *e
	r.s.events[e.ID] = &cp
	return nil
}

func (r eventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	defer r.s.lock(ctx)()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

// GetForUpdate is GetByID; the row lock is the store mutex held by WithTx.
func (r eventRepo) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.GetByID(ctx, id)
}

func (r eventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		cp := *e
		out = append(out, &cp)
	}
	sortedDesc(out,
		func(e *domain.Event) int64 { return e.CreatedAt.UnixNano() },
		func(e *domain.Event) string { return e.ID })
	return out, nil
}

func (r eventRepo) Save(ctx context.Context, e *domain.Event) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	cp.BannerURL = ""
	r.s.events[e.ID] = &cp
	return nil
}

func (r eventRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}
