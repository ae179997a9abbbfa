package memory

import (
	"context"

	"eventregistration/internal/domain"
)

type contactRepo struct{ s *Store }

func (r contactRepo) Create(ctx context.Context, m *domain.ContactMessage) error {
	defer r.s.lock(ctx)()
	m.ID = newID()
	cp := *m
	r.s.contacts[m.ID] = &cp
	return nil
}

func (r contactRepo) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	defer r.s.lock(ctx)()
	out := make([]*domain.ContactMessage, 0, len(r.s.contacts))
	for _, m := range r.s.contacts {
		cp := *m
		out = append(out, &cp)
	}
	sortedDesc(out,
		func(m *domain.ContactMessage) int64 { return m.CreatedAt.UnixNano() },
		func(m *domain.ContactMessage) string { return m.ID })
	return out, nil
}

func (r contactRepo) MarkRead(ctx context.Context, id string) (*domain.ContactMessage, error) {
	defer r.s.lock(ctx)()
	m, ok := r.s.contacts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.Read = true
	cp := *m
	return &cp, nil
}

func (r contactRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.contacts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.contacts, id)
	return nil
}

type feedbackRepo struct{ s *Store }

func (r feedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	defer r.s.lock(ctx)()
	f.ID = newID()
	cp := *f
	r.s.feedback[f.ID] = &cp
	return nil
}

func (r feedbackRepo) List(ctx context.Context, verifiedOnly bool) ([]*domain.Feedback, error) {
	defer r.s.lock(ctx)()
	out := []*domain.Feedback{}
	for _, f := range r.s.feedback {
		if verifiedOnly && !f.Verified {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sortedDesc(out,
		func(f *domain.Feedback) int64 { return f.CreatedAt.UnixNano() },
		func(f *domain.Feedback) string { return f.ID })
	return out, nil
}

func (r feedbackRepo) Verify(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	f, ok := r.s.feedback[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.Verified = true
	return nil
}

func (r feedbackRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.feedback[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.feedback, id)
	return nil
}
