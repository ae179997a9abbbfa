// Package memory is a process-local implementation of every repository port. It is used
// when DATA_STORE=memory and by tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

type lockedKey struct{}

// Store holds all records behind one mutex. WithTx holds the mutex for the whole
// callback, so a unit of work is serialized against every other write, and restores
// the previous state when the callback fails.
type Store struct {
	mu sync.Mutex

	events        map[string]*domain.Event
	registrations map[string]*domain.Registration
	admins        map[string]*domain.Admin
	contacts      map[string]*domain.ContactMessage
	feedback      map[string]*domain.Feedback
}

func NewStore() *Store {
	return &Store{
		events:        map[string]*domain.Event{},
		registrations: map[string]*domain.Registration{},
		admins:        map[string]*domain.Admin{},
		contacts:      map[string]*domain.ContactMessage{},
		feedback:      map[string]*domain.Feedback{},
	}
}

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if held(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, lockedKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type state struct {
	events        map[string]*domain.Event
	registrations map[string]*domain.Registration
	admins        map[string]*domain.Admin
	contacts      map[string]*domain.ContactMessage
	feedback      map[string]*domain.Feedback
}

func (s *Store) snapshot() state {
	return state{
		events:        cloneMap(s.events),
		registrations: cloneMap(s.registrations),
		admins:        cloneMap(s.admins),
		contacts:      cloneMap(s.contacts),
		feedback:      cloneMap(s.feedback),
	}
}

func (s *Store) restore(st state) {
	s.events = st.events
	s.registrations = st.registrations
	s.admins = st.admins
	s.contacts = st.contacts
	s.feedback = st.feedback
}

func cloneMap[T any](m map[string]*T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

func held(ctx context.Context) bool {
	_, ok := ctx.Value(lockedKey{}).(*Store)
	return ok
}

// lock acquires the mutex unless ctx already runs inside WithTx.
func (s *Store) lock(ctx context.Context) func() {
	if held(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Events returns the store as an EventRepository.
func (s *Store) Events() domain.EventRepository { return eventRepo{s} }

// Registrations returns the store as a RegistrationRepository.
func (s *Store) Registrations() domain.RegistrationRepository { return registrationRepo{s} }

// Admins returns the store as an AdminRepository.
func (s *Store) Admins() domain.AdminRepository { return adminRepo{s} }

// Contacts returns the store as a ContactRepository.
func (s *Store) Contacts() domain.ContactRepository { return contactRepo{s} }

// Feedback returns the store as a FeedbackRepository.
func (s *Store) Feedback() domain.FeedbackRepository { return feedbackRepo{s} }

func newID() string { return uuid.NewString() }

// sortedDesc orders items newest first by the time returned from at, breaking ties by id.
func sortedDesc[T any](items []T, at func(T) int64, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		ai, aj := at(items[i]), at(items[j])
		if ai != aj {
			return ai > aj
		}
		return id(items[i]) > id(items[j])
	})
}
