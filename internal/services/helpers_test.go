package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
	"eventregistration/internal/repository/memory"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeNotifier records enqueued confirmation emails.
type fakeNotifier struct {
	mu   sync.Mutex
	jobs []*domain.ConfirmationEmailData
}

func (f *fakeNotifier) Enqueue(data *domain.ConfirmationEmailData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, data)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

// fakeBannerStore keeps banner keys in a map.
type fakeBannerStore struct {
	mu      sync.Mutex
	next    int
	saved   map[string]bool
	deleted []string
	saveErr error
}

func newFakeBannerStore() *fakeBannerStore {
	return &fakeBannerStore{saved: map[string]bool{}}
}

func (f *fakeBannerStore) Save(_ context.Context, upload *domain.BannerUpload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.next++
	key := fmt.Sprintf("banners/%d-%s", f.next, upload.Filename)
	f.saved[key] = true
	return key, nil
}

func (f *fakeBannerStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBannerStore) URL(key string) string { return "https://cdn.test/" + key }

// failingEvents wraps an EventRepository and fails Save.
type failingEvents struct {
	domain.EventRepository
	err error
}

func (f failingEvents) Save(context.Context, *domain.Event) error { return f.err }

var errStorage = errors.New("connection reset")

type fixture struct {
	store    *memory.Store
	notifier *fakeNotifier
	banners  *fakeBannerStore
	regs     domain.RegistrationService
	events   domain.EventService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	n := &fakeNotifier{}
	b := newFakeBannerStore()
	return &fixture{
		store:    store,
		notifier: n,
		banners:  b,
		regs:     NewRegistrationService(store, store.Events(), store.Registrations(), n, nil, testLogger, 5*time.Second),
		events:   NewEventService(store, store.Events(), store.Registrations(), b, testLogger, 5*time.Second),
	}
}

func (f *fixture) createEvent(t *testing.T, seats int) *domain.Event {
	t.Helper()
	e, err := f.events.CreateEvent(context.Background(), &domain.EventInput{
		Title: "Tech Summit", Date: "2025-08-01", Time: "10:00 AM", Location: "Patna", TotalSeats: seats,
	})
	require.NoError(t, err)
	return e
}

func (f *fixture) register(t *testing.T, eventID, name string) (*domain.Registration, error) {
	t.Helper()
	return f.regs.Register(context.Background(), &domain.RegistrationInput{
		Name: name, Email: name + "@example.com", Mobile: "9999999999", EventID: eventID,
	})
}

func (f *fixture) leftSeats(t *testing.T, eventID string) int {
	t.Helper()
	e, err := f.store.Events().GetByID(context.Background(), eventID)
	require.NoError(t, err)
	return e.LeftSeats
}

func (f *fixture) liveCount(t *testing.T, eventID string) int {
	t.Helper()
	n, err := f.store.Registrations().CountByEventID(context.Background(), eventID)
	require.NoError(t, err)
	return n
}

func pngBanner(name string) *domain.BannerUpload {
	return &domain.BannerUpload{Filename: name, ContentType: "image/png", Body: bytes.NewReader([]byte("png"))}
}
