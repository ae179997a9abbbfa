package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
	"eventregistration/internal/metrics"
)

// scriptedEmail fails the first failures calls, then succeeds.
type scriptedEmail struct {
	failures int32
	calls    atomic.Int32
	block    chan struct{}

	mu   sync.Mutex
	sent []string
}

func (s *scriptedEmail) SendConfirmationEmail(ctx context.Context, data *domain.ConfirmationEmailData) error {
	if s.block != nil {
		<-s.block
	}
	n := s.calls.Add(1)
	if n <= s.failures {
		return errors.New("smtp unavailable")
	}
	s.mu.Lock()
	s.sent = append(s.sent, data.Email)
	s.mu.Unlock()
	return nil
}

func (s *scriptedEmail) sentTo() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func TestNotifier_RetriesUntilSuccess(t *testing.T) {
	email := &scriptedEmail{failures: 2}
	n := NewNotifier(email, NotifierOptions{Workers: 1, MaxAttempts: 3, RetryDelay: time.Millisecond}, nil, testLogger)
	n.Start()

	n.Enqueue(&domain.ConfirmationEmailData{Email: "ada@example.com"})
	require.NoError(t, n.Close(context.Background()))

	assert.Equal(t, int32(3), email.calls.Load())
	assert.Equal(t, []string{"ada@example.com"}, email.sentTo())
}

func TestNotifier_GivesUpAfterMaxAttempts(t *testing.T) {
	email := &scriptedEmail{failures: 100}
	m := metrics.New(prometheus.NewRegistry())
	n := NewNotifier(email, NotifierOptions{Workers: 1, MaxAttempts: 3, RetryDelay: time.Millisecond}, m, testLogger)
	n.Start()

	n.Enqueue(&domain.ConfirmationEmailData{Email: "ada@example.com"})
	require.NoError(t, n.Close(context.Background()))

	assert.Equal(t, int32(3), email.calls.Load())
	assert.Empty(t, email.sentTo())
}

func TestNotifier_EnqueueNeverBlocksAndDropsWhenFull(t *testing.T) {
	email := &scriptedEmail{block: make(chan struct{})}
	n := NewNotifier(email, NotifierOptions{Workers: 1, QueueSize: 2}, nil, testLogger)
	n.Start()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			n.Enqueue(&domain.ConfirmationEmailData{Email: "p@example.com"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked")
	}

	close(email.block)
	require.NoError(t, n.Close(context.Background()))
	// One job was in flight, two were queued; the rest were dropped.
	assert.LessOrEqual(t, len(email.sentTo()), 3)
	assert.GreaterOrEqual(t, len(email.sentTo()), 2)
}

func TestNotifier_CloseDrainsQueue(t *testing.T) {
	email := &scriptedEmail{}
	n := NewNotifier(email, NotifierOptions{Workers: 2, QueueSize: 10}, nil, testLogger)
	for i := 0; i < 5; i++ {
		n.Enqueue(&domain.ConfirmationEmailData{Email: "p@example.com"})
	}
	n.Start()
	require.NoError(t, n.Close(context.Background()))
	assert.Len(t, email.sentTo(), 5)

	// Enqueue after Close is dropped without panicking.
	n.Enqueue(&domain.ConfirmationEmailData{Email: "late@example.com"})
	assert.NoError(t, n.Close(context.Background()))
}

func TestNotifier_CloseDeadlineAbandonsRetries(t *testing.T) {
	email := &scriptedEmail{failures: 100}
	n := NewNotifier(email, NotifierOptions{Workers: 1, MaxAttempts: 3, RetryDelay: time.Hour}, nil, testLogger)
	n.Start()
	n.Enqueue(&domain.ConfirmationEmailData{Email: "ada@example.com"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := n.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), email.calls.Load())
}

// slowEmail takes delay per send unless ctx is canceled first.
type slowEmail struct {
	delay time.Duration
	calls atomic.Int32
}

func (s *slowEmail) SendConfirmationEmail(ctx context.Context, _ *domain.ConfirmationEmailData) error {
	s.calls.Add(1)
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestNotifier_CloseDeadlineAbandonsQueuedJobs(t *testing.T) {
	email := &slowEmail{delay: 5 * time.Second}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	n := NewNotifier(email, NotifierOptions{Workers: 1, QueueSize: 20, SendTimeout: time.Minute}, m, testLogger)
	for i := 0; i < 20; i++ {
		n.Enqueue(&domain.ConfirmationEmailData{Email: "p@example.com"})
	}
	n.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := n.Close(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.LessOrEqual(t, email.calls.Load(), int32(1))

	families, err := reg.Gather()
	require.NoError(t, err)
	var failed float64
	for _, f := range families {
		if f.GetName() != "eventreg_confirmation_emails_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "result" && l.GetValue() == metrics.EmailFailed {
					failed += metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(20), failed)
}

func TestNotifierOptions_Defaults(t *testing.T) {
	o := NotifierOptions{}.withDefaults()
	assert.Equal(t, 100, o.QueueSize)
	assert.Equal(t, 2, o.Workers)
	assert.Equal(t, 3, o.MaxAttempts)
	assert.Equal(t, 10*time.Second, o.SendTimeout)
}
