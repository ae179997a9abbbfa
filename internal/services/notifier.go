package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventregistration/internal/domain"
	"eventregistration/internal/metrics"
)

// NotifierOptions bounds the confirmation email queue. Zero values take the defaults.
type NotifierOptions struct {
	QueueSize   int
	Workers     int
	MaxAttempts int
	RetryDelay  time.Duration
	SendTimeout time.Duration
}

func (o NotifierOptions) withDefaults() NotifierOptions {
	if o.QueueSize <= 0 {
		o.QueueSize = 100
	}
	if o.Workers <= 0 {
		o.Workers = 2
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.RetryDelay < 0 {
		o.RetryDelay = 0
	}
	if o.SendTimeout <= 0 {
		o.SendTimeout = 10 * time.Second
	}
	return o
}

// Notifier delivers confirmation emails off the request path. Jobs wait in a bounded
// queue; a full queue drops the job.
type Notifier struct {
	email   domain.EmailService
	opts    NotifierOptions
	metrics *metrics.Metrics
	logger  *slog.Logger

	jobs chan *domain.ConfirmationEmailData
	wg   sync.WaitGroup

	// stop is canceled when the shutdown budget runs out; sends in flight and
	// jobs still queued are abandoned.
	stop     context.Context
	stopSend context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

var _ domain.ConfirmationNotifier = (*Notifier)(nil)

func NewNotifier(email domain.EmailService, opts NotifierOptions, m *metrics.Metrics, logger *slog.Logger) *Notifier {
	opts = opts.withDefaults()
	stop, stopSend := context.WithCancel(context.Background())
	return &Notifier{
		email:   email,
		opts:    opts,
		metrics: m,
		logger:  logger,
		jobs:    make(chan *domain.ConfirmationEmailData, opts.QueueSize),
		stop:     stop,
		stopSend: stopSend,
	}
}

// Start launches the workers.
func (n *Notifier) Start() {
	for i := 0; i < n.opts.Workers; i++ {
		n.wg.Add(1)
		go n.work()
	}
}

// Enqueue never blocks.
func (n *Notifier) Enqueue(data *domain.ConfirmationEmailData) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		n.metrics.ConfirmationEmail(metrics.EmailDropped)
		n.logger.Error("confirmation email dropped: notifier closed", "to", data.Email)
		return
	}
	select {
	case n.jobs <- data:
	default:
		n.metrics.ConfirmationEmail(metrics.EmailDropped)
		n.logger.Error("confirmation email dropped: queue full", "to", data.Email, "queue_size", n.opts.QueueSize)
	}
}

// Close stops accepting jobs, lets the workers drain what is queued and waits for them.
// Once ctx is done, the send in flight is canceled and the remaining jobs are
// counted as failed without being attempted.
func (n *Notifier) Close(ctx context.Context) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.jobs)
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		n.stopSend()
		<-done
		return ctx.Err()
	}
}

func (n *Notifier) work() {
	defer n.wg.Done()
	for data := range n.jobs {
		if n.stop.Err() != nil {
			n.abandon(data, 0)
			continue
		}
		n.deliver(data)
	}
}

func (n *Notifier) abandon(data *domain.ConfirmationEmailData, attempts int) {
	n.metrics.ConfirmationEmail(metrics.EmailFailed)
	n.logger.Error("confirmation email abandoned on shutdown", "to", data.Email, "attempts", attempts)
}

func (n *Notifier) deliver(data *domain.ConfirmationEmailData) {
	for attempt := 1; attempt <= n.opts.MaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(n.stop, n.opts.SendTimeout)
		err := n.email.SendConfirmationEmail(ctx, data)
		cancel()
		if err == nil {
			n.metrics.ConfirmationEmail(metrics.EmailSent)
			return
		}
		if n.stop.Err() != nil {
			n.abandon(data, attempt)
			return
		}
		if attempt == n.opts.MaxAttempts {
			n.metrics.ConfirmationEmail(metrics.EmailFailed)
			n.logger.Error("confirmation email failed", "to", data.Email, "attempts", attempt, "error", err)
			return
		}
		n.logger.Warn("confirmation email attempt failed", "to", data.Email, "attempt", attempt, "error", err)
		select {
		case <-time.After(n.opts.RetryDelay):
		case <-n.stop.Done():
			n.abandon(data, attempt)
			return
		}
	}
}
