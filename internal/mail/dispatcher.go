package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	queueDepth    = 64
	sendTimeout   = 30 * time.Second
	sweepInterval = 5 * time.Minute
)

// Dispatcher moves contact messages from the request path to a worker
// goroutine, so a slow or unreachable relay never stalls a request.
// Handlers enqueue a message id and return immediately; the worker
// loads the row, sends it, and records the outcome. A periodic sweep
// re-delivers anything still pending, which also resumes work left
// over from a previous run.
type Dispatcher struct {
	repo   repository.ContactRepository
	sender Sender

	jobs   chan uint
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher returns an unstarted Dispatcher.
func NewDispatcher(repo repository.ContactRepository, sender Sender) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		sender: sender,
		jobs:   make(chan uint, queueDepth),
	}
}

// Start launches the delivery worker. It sweeps pending rows once at
// startup before consuming new work.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		d.sweep(ctx)

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case id := <-d.jobs:
				d.deliver(ctx, id)
			case <-ticker.C:
				d.sweep(ctx)
			}
		}
	}()
}

// Enqueue hands a message id to the worker. It never blocks; when the
// queue is full the message stays pending and the next sweep picks it up.
func (d *Dispatcher) Enqueue(id uint) bool {
	select {
	case d.jobs <- id:
		return true
	default:
		middleware.Logger.Warn("mail queue full, deferring to sweep",
			slog.Any("contact_id", id))
		return false
	}
}

// Shutdown stops the worker and waits for in-flight delivery to finish
// or the context to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) sweep(ctx context.Context) {
	pending, err := d.repo.ListPending(ctx)
	if err != nil {
		middleware.Logger.Error("mail sweep failed", slog.String("error", err.Error()))
		return
	}
	for _, msg := range pending {
		if ctx.Err() != nil {
			return
		}
		d.deliver(ctx, msg.ID)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id uint) {
	msg, err := d.repo.GetByID(ctx, id)
	if err != nil {
		middleware.Logger.Error("mail delivery lookup failed",
			slog.Any("contact_id", id), slog.String("error", err.Error()))
		return
	}
	if msg.Status != models.ContactPending {
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, msg); err != nil {
		middleware.MailDeliveries.WithLabelValues("failed").Inc()
		middleware.Logger.Error("mail delivery failed",
			slog.Any("contact_id", id), slog.String("error", err.Error()))
		if markErr := d.repo.MarkFailed(ctx, id, err.Error()); markErr != nil {
			middleware.Logger.Error("failed to record delivery failure",
				slog.Any("contact_id", id), slog.String("error", markErr.Error()))
		}
		return
	}

	middleware.MailDeliveries.WithLabelValues("sent").Inc()
	if err := d.repo.MarkSent(ctx, id); err != nil {
		middleware.Logger.Error("failed to record delivery success",
			slog.Any("contact_id", id), slog.String("error", err.Error()))
	}
}
