package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"storeflight/config"
	"storeflight/infras/kafka"
	"storeflight/infras/otel"
	notificationService "storeflight/internal/domains/notification/service"
	"storeflight/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Dispatcher drains the notification outbox on a fixed interval. One
// instance is expected per deployment. It owns the event publisher and
// closes it on Stop.
type Dispatcher struct {
	notification notificationService.Notification
	publisher    kafka.Client
	interval     time.Duration
	otel         otel.Otel

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewDispatcher(notification notificationService.Notification, publisher kafka.Client, cfg *config.Config, otel otel.Otel) *Dispatcher {
	interval := time.Duration(cfg.Outbox.PollSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &Dispatcher{
		notification: notification,
		publisher:    publisher,
		interval:     interval,
		otel:         otel,
	}
}

// Start runs the loop in the background until Stop is called or ctx ends.
// Calling Start on a running dispatcher does nothing.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}

	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})

	go d.run(ctx, d.done)
}

// Stop ends the loop and waits for an in-flight batch to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	if err := d.publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close event publisher")
	}
}

func (d *Dispatcher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", d.interval).Msg("outbox dispatcher started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("outbox dispatcher stopped")

			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

func (d *Dispatcher) tick(ctx context.Context) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".DispatchOutbox")
	defer scope.End()

	// keep the loop alive when a batch panics
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("outbox dispatch panicked: %v", p)
			scope.TraceError(err)
			log.Error().Err(err).Bytes("stack", debug.Stack()).Msg("outbox dispatcher recovered")
		}
	}()

	result, err := d.notification.DispatchPending(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to dispatch outbox")

		return
	}

	if result.Claimed == 0 {
		return
	}

	scope.SetAttributes(map[string]any{
		"outbox.claimed": result.Claimed,
		"outbox.sent":    result.Sent,
		"outbox.retried": result.Retried,
		"outbox.failed":  result.Failed,
	})

	log.Info().
		Int("claimed", result.Claimed).
		Int("sent", result.Sent).
		Int("retried", result.Retried).
		Int("failed", result.Failed).
		Msg("outbox batch dispatched")
}
