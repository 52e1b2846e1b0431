package outbox

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

const maxBackoff = time.Hour

// Dispatcher delivers outbox messages to registered handlers with
// at-least-once semantics. It polls a bounded batch of due messages oldest
// first, invokes all handlers for the message type in sequence and records
// the outcome on the row. A failing handler leaves the message pending: it
// is rescheduled with exponential backoff and dead-lettered once the
// attempt ceiling is reached.
type Dispatcher struct {
	store       port.OutboxStore
	registry    *Registry
	logger      *zap.Logger
	interval    time.Duration
	batchSize   int
	maxAttempts int
	backoffBase time.Duration

	now func() time.Time
}

func NewDispatcher(store port.OutboxStore, registry *Registry,
	interval time.Duration, batchSize, maxAttempts int, backoffBase time.Duration,
	logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:       store,
		registry:    registry,
		logger:      logger,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		now:         time.Now,
	}
}

// Start runs the polling loop until ctx is cancelled. Cancellation is
// observed between batches and between individual messages, so an
// in-flight message is either fully handled or left unprocessed.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("outbox dispatcher started",
		zap.Duration("interval", d.interval), zap.Int("batch", d.batchSize))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("outbox dispatcher stopped")
			return
		case <-ticker.C:
			if err := d.ProcessBatch(ctx); err != nil {
				d.logger.Error("outbox batch failed", zap.Error(err))
			}
		}
	}
}

// ProcessBatch runs one poll cycle. It is the explicit trigger used by the
// admin endpoint and tests.
func (d *Dispatcher) ProcessBatch(ctx context.Context) error {
	messages, err := d.store.ListDue(ctx, d.batchSize, d.now())
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.processMessage(ctx, msg)
	}

	return nil
}

// processMessage swallows handler errors at the message level: one bad
// message must not halt the batch or crash the worker.
func (d *Dispatcher) processMessage(ctx context.Context, msg *domain.OutboxMessage) {
	event, err := d.registry.Decode(msg.Type, msg.Content)
	if err != nil {
		d.logger.Error("decode outbox message",
			zap.String("message", msg.ID.String()), zap.String("type", msg.Type), zap.Error(err))
		d.fail(ctx, msg, err)
		return
	}

	for _, h := range d.registry.HandlersFor(msg.Type) {
		if ctx.Err() != nil {
			return
		}
		if err := h.Handle(ctx, event); err != nil {
			d.logger.Error("outbox handler failed",
				zap.String("message", msg.ID.String()), zap.String("type", msg.Type), zap.Error(err))
			d.fail(ctx, msg, err)
			return
		}
	}

	msg.MarkProcessed(d.now())
	if err := d.store.Update(ctx, msg); err != nil {
		// The message stays pending and will be redelivered; handlers are
		// idempotent under at-least-once.
		d.logger.Error("mark outbox message processed",
			zap.String("message", msg.ID.String()), zap.Error(err))
	}
}

func (d *Dispatcher) fail(ctx context.Context, msg *domain.OutboxMessage, cause error) {
	now := d.now()
	if msg.Attempts+1 >= d.maxAttempts {
		msg.DeadLetter(cause.Error(), now)
		d.logger.Warn("outbox message dead-lettered",
			zap.String("message", msg.ID.String()), zap.String("type", msg.Type),
			zap.Int("attempts", msg.Attempts))
	} else {
		msg.MarkFailed(cause.Error(), now.Add(d.backoff(msg.Attempts)))
	}

	if err := d.store.Update(ctx, msg); err != nil {
		d.logger.Error("record outbox failure",
			zap.String("message", msg.ID.String()), zap.Error(err))
	}
}

func (d *Dispatcher) backoff(attempts int) time.Duration {
	delay := d.backoffBase
	for i := 0; i < attempts; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
