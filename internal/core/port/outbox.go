package port

import (
	"context"
	"time"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

// OutboxStore is the dispatcher's view of the outbox table. ListDue claims
// a bounded batch of eligible rows oldest first; concurrent dispatchers
// skip rows claimed by another instance.
//
//go:generate mockgen -source=outbox.go -destination=mock/outbox.go -package=mock
type OutboxStore interface {
	ListDue(ctx context.Context, limit int, now time.Time) ([]*domain.OutboxMessage, error)
	Update(ctx context.Context, msg *domain.OutboxMessage) error
}
