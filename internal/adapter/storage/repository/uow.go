package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

// Save is the unit of work: within one transaction it persists every
// aggregate's state change under the optimistic version check and inserts
// one outbox row per pending domain event. Only after the commit succeeds
// are the in-memory pending lists cleared and versions bumped, so a failed
// transaction leaves both the database and the aggregates untouched.
func (r *Repository) Save(ctx context.Context, aggregates ...port.Aggregate) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, agg := range aggregates {
			var err error
			switch a := agg.(type) {
			case *domain.Order:
				err = r.saveOrderTx(ctx, tx, a)
			case *domain.Payment:
				err = r.savePaymentTx(ctx, tx, a)
			case *domain.PaymentMethod:
				err = r.savePaymentMethodTx(ctx, tx, a)
			default:
				err = fmt.Errorf("unsupported aggregate type %T", agg)
			}
			if err != nil {
				return err
			}

			for _, event := range agg.PendingEvents() {
				msg, err := domain.NewOutboxMessage(event)
				if err != nil {
					return err
				}
				if err := r.insertOutboxTx(ctx, tx, msg); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return mapPgError(err)
	}

	for _, agg := range aggregates {
		switch a := agg.(type) {
		case *domain.Order:
			a.Version++
		case *domain.Payment:
			a.Version++
		case *domain.PaymentMethod:
			a.Version++
		}
		agg.ClearEvents()
	}
	return nil
}

func (r *Repository) insertOutboxTx(ctx context.Context, tx pgx.Tx, msg *domain.OutboxMessage) error {
	statement := r.db.QueryBuilder.
		Insert("outbox_messages").
		Columns("id", "type", "content", "created_at", "scheduled_at", "attempts").
		Values(msg.ID, msg.Type, msg.Content, msg.CreatedAt, msg.ScheduledAt, msg.Attempts)

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}
