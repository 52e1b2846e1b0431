package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

// ListDue returns a bounded batch of dispatchable messages, oldest
// scheduled first. FOR UPDATE SKIP LOCKED keeps concurrent pollers from
// claiming the same rows while this transaction is open; the locks are
// gone once it commits, so overlapping polls can still redeliver a
// message. Handlers stay idempotent under at-least-once for exactly this
// reason.
func (r *Repository) ListDue(ctx context.Context, limit int, now time.Time) ([]*domain.OutboxMessage, error) {
	const query = `
		SELECT id, type, content, created_at, scheduled_at,
		       processed_at, COALESCE(error, ''), attempts, dead_lettered_at
		FROM outbox_messages
		WHERE processed_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND scheduled_at <= $1
		ORDER BY scheduled_at ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED`

	var messages []*domain.OutboxMessage

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, now, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			msg := domain.OutboxMessage{}
			err := rows.Scan(
				&msg.ID,
				&msg.Type,
				&msg.Content,
				&msg.CreatedAt,
				&msg.ScheduledAt,
				&msg.ProcessedAt,
				&msg.Error,
				&msg.Attempts,
				&msg.DeadLetteredAt,
			)
			if err != nil {
				return err
			}
			messages = append(messages, &msg)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// Update persists the dispatcher's bookkeeping for one message. Only the
// dispatcher touches these columns; the write path is append-only.
func (r *Repository) Update(ctx context.Context, msg *domain.OutboxMessage) error {
	statement := r.db.QueryBuilder.
		Update("outbox_messages").
		Set("scheduled_at", msg.ScheduledAt).
		Set("processed_at", msg.ProcessedAt).
		Set("error", nullable(msg.Error)).
		Set("attempts", msg.Attempts).
		Set("dead_lettered_at", msg.DeadLetteredAt).
		Where("id = ?", msg.ID)

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
