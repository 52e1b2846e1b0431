package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

var paymentColumns = []string{
	"id", "order_id", "user_id", "amount", "currency", "method_type", "provider",
	"status", "COALESCE(external_ref, '')", "COALESCE(transaction_id, '')",
	"COALESCE(error_message, '')", "metadata", "version", "processed_at",
	"created_at", "updated_at",
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	payment := domain.Payment{}
	err := row.Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.UserID,
		&payment.Amount,
		&payment.Currency,
		&payment.MethodType,
		&payment.Provider,
		&payment.Status,
		&payment.ExternalRef,
		&payment.TransactionID,
		&payment.ErrorMessage,
		&payment.Metadata,
		&payment.Version,
		&payment.ProcessedAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) ReadPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	statement := r.db.QueryBuilder.
		Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"id": paymentID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanPayment(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) ReadPaymentByExternalRef(ctx context.Context, externalRef string) (*domain.Payment, error) {
	statement := r.db.QueryBuilder.
		Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"external_ref": externalRef})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanPayment(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) ListPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]*domain.Payment, error) {
	statement := r.db.QueryBuilder.
		Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) savePaymentTx(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error {
	if payment.Version == 0 {
		statement := r.db.QueryBuilder.
			Insert("payments").
			Columns("id", "order_id", "user_id", "amount", "currency", "method_type",
				"provider", "status", "external_ref", "transaction_id", "error_message",
				"metadata", "version", "processed_at", "created_at", "updated_at").
			Values(payment.ID, payment.OrderID, payment.UserID, payment.Amount, payment.Currency,
				payment.MethodType, payment.Provider, payment.Status, nullable(payment.ExternalRef),
				nullable(payment.TransactionID), nullable(payment.ErrorMessage),
				payment.Metadata, payment.Version+1, payment.ProcessedAt,
				payment.CreatedAt, payment.UpdatedAt)

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	}

	statement := r.db.QueryBuilder.
		Update("payments").
		Set("status", payment.Status).
		Set("transaction_id", nullable(payment.TransactionID)).
		Set("error_message", nullable(payment.ErrorMessage)).
		Set("metadata", payment.Metadata).
		Set("version", payment.Version+1).
		Set("processed_at", payment.ProcessedAt).
		Set("updated_at", payment.UpdatedAt).
		Where(sq.Eq{"id": payment.ID, "version": payment.Version})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

var paymentMethodColumns = []string{
	"id", "user_id", "method_type", "provider", "provider_token",
	"COALESCE(card_brand, '')", "COALESCE(card_last4, '')", "COALESCE(paypal_email, '')",
	"is_default", "is_active", "version", "created_at",
}

func scanPaymentMethod(row pgx.Row) (*domain.PaymentMethod, error) {
	method := domain.PaymentMethod{}
	err := row.Scan(
		&method.ID,
		&method.UserID,
		&method.MethodType,
		&method.Provider,
		&method.ProviderToken,
		&method.CardBrand,
		&method.CardLast4,
		&method.PayPalEmail,
		&method.IsDefault,
		&method.IsActive,
		&method.Version,
		&method.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &method, nil
}

func (r *Repository) ReadPaymentMethod(ctx context.Context, methodID uuid.UUID) (*domain.PaymentMethod, error) {
	statement := r.db.QueryBuilder.
		Select(paymentMethodColumns...).
		From("payment_methods").
		Where(sq.Eq{"id": methodID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanPaymentMethod(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) ListPaymentMethodsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PaymentMethod, error) {
	statement := r.db.QueryBuilder.
		Select(paymentMethodColumns...).
		From("payment_methods").
		Where(sq.Eq{"user_id": userID, "is_active": true}).
		OrderBy("created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.PaymentMethod, 0)
	for rows.Next() {
		method, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, method)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) savePaymentMethodTx(ctx context.Context, tx pgx.Tx, method *domain.PaymentMethod) error {
	if method.Version == 0 {
		statement := r.db.QueryBuilder.
			Insert("payment_methods").
			Columns("id", "user_id", "method_type", "provider", "provider_token",
				"card_brand", "card_last4", "paypal_email", "is_default", "is_active",
				"version", "created_at").
			Values(method.ID, method.UserID, method.MethodType, method.Provider, method.ProviderToken,
				nullable(method.CardBrand), nullable(method.CardLast4), nullable(method.PayPalEmail),
				method.IsDefault, method.IsActive, method.Version+1, method.CreatedAt)

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	}

	statement := r.db.QueryBuilder.
		Update("payment_methods").
		Set("is_default", method.IsDefault).
		Set("is_active", method.IsActive).
		Set("version", method.Version+1).
		Where(sq.Eq{"id": method.ID, "version": method.Version})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}
