package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

var orderColumns = []string{
	"id", "user_id", "shipping_address_id", "billing_address_id",
	"subtotal", "tax", "shipping_cost", "total", "currency",
	"status", "payment_status",
	"COALESCE(tracking_number, '')", "COALESCE(cancel_reason, '')",
	"metadata", "version", "created_at", "updated_at",
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ShippingAddressID,
		&order.BillingAddressID,
		&order.Subtotal,
		&order.Tax,
		&order.ShippingCost,
		&order.Total,
		&order.Currency,
		&order.Status,
		&order.PaymentStatus,
		&order.TrackingNumber,
		&order.CancelReason,
		&order.Metadata,
		&order.Version,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, err
	}

	order.Items, err = r.readOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range list {
		order.Items, err = r.readOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
	}

	return list, nil
}

func (r *Repository) readOrderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	statement := r.db.QueryBuilder.
		Select("id", "product_id", "product_name", "COALESCE(variant, '')",
			"unit_price", "quantity", "line_total").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("position")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.ProductName,
			&item.Variant,
			&item.UnitPrice,
			&item.Quantity,
			&item.LineTotal,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// saveOrderTx writes the order inside the unit-of-work transaction. A new
// aggregate (version 0) is inserted; an existing one is updated with a
// compare-and-swap on the version column, so a stale writer commits
// nothing.
func (r *Repository) saveOrderTx(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	if order.Version == 0 {
		statement := r.db.QueryBuilder.
			Insert("orders").
			Columns("id", "user_id", "shipping_address_id", "billing_address_id",
				"subtotal", "tax", "shipping_cost", "total", "currency",
				"status", "payment_status", "tracking_number", "cancel_reason",
				"metadata", "version", "created_at", "updated_at").
			Values(order.ID, order.UserID, order.ShippingAddressID, order.BillingAddressID,
				order.Subtotal, order.Tax, order.ShippingCost, order.Total, order.Currency,
				order.Status, order.PaymentStatus, nullable(order.TrackingNumber), nullable(order.CancelReason),
				order.Metadata, order.Version+1, order.CreatedAt, order.UpdatedAt)

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	} else {
		statement := r.db.QueryBuilder.
			Update("orders").
			Set("subtotal", order.Subtotal).
			Set("tax", order.Tax).
			Set("shipping_cost", order.ShippingCost).
			Set("total", order.Total).
			Set("status", order.Status).
			Set("payment_status", order.PaymentStatus).
			Set("tracking_number", nullable(order.TrackingNumber)).
			Set("cancel_reason", nullable(order.CancelReason)).
			Set("metadata", order.Metadata).
			Set("version", order.Version+1).
			Set("updated_at", order.UpdatedAt).
			Where(sq.Eq{"id": order.ID, "version": order.Version})

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
	}

	return r.saveOrderItemsTx(ctx, tx, order)
}

func (r *Repository) saveOrderItemsTx(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	del, args, err := r.db.QueryBuilder.
		Delete("order_items").
		Where(sq.Eq{"order_id": order.ID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, del, args...); err != nil {
		return err
	}

	if len(order.Items) == 0 {
		return nil
	}

	statement := r.db.QueryBuilder.
		Insert("order_items").
		Columns("id", "order_id", "product_id", "product_name", "variant",
			"unit_price", "quantity", "line_total", "position")
	for i, item := range order.Items {
		statement = statement.Values(item.ID, order.ID, item.ProductID, item.ProductName,
			nullable(item.Variant), item.UnitPrice, item.Quantity, item.LineTotal, i)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

// nullable maps an empty string to NULL so optional text columns stay null
// instead of accumulating empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
