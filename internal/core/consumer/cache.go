package consumer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

// CacheInvalidator drops cached reads for an aggregate whose state moved.
// Deleting an absent key is a no-op, so redelivery is harmless.
type CacheInvalidator struct {
	cache  port.CacheService
	logger *zap.Logger
}

func NewCacheInvalidator(cache port.CacheService, logger *zap.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, logger: logger}
}

func (h *CacheInvalidator) Handle(ctx context.Context, event domain.Event) error {
	switch e := event.(type) {
	case domain.OrderStatusChanged:
		return h.invalidateOrder(ctx, e.OrderID, e.UserID)
	case domain.OrderPaymentStatusChanged:
		return h.invalidateOrder(ctx, e.OrderID, e.UserID)
	case domain.PaymentStatusChanged:
		if err := h.cache.Remove(ctx, fmt.Sprintf("payment:%s", e.PaymentID)); err != nil {
			return err
		}
		return h.invalidateOrder(ctx, e.OrderID, e.UserID)
	case domain.PaymentMethodDeactivated:
		return h.cache.RemoveByPattern(ctx, fmt.Sprintf("payment_methods:user:%s:*", e.UserID))
	default:
		h.logger.Debug("cache invalidator skipping event", zap.String("type", event.EventType()))
		return nil
	}
}

func (h *CacheInvalidator) invalidateOrder(ctx context.Context, orderID uuid.UUID, userID *uuid.UUID) error {
	if err := h.cache.Remove(ctx, fmt.Sprintf("order:%s", orderID)); err != nil {
		return err
	}
	if userID != nil {
		return h.cache.RemoveByPattern(ctx, fmt.Sprintf("orders:user:%s:*", userID))
	}
	return nil
}
