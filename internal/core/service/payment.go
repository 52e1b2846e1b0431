package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

func (s *Service) CreatePayment(ctx context.Context, orderID uuid.UUID,
	methodType domain.MethodType, provider, externalRef string) (*domain.Payment, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payment := domain.NewPayment(order.ID, order.UserID, order.Total, order.Currency,
		methodType, provider, externalRef)

	if err := s.uow.Save(ctx, payment); err != nil {
		s.logger.Error("Create payment", zap.Error(err))
		return nil, err
	}

	return payment, nil
}

// Webhook types understood from the payment provider.
const (
	webhookPaymentSucceeded = "payment_intent.succeeded"
	webhookPaymentFailed    = "payment_intent.payment_failed"
	webhookChargeRefunded   = "charge.refunded"
)

// HandlePaymentWebhook parses an inbound provider payload and applies the
// matching payment transition, propagating it to the order. The payment
// and the order are saved in one unit-of-work commit, so either both move
// and the events hit the outbox, or nothing does.
func (s *Service) HandlePaymentWebhook(ctx context.Context, payload []byte) error {
	event, err := domain.ParseWebhookEvent(payload)
	if err != nil {
		return err
	}

	switch event.Type {
	case webhookPaymentSucceeded, webhookPaymentFailed, webhookChargeRefunded:
	default:
		s.logger.Info("Ignoring unhandled webhook type",
			zap.String("type", event.Type), zap.String("id", event.ID))
		return nil
	}

	ref := event.ObjectString("id")
	if ref == "" {
		return fmt.Errorf("%w: missing data.object.id", domain.ErrInvalidWebhookPayload)
	}

	payment, err := s.repo.ReadPaymentByExternalRef(ctx, ref)
	if err != nil {
		return err
	}

	order, err := s.repo.ReadOrder(ctx, payment.OrderID)
	if err != nil {
		return err
	}

	switch event.Type {
	case webhookPaymentSucceeded:
		payment.MarkAsSucceeded(event.ObjectString("latest_charge"))
		order.MarkAsPaid()
	case webhookPaymentFailed:
		payment.MarkAsFailed(event.ObjectString("cancellation_reason"))
		order.UpdatePaymentStatus(domain.PaymentStatusFailed)
	case webhookChargeRefunded:
		if err := payment.MarkAsRefunded(event.ObjectString("latest_charge")); err != nil {
			return err
		}
		order.UpdatePaymentStatus(domain.PaymentStatusRefunded)
	}

	if err := s.uow.Save(ctx, payment, order); err != nil {
		s.logger.Error("Apply webhook", zap.String("webhook", event.ID), zap.Error(err))
		return err
	}

	return nil
}

func (s *Service) AddPaymentMethod(ctx context.Context, userID uuid.UUID, methodType domain.MethodType,
	provider, providerToken string, display domain.PaymentMethodDisplay) (*domain.PaymentMethod, error) {
	method := domain.NewPaymentMethod(userID, methodType, provider, providerToken, display)

	if err := s.uow.Save(ctx, method); err != nil {
		s.logger.Error("Add payment method", zap.Error(err))
		return nil, err
	}

	return method, nil
}

func (s *Service) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]*domain.PaymentMethod, error) {
	return s.repo.ListPaymentMethodsByUser(ctx, userID)
}

// SetDefaultPaymentMethod promotes one stored instrument and demotes the
// previous default in the same unit-of-work commit, so there is never more
// than one default on disk.
func (s *Service) SetDefaultPaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	method, err := s.repo.ReadPaymentMethod(ctx, methodID)
	if err != nil {
		return err
	}
	if method.UserID != userID {
		return domain.ErrUnauthorized
	}
	if method.IsDefault {
		return nil
	}

	if err := method.SetDefault(); err != nil {
		return err
	}

	list, err := s.repo.ListPaymentMethodsByUser(ctx, userID)
	if err != nil {
		return err
	}

	aggregates := []port.Aggregate{method}
	for _, m := range list {
		if m.ID != method.ID && m.IsDefault {
			m.ClearDefault()
			aggregates = append(aggregates, m)
		}
	}

	if err := s.uow.Save(ctx, aggregates...); err != nil {
		s.logger.Error("Set default payment method", zap.Error(err))
		return err
	}

	return nil
}

func (s *Service) DeactivatePaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	method, err := s.repo.ReadPaymentMethod(ctx, methodID)
	if err != nil {
		return err
	}
	if method.UserID != userID {
		return domain.ErrUnauthorized
	}

	method.Deactivate()

	if err := s.uow.Save(ctx, method); err != nil {
		s.logger.Error("Deactivate payment method", zap.Error(err))
		return err
	}

	return nil
}
