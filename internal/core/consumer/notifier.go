package consumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

// Notifier sends customer emails for order and payment milestones. A
// duplicate email from redelivery is tolerated; a missing user is
// business-as-usual and never retried.
type Notifier struct {
	repo   port.Repository
	mailer port.EmailSender
	logger *zap.Logger
}

func NewNotifier(repo port.Repository, mailer port.EmailSender, logger *zap.Logger) *Notifier {
	return &Notifier{repo: repo, mailer: mailer, logger: logger}
}

func (h *Notifier) Handle(ctx context.Context, event domain.Event) error {
	switch e := event.(type) {
	case domain.OrderPaid:
		return h.send(ctx, e.UserID, "Payment received",
			fmt.Sprintf("We received your payment of %s %s for order %s.", e.Total, e.Currency, e.OrderID))
	case domain.OrderShipped:
		body := fmt.Sprintf("Your order %s is on its way.", e.OrderID)
		if e.TrackingNumber != "" {
			body = fmt.Sprintf("%s Tracking number: %s.", body, e.TrackingNumber)
		}
		return h.send(ctx, e.UserID, "Order shipped", body)
	case domain.PaymentFailed:
		return h.send(ctx, e.UserID, "Payment failed",
			fmt.Sprintf("Your payment for order %s did not go through. Please try another payment method.", e.OrderID))
	default:
		return nil
	}
}

func (h *Notifier) send(ctx context.Context, userID *uuid.UUID, subject, body string) error {
	if userID == nil {
		// guest checkout, nobody to notify
		return nil
	}

	user, err := h.repo.GetUser(ctx, *userID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			h.logger.Info("notification skipped, user gone", zap.String("user", userID.String()))
			return nil
		}
		return err
	}

	if err := h.mailer.SendEmail(ctx, user.Login, subject, body); err != nil {
		// fire-and-forget: log, do not hold the message hostage
		h.logger.Error("send email", zap.String("user", user.Login), zap.Error(err))
	}
	return nil
}
