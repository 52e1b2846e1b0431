package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

// Service is the command API exposed to the HTTP layer. It returns domain
// results and sentinel errors without leaking transaction mechanics.
type Service interface {
	RegisterUser(ctx context.Context, login, password string) (*domain.User, error)
	LoginUser(ctx context.Context, login, password string) (string, error)

	CreateOrder(ctx context.Context, userID *uuid.UUID, currency string) (*domain.Order, error)
	AddOrderItem(ctx context.Context, orderID, productID uuid.UUID,
		name, variant string, unitPrice decimal.Decimal, quantity int) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID, reason string) (*domain.Order, error)
	ShipOrder(ctx context.Context, orderID uuid.UUID, trackingNumber string) (*domain.Order, error)
	DeliverOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)

	CreatePayment(ctx context.Context, orderID uuid.UUID,
		methodType domain.MethodType, provider, externalRef string) (*domain.Payment, error)
	HandlePaymentWebhook(ctx context.Context, payload []byte) error

	AddPaymentMethod(ctx context.Context, userID uuid.UUID, methodType domain.MethodType,
		provider, providerToken string, display domain.PaymentMethodDisplay) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]*domain.PaymentMethod, error)
	SetDefaultPaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error
	DeactivatePaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error
}
