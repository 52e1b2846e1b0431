package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

// Aggregate is what the unit of work needs from any aggregate root:
// collect the pending events for the outbox and clear them after commit.
type Aggregate interface {
	PendingEvents() []domain.Event
	ClearEvents()
}

// UnitOfWork persists aggregate state changes and their pending domain
// events in a single transaction. An event exists in the outbox if and
// only if the state change that raised it committed. A stale aggregate
// version fails the whole transaction with domain.ErrVersionConflict and
// leaves no outbox rows behind.
//
//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type UnitOfWork interface {
	Save(ctx context.Context, aggregates ...Aggregate) error
}

type Repository interface {
	// Order
	ReadOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)

	// Payment
	ReadPayment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error)
	ReadPaymentByExternalRef(ctx context.Context, externalRef string) (*domain.Payment, error)
	ListPaymentsByOrder(ctx context.Context, orderID uuid.UUID) ([]*domain.Payment, error)

	// PaymentMethod
	ReadPaymentMethod(ctx context.Context, methodID uuid.UUID) (*domain.PaymentMethod, error)
	ListPaymentMethodsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PaymentMethod, error)

	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// Refresh tokens
	InsertRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	RevokeRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error)
}
