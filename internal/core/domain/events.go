package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of something that happened to an aggregate.
// EventType is the discriminator stored on the outbox row and used by the
// dispatcher registry to resolve the concrete type back.
type Event interface {
	EventType() string
}

const (
	EventOrderStatusChanged        = "OrderStatusChanged"
	EventOrderPaymentStatusChanged = "OrderPaymentStatusChanged"
	EventOrderPaid                 = "OrderPaid"
	EventOrderShipped              = "OrderShipped"
	EventOrderDelivered            = "OrderDelivered"
	EventOrderCancelled            = "OrderCancelled"
	EventPaymentStatusChanged      = "PaymentStatusChanged"
	EventPaymentSucceeded          = "PaymentSucceeded"
	EventPaymentFailed             = "PaymentFailed"
	EventPaymentRefunded           = "PaymentRefunded"
	EventPaymentMethodDeactivated  = "PaymentMethodDeactivated"
)

type OrderStatusChanged struct {
	OrderID    uuid.UUID   `json:"order_id"`
	UserID     *uuid.UUID  `json:"user_id,omitempty"`
	Old        OrderStatus `json:"old"`
	New        OrderStatus `json:"new"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func (OrderStatusChanged) EventType() string { return EventOrderStatusChanged }

type OrderPaymentStatusChanged struct {
	OrderID    uuid.UUID     `json:"order_id"`
	UserID     *uuid.UUID    `json:"user_id,omitempty"`
	Old        PaymentStatus `json:"old"`
	New        PaymentStatus `json:"new"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func (OrderPaymentStatusChanged) EventType() string { return EventOrderPaymentStatusChanged }

type OrderPaid struct {
	OrderID    uuid.UUID  `json:"order_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Total      string     `json:"total"`
	Currency   string     `json:"currency"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func (OrderPaid) EventType() string { return EventOrderPaid }

type OrderShipped struct {
	OrderID        uuid.UUID  `json:"order_id"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

func (OrderShipped) EventType() string { return EventOrderShipped }

type OrderDelivered struct {
	OrderID    uuid.UUID  `json:"order_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func (OrderDelivered) EventType() string { return EventOrderDelivered }

type OrderCancelled struct {
	OrderID    uuid.UUID  `json:"order_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func (OrderCancelled) EventType() string { return EventOrderCancelled }

type PaymentStatusChanged struct {
	PaymentID  uuid.UUID     `json:"payment_id"`
	OrderID    uuid.UUID     `json:"order_id"`
	UserID     *uuid.UUID    `json:"user_id,omitempty"`
	Old        PaymentStatus `json:"old"`
	New        PaymentStatus `json:"new"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func (PaymentStatusChanged) EventType() string { return EventPaymentStatusChanged }

type PaymentSucceeded struct {
	PaymentID     uuid.UUID  `json:"payment_id"`
	OrderID       uuid.UUID  `json:"order_id"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	TransactionID string     `json:"transaction_id"`
	Amount        string     `json:"amount"`
	Currency      string     `json:"currency"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func (PaymentSucceeded) EventType() string { return EventPaymentSucceeded }

type PaymentFailed struct {
	PaymentID  uuid.UUID  `json:"payment_id"`
	OrderID    uuid.UUID  `json:"order_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Message    string     `json:"message,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func (PaymentFailed) EventType() string { return EventPaymentFailed }

type PaymentRefunded struct {
	PaymentID     uuid.UUID  `json:"payment_id"`
	OrderID       uuid.UUID  `json:"order_id"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	TransactionID string     `json:"transaction_id"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func (PaymentRefunded) EventType() string { return EventPaymentRefunded }

type PaymentMethodDeactivated struct {
	MethodID   uuid.UUID `json:"method_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (PaymentMethodDeactivated) EventType() string { return EventPaymentMethodDeactivated }
