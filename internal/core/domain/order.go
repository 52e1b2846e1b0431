package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusSucceeded  PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCanceled   PaymentStatus = "CANCELED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

type OrderItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Variant     string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
}

// Order owns its line items, the money totals and two independent status
// fields. Total is always Subtotal + Tax + ShippingCost; it is recomputed
// on every item mutation.
type Order struct {
	AggregateRoot
	UserID            *uuid.UUID
	ShippingAddressID *uuid.UUID
	BillingAddressID  *uuid.UUID
	Subtotal          decimal.Decimal
	Tax               decimal.Decimal
	ShippingCost      decimal.Decimal
	Total             decimal.Decimal
	Currency          string
	Status            OrderStatus
	PaymentStatus     PaymentStatus
	TrackingNumber    string
	CancelReason      string
	Metadata          map[string]string
	Items             []OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewOrder(userID *uuid.UUID, currency string) *Order {
	now := time.Now()
	return &Order{
		AggregateRoot: NewAggregateRoot(),
		UserID:        userID,
		Currency:      currency,
		Status:        OrderStatusPending,
		PaymentStatus: PaymentStatusPending,
		Metadata:      map[string]string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AddItem appends a line item. Items are frozen once the order left the
// Pending state.
func (o *Order) AddItem(productID uuid.UUID, name, variant string, unitPrice decimal.Decimal, quantity int) error {
	if o.Status != OrderStatusPending {
		return ErrOrderNotEditable
	}
	if quantity <= 0 {
		return ErrBadRequest
	}

	qty, err := decimal.New(int64(quantity), 0)
	if err != nil {
		return err
	}
	lineTotal, err := unitPrice.Mul(qty)
	if err != nil {
		return err
	}

	o.Items = append(o.Items, OrderItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: name,
		Variant:     variant,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		LineTotal:   lineTotal,
	})

	return o.recalcTotals()
}

// SetCharges replaces tax and shipping cost and recomputes the total.
func (o *Order) SetCharges(tax, shippingCost decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return ErrOrderNotEditable
	}
	o.Tax = tax
	o.ShippingCost = shippingCost
	return o.recalcTotals()
}

func (o *Order) recalcTotals() error {
	subtotal := decimal.Zero
	var err error
	for _, item := range o.Items {
		subtotal, err = subtotal.Add(item.LineTotal)
		if err != nil {
			return err
		}
	}
	o.Subtotal = subtotal

	total, err := o.Subtotal.Add(o.Tax)
	if err != nil {
		return err
	}
	total, err = total.Add(o.ShippingCost)
	if err != nil {
		return err
	}
	o.Total = total
	o.UpdatedAt = time.Now()
	return nil
}

// UpdateStatus moves the order status and raises OrderStatusChanged.
// A transition to the current status is a no-op.
func (o *Order) UpdateStatus(next OrderStatus) {
	if o.Status == next {
		return
	}
	old := o.Status
	o.Status = next
	o.UpdatedAt = time.Now()
	o.Record(OrderStatusChanged{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Old:        old,
		New:        next,
		OccurredAt: o.UpdatedAt,
	})
}

// UpdatePaymentStatus moves the payment status field and raises
// OrderPaymentStatusChanged. A transition to the current status is a no-op.
func (o *Order) UpdatePaymentStatus(next PaymentStatus) {
	if o.PaymentStatus == next {
		return
	}
	old := o.PaymentStatus
	o.PaymentStatus = next
	o.UpdatedAt = time.Now()
	o.Record(OrderPaymentStatusChanged{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Old:        old,
		New:        next,
		OccurredAt: o.UpdatedAt,
	})
}

// MarkAsPaid is idempotent: calling it on an already paid order raises
// nothing. Otherwise it moves the payment status to Succeeded, advances a
// Pending order to Processing and raises OrderPaid on top of the two
// status-changed events.
func (o *Order) MarkAsPaid() {
	if o.PaymentStatus == PaymentStatusSucceeded {
		return
	}
	o.UpdatePaymentStatus(PaymentStatusSucceeded)
	if o.Status == OrderStatusPending {
		o.UpdateStatus(OrderStatusProcessing)
	}
	o.Record(OrderPaid{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Total:      o.Total.String(),
		Currency:   o.Currency,
		OccurredAt: time.Now(),
	})
}

// MarkAsShipped requires a paid order that is still in flight. Cancelled,
// shipped and delivered orders never ship (again).
func (o *Order) MarkAsShipped(trackingNumber string) error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusProcessing {
		return ErrOrderNotShippable
	}
	if o.PaymentStatus != PaymentStatusSucceeded {
		return ErrOrderNotPaid
	}
	o.TrackingNumber = trackingNumber
	o.UpdateStatus(OrderStatusShipped)
	o.Record(OrderShipped{
		OrderID:        o.ID,
		UserID:         o.UserID,
		TrackingNumber: trackingNumber,
		OccurredAt:     time.Now(),
	})
	return nil
}

func (o *Order) MarkAsDelivered() error {
	if o.Status != OrderStatusShipped {
		return ErrOrderNotShipped
	}
	o.UpdateStatus(OrderStatusDelivered)
	o.Record(OrderDelivered{
		OrderID:    o.ID,
		UserID:     o.UserID,
		OccurredAt: time.Now(),
	})
	return nil
}

// Cancel is rejected for delivered orders and is a no-op for orders that
// are already cancelled.
func (o *Order) Cancel(reason string) error {
	if o.Status == OrderStatusDelivered {
		return ErrOrderDelivered
	}
	if o.Status == OrderStatusCancelled {
		return nil
	}
	o.CancelReason = reason
	o.UpdateStatus(OrderStatusCancelled)
	o.Record(OrderCancelled{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Reason:     reason,
		OccurredAt: time.Now(),
	})
	return nil
}
