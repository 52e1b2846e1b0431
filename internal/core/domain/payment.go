package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type MethodType string

const (
	MethodTypeCard         MethodType = "CARD"
	MethodTypePayPal       MethodType = "PAYPAL"
	MethodTypeBankTransfer MethodType = "BANK_TRANSFER"
)

// Payment owns one payment lifecycle for an order. All specific setters
// funnel through UpdateStatus so consumers get both a coarse
// PaymentStatusChanged and the specific event.
type Payment struct {
	AggregateRoot
	OrderID       uuid.UUID
	UserID        *uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	MethodType    MethodType
	Provider      string
	Status        PaymentStatus
	ExternalRef   string
	TransactionID string
	ErrorMessage  string
	Metadata      map[string]string
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewPayment(orderID uuid.UUID, userID *uuid.UUID, amount decimal.Decimal, currency string,
	methodType MethodType, provider string, externalRef string) *Payment {
	now := time.Now()
	return &Payment{
		AggregateRoot: NewAggregateRoot(),
		OrderID:       orderID,
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		MethodType:    methodType,
		Provider:      provider,
		Status:        PaymentStatusPending,
		ExternalRef:   externalRef,
		Metadata:      map[string]string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UpdateStatus is the single transition primitive. It raises a generic
// PaymentStatusChanged whenever the status actually changes and reports
// whether it did.
func (p *Payment) UpdateStatus(next PaymentStatus) bool {
	if p.Status == next {
		return false
	}
	old := p.Status
	p.Status = next
	p.UpdatedAt = time.Now()
	p.Record(PaymentStatusChanged{
		PaymentID:  p.ID,
		OrderID:    p.OrderID,
		UserID:     p.UserID,
		Old:        old,
		New:        next,
		OccurredAt: p.UpdatedAt,
	})
	return true
}

// MarkAsSucceeded is idempotent: a second call with the same outcome raises
// nothing.
func (p *Payment) MarkAsSucceeded(transactionID string) {
	if !p.UpdateStatus(PaymentStatusSucceeded) {
		return
	}
	now := time.Now()
	p.ProcessedAt = &now
	p.TransactionID = transactionID
	p.Record(PaymentSucceeded{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		UserID:        p.UserID,
		TransactionID: transactionID,
		Amount:        p.Amount.String(),
		Currency:      p.Currency,
		OccurredAt:    now,
	})
}

// MarkAsFailed is idempotent and stores the provider failure message.
func (p *Payment) MarkAsFailed(message string) {
	if !p.UpdateStatus(PaymentStatusFailed) {
		return
	}
	p.ErrorMessage = message
	p.Record(PaymentFailed{
		PaymentID:  p.ID,
		OrderID:    p.OrderID,
		UserID:     p.UserID,
		Message:    message,
		OccurredAt: time.Now(),
	})
}

// MarkAsRefunded fails with a domain error unless the payment succeeded
// first.
func (p *Payment) MarkAsRefunded(transactionID string) error {
	if p.Status == PaymentStatusRefunded {
		return nil
	}
	if p.Status != PaymentStatusSucceeded {
		return ErrPaymentNotRefundable
	}
	p.UpdateStatus(PaymentStatusRefunded)
	p.TransactionID = transactionID
	p.Record(PaymentRefunded{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		UserID:        p.UserID,
		TransactionID: transactionID,
		OccurredAt:    time.Now(),
	})
	return nil
}
