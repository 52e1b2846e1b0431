package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a stored payment instrument. The provider token is
// opaque; only masked display data is kept next to it.
type PaymentMethod struct {
	AggregateRoot
	UserID        uuid.UUID
	MethodType    MethodType
	Provider      string
	ProviderToken string
	CardBrand     string
	CardLast4     string
	PayPalEmail   string
	IsDefault     bool
	IsActive      bool
	CreatedAt     time.Time
}

// PaymentMethodDisplay is the masked display data shown to the user. The
// real instrument lives with the provider behind the opaque token.
type PaymentMethodDisplay struct {
	CardBrand   string
	CardLast4   string
	PayPalEmail string
}

func NewPaymentMethod(userID uuid.UUID, methodType MethodType,
	provider, providerToken string, display PaymentMethodDisplay) *PaymentMethod {
	return &PaymentMethod{
		AggregateRoot: NewAggregateRoot(),
		UserID:        userID,
		MethodType:    methodType,
		Provider:      provider,
		ProviderToken: providerToken,
		CardBrand:     display.CardBrand,
		CardLast4:     display.CardLast4,
		PayPalEmail:   display.PayPalEmail,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
}

func (m *PaymentMethod) SetDefault() error {
	if !m.IsActive {
		return ErrPaymentMethodInactive
	}
	m.IsDefault = true
	return nil
}

func (m *PaymentMethod) ClearDefault() {
	m.IsDefault = false
}

// Deactivate is a no-op for an already inactive instrument.
func (m *PaymentMethod) Deactivate() {
	if !m.IsActive {
		return
	}
	m.IsActive = false
	m.IsDefault = false
	m.Record(PaymentMethodDeactivated{
		MethodID:   m.ID,
		UserID:     m.UserID,
		OccurredAt: time.Now(),
	})
}
