package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

func newTestPayment() *domain.Payment {
	userID := uuid.New()
	return domain.NewPayment(uuid.New(), &userID, decimal.MustParse("99.80"), "USD",
		domain.MethodTypeCard, "stripe", "pi_123")
}

func TestPayment_MarkAsSucceeded(t *testing.T) {
	payment := newTestPayment()

	payment.MarkAsSucceeded("ch_1")

	assert.Equal(t, domain.PaymentStatusSucceeded, payment.Status)
	assert.Equal(t, "ch_1", payment.TransactionID)
	require.NotNil(t, payment.ProcessedAt)
	assert.Equal(t, []string{
		domain.EventPaymentStatusChanged,
		domain.EventPaymentSucceeded,
	}, eventTypes(payment.PendingEvents()))

	// redelivered confirmation raises nothing
	payment.ClearEvents()
	payment.MarkAsSucceeded("ch_1")
	assert.Empty(t, payment.PendingEvents())
}

func TestPayment_MarkAsFailed(t *testing.T) {
	payment := newTestPayment()

	payment.MarkAsFailed("card_declined")

	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "card_declined", payment.ErrorMessage)
	assert.Equal(t, []string{
		domain.EventPaymentStatusChanged,
		domain.EventPaymentFailed,
	}, eventTypes(payment.PendingEvents()))

	payment.ClearEvents()
	payment.MarkAsFailed("card_declined")
	assert.Empty(t, payment.PendingEvents())
}

func TestPayment_MarkAsRefunded(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.PaymentStatus
		expError error
		expTypes []string
	}{
		{
			name:     "refund a succeeded payment",
			status:   domain.PaymentStatusSucceeded,
			expTypes: []string{domain.EventPaymentStatusChanged, domain.EventPaymentRefunded},
		},
		{
			name:   "refund twice is a no-op",
			status: domain.PaymentStatusRefunded,
		},
		{
			name:     "pending payment has nothing to refund",
			status:   domain.PaymentStatusPending,
			expError: domain.ErrPaymentNotRefundable,
		},
		{
			name:     "failed payment has nothing to refund",
			status:   domain.PaymentStatusFailed,
			expError: domain.ErrPaymentNotRefundable,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payment := newTestPayment()
			payment.Status = test.status

			err := payment.MarkAsRefunded("re_1")
			assert.ErrorIs(t, err, test.expError)
			if test.expTypes == nil {
				assert.Empty(t, payment.PendingEvents())
			} else {
				assert.Equal(t, test.expTypes, eventTypes(payment.PendingEvents()))
				assert.Equal(t, domain.PaymentStatusRefunded, payment.Status)
			}
		})
	}
}

func TestPaymentMethod_Deactivate(t *testing.T) {
	method := domain.NewPaymentMethod(uuid.New(), domain.MethodTypeCard, "stripe", "tok_1",
		domain.PaymentMethodDisplay{CardBrand: "visa", CardLast4: "4242"})
	require.NoError(t, method.SetDefault())

	method.Deactivate()

	assert.False(t, method.IsActive)
	assert.False(t, method.IsDefault)
	assert.Equal(t, []string{domain.EventPaymentMethodDeactivated}, eventTypes(method.PendingEvents()))

	method.ClearEvents()
	method.Deactivate()
	assert.Empty(t, method.PendingEvents())

	assert.ErrorIs(t, method.SetDefault(), domain.ErrPaymentMethodInactive)
}
