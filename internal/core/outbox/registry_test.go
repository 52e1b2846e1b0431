package outbox_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/outbox"
)

func TestRegistry_DecodeRoundTrip(t *testing.T) {
	userID := uuid.New()
	event := domain.PaymentSucceeded{
		PaymentID:     uuid.New(),
		OrderID:       uuid.New(),
		UserID:        &userID,
		TransactionID: "ch_1",
		Amount:        "99.80",
		Currency:      "USD",
		OccurredAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	msg, err := domain.NewOutboxMessage(event)
	require.NoError(t, err)

	registry := outbox.NewRegistry()
	decoded, err := registry.Decode(msg.Type, msg.Content)
	require.NoError(t, err)

	got, ok := decoded.(domain.PaymentSucceeded)
	require.True(t, ok)
	assert.Equal(t, event.PaymentID, got.PaymentID)
	assert.Equal(t, event.TransactionID, got.TransactionID)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)
}

func TestRegistry_DecodeUnknownType(t *testing.T) {
	registry := outbox.NewRegistry()

	_, err := registry.Decode("NotAnEvent", []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrUnknownEventType)
}

func TestRegistry_Subscribe(t *testing.T) {
	registry := outbox.NewRegistry()

	h := outbox.HandlerFunc(func(ctx context.Context, e domain.Event) error { return nil })
	registry.Subscribe(h, domain.EventOrderPaid, domain.EventOrderShipped)
	registry.Subscribe(h, domain.EventOrderPaid)

	assert.Len(t, registry.HandlersFor(domain.EventOrderPaid), 2)
	assert.Len(t, registry.HandlersFor(domain.EventOrderShipped), 1)
	assert.Empty(t, registry.HandlersFor(domain.EventOrderCancelled))
}
