package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

func TestParseWebhookEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "payment_intent.succeeded",
		"created": 1726000000,
		"livemode": true,
		"pending_webhooks": 2,
		"data": {"object": {"id": "pi_123", "latest_charge": "ch_1", "amount": 9980}}
	}`)

	event, err := domain.ParseWebhookEvent(payload)
	require.NoError(t, err)

	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "payment_intent.succeeded", event.Type)
	assert.Equal(t, int64(1726000000), event.Created)
	assert.True(t, event.Livemode)
	assert.Equal(t, 2, event.PendingWebhooks)
	assert.Equal(t, "pi_123", event.ObjectString("id"))
	assert.Equal(t, "ch_1", event.ObjectString("latest_charge"))
	// non-string and absent fields read as empty
	assert.Equal(t, "", event.ObjectString("amount"))
	assert.Equal(t, "", event.ObjectString("missing"))
}

func TestParseWebhookEvent_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `{"id": `},
		{name: "missing id", payload: `{"type": "payment_intent.succeeded", "data": {"object": {"id": "pi_123"}}}`},
		{name: "missing type", payload: `{"id": "evt_1", "data": {"object": {"id": "pi_123"}}}`},
		{name: "missing data.object", payload: `{"id": "evt_1", "type": "payment_intent.succeeded"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			event, err := domain.ParseWebhookEvent([]byte(test.payload))
			assert.ErrorIs(t, err, domain.ErrInvalidWebhookPayload)
			assert.Nil(t, event)
		})
	}
}
