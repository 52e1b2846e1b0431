package domain

import (
	"encoding/json"
	"fmt"
)

// WebhookEvent is the typed form of an inbound payment-provider payload.
// The provider posts {id, type, created, data:{object:{...}}, livemode,
// pending_webhooks}; anything missing the required fields is rejected
// before any state is touched.
type WebhookEvent struct {
	ID              string
	Type            string
	Created         int64
	Livemode        bool
	PendingWebhooks int
	Object          map[string]any
}

type rawWebhookEvent struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object map[string]any `json:"object"`
	} `json:"data"`
	Livemode        bool `json:"livemode"`
	PendingWebhooks int  `json:"pending_webhooks"`
}

func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var raw rawWebhookEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhookPayload, err)
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidWebhookPayload)
	}
	if raw.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidWebhookPayload)
	}
	if raw.Data.Object == nil {
		return nil, fmt.Errorf("%w: missing data.object", ErrInvalidWebhookPayload)
	}

	return &WebhookEvent{
		ID:              raw.ID,
		Type:            raw.Type,
		Created:         raw.Created,
		Livemode:        raw.Livemode,
		PendingWebhooks: raw.PendingWebhooks,
		Object:          raw.Data.Object,
	}, nil
}

// ObjectString returns a string field of data.object, empty when absent or
// not a string.
func (e *WebhookEvent) ObjectString(key string) string {
	v, ok := e.Object[key].(string)
	if !ok {
		return ""
	}
	return v
}
