package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

// Handler consumes one delivered domain event. Handlers run under
// at-least-once delivery and must tolerate duplicates.
type Handler interface {
	Handle(ctx context.Context, event domain.Event) error
}

type HandlerFunc func(ctx context.Context, event domain.Event) error

func (f HandlerFunc) Handle(ctx context.Context, event domain.Event) error {
	return f(ctx, event)
}

type decoderFunc func(content []byte) (domain.Event, error)

func decodeAs[E domain.Event]() decoderFunc {
	return func(content []byte) (domain.Event, error) {
		var e E
		if err := json.Unmarshal(content, &e); err != nil {
			return nil, err
		}
		return e, nil
	}
}

// Registry maps the outbox type discriminator to a payload decoder and the
// list of subscribed handlers. It is populated once at startup; the
// dispatcher only reads it.
type Registry struct {
	decoders map[string]decoderFunc
	handlers map[string][]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		decoders: map[string]decoderFunc{
			domain.EventOrderStatusChanged:        decodeAs[domain.OrderStatusChanged](),
			domain.EventOrderPaymentStatusChanged: decodeAs[domain.OrderPaymentStatusChanged](),
			domain.EventOrderPaid:                 decodeAs[domain.OrderPaid](),
			domain.EventOrderShipped:              decodeAs[domain.OrderShipped](),
			domain.EventOrderDelivered:            decodeAs[domain.OrderDelivered](),
			domain.EventOrderCancelled:            decodeAs[domain.OrderCancelled](),
			domain.EventPaymentStatusChanged:      decodeAs[domain.PaymentStatusChanged](),
			domain.EventPaymentSucceeded:          decodeAs[domain.PaymentSucceeded](),
			domain.EventPaymentFailed:             decodeAs[domain.PaymentFailed](),
			domain.EventPaymentRefunded:           decodeAs[domain.PaymentRefunded](),
			domain.EventPaymentMethodDeactivated:  decodeAs[domain.PaymentMethodDeactivated](),
		},
		handlers: map[string][]Handler{},
	}
}

// Subscribe registers a handler for the given event types. A type may have
// zero, one or several handlers.
func (r *Registry) Subscribe(h Handler, eventTypes ...string) {
	for _, t := range eventTypes {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

func (r *Registry) Decode(eventType string, content []byte) (domain.Event, error) {
	dec, ok := r.decoders[eventType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownEventType, eventType)
	}
	return dec(content)
}

func (r *Registry) HandlersFor(eventType string) []Handler {
	return r.handlers[eventType]
}
