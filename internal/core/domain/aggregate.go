package domain

import (
	"github.com/google/uuid"
)

// AggregateRoot carries the identity, the optimistic-lock version and the
// list of domain events raised since the aggregate was loaded. The events
// stay pending until the unit of work commits them to the outbox and calls
// ClearEvents.
type AggregateRoot struct {
	ID      uuid.UUID
	Version uint64

	pending []Event
}

func NewAggregateRoot() AggregateRoot {
	return AggregateRoot{ID: uuid.New()}
}

// Record appends a domain event to the pending list in emission order.
func (a *AggregateRoot) Record(e Event) {
	a.pending = append(a.pending, e)
}

func (a *AggregateRoot) PendingEvents() []Event {
	return a.pending
}

func (a *AggregateRoot) ClearEvents() {
	a.pending = nil
}
