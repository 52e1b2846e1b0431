package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is the durable envelope for one domain event. A row is
// inserted in the same transaction as the aggregate mutation that raised
// the event and is mutated afterwards only by the dispatcher. Rows are
// retained after processing for audit and replay.
type OutboxMessage struct {
	ID             uuid.UUID
	Type           string
	Content        []byte
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
	Error          string
	Attempts       int
	DeadLetteredAt *time.Time
}

// NewOutboxMessage serializes a domain event into an envelope due
// immediately.
func NewOutboxMessage(e Event) (*OutboxMessage, error) {
	content, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &OutboxMessage{
		ID:          uuid.New(),
		Type:        e.EventType(),
		Content:     content,
		CreatedAt:   now,
		ScheduledAt: now,
	}, nil
}

// Eligible reports whether the dispatcher may pick the message up.
func (m *OutboxMessage) Eligible(now time.Time) bool {
	return m.ProcessedAt == nil && m.DeadLetteredAt == nil && !m.ScheduledAt.After(now)
}

func (m *OutboxMessage) MarkProcessed(now time.Time) {
	m.ProcessedAt = &now
}

// MarkFailed records the failure and pushes the next attempt out to
// retryAt. ProcessedAt stays null so the message remains pending.
func (m *OutboxMessage) MarkFailed(errMsg string, retryAt time.Time) {
	m.Error = errMsg
	m.Attempts++
	m.ScheduledAt = retryAt
}

// DeadLetter takes the message out of rotation once retries are exhausted.
func (m *OutboxMessage) DeadLetter(errMsg string, now time.Time) {
	m.Error = errMsg
	m.Attempts++
	m.DeadLetteredAt = &now
}
