package outbox_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/outbox"
	"github.com/orderflow-io/orderflow/internal/core/port/mock"
)

const (
	testBatchSize   = 20
	testMaxAttempts = 3
	testBackoffBase = time.Second
)

func newTestDispatcher(store *mock.MockOutboxStore, registry *outbox.Registry) *outbox.Dispatcher {
	logger := zap.NewNop()
	return outbox.NewDispatcher(store, registry, time.Second, testBatchSize, testMaxAttempts, testBackoffBase, logger)
}

func mustMessage(t *testing.T, e domain.Event) *domain.OutboxMessage {
	t.Helper()
	msg, err := domain.NewOutboxMessage(e)
	require.NoError(t, err)
	return msg
}

func TestDispatcher_ProcessBatch(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	event := domain.OrderPaid{OrderID: uuid.New(), Total: "99.80", Currency: "USD", OccurredAt: time.Now()}
	msg := mustMessage(t, event)

	var handled []domain.Event
	registry := outbox.NewRegistry()
	registry.Subscribe(outbox.HandlerFunc(func(ctx context.Context, e domain.Event) error {
		handled = append(handled, e)
		return nil
	}), domain.EventOrderPaid)

	store := mock.NewMockOutboxStore(mockCtrl)
	store.EXPECT().ListDue(gomock.Any(), testBatchSize, gomock.Any()).
		Return([]*domain.OutboxMessage{msg}, nil)
	store.EXPECT().Update(gomock.Any(), msg).Return(nil)

	d := newTestDispatcher(store, registry)
	err := d.ProcessBatch(context.Background())
	require.NoError(t, err)

	require.Len(t, handled, 1)
	decoded, ok := handled[0].(domain.OrderPaid)
	require.True(t, ok)
	assert.Equal(t, event.OrderID, decoded.OrderID)
	assert.Equal(t, event.Total, decoded.Total)

	require.NotNil(t, msg.ProcessedAt)
	assert.Zero(t, msg.Attempts)
}

func TestDispatcher_HandlerFailureReschedules(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	msg := mustMessage(t, domain.OrderDelivered{OrderID: uuid.New(), OccurredAt: time.Now()})

	registry := outbox.NewRegistry()
	registry.Subscribe(outbox.HandlerFunc(func(ctx context.Context, e domain.Event) error {
		return errors.New("smtp down")
	}), domain.EventOrderDelivered)

	store := mock.NewMockOutboxStore(mockCtrl)
	store.EXPECT().ListDue(gomock.Any(), testBatchSize, gomock.Any()).
		Return([]*domain.OutboxMessage{msg}, nil)
	store.EXPECT().Update(gomock.Any(), msg).Return(nil)

	d := newTestDispatcher(store, registry)
	before := time.Now()
	err := d.ProcessBatch(context.Background())
	require.NoError(t, err)

	assert.Nil(t, msg.ProcessedAt)
	assert.Nil(t, msg.DeadLetteredAt)
	assert.Equal(t, 1, msg.Attempts)
	assert.Equal(t, "smtp down", msg.Error)
	// first retry is one backoff step out
	assert.WithinDuration(t, before.Add(testBackoffBase), msg.ScheduledAt, 5*time.Second)
	assert.False(t, msg.Eligible(before))
}

func TestDispatcher_SecondHandlerFailureHoldsMessage(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	msg := mustMessage(t, domain.OrderDelivered{OrderID: uuid.New(), OccurredAt: time.Now()})

	firstCalled := false
	registry := outbox.NewRegistry()
	registry.Subscribe(outbox.HandlerFunc(func(ctx context.Context, e domain.Event) error {
		firstCalled = true
		return nil
	}), domain.EventOrderDelivered)
	registry.Subscribe(outbox.HandlerFunc(func(ctx context.Context, e domain.Event) error {
		return errors.New("index unavailable")
	}), domain.EventOrderDelivered)

	store := mock.NewMockOutboxStore(mockCtrl)
	store.EXPECT().ListDue(gomock.Any(), testBatchSize, gomock.Any()).
		Return([]*domain.OutboxMessage{msg}, nil)
	store.EXPECT().Update(gomock.Any(), msg).Return(nil)

	d := newTestDispatcher(store, registry)
	require.NoError(t, d.ProcessBatch(context.Background()))

	// the whole message is retried, the first handler sees it again
	assert.True(t, firstCalled)
	assert.Nil(t, msg.ProcessedAt)
	assert.Equal(t, 1, msg.Attempts)
}

func TestDispatcher_DeadLetterAfterMaxAttempts(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	msg := mustMessage(t, domain.OrderDelivered{OrderID: uuid.New(), OccurredAt: time.Now()})
	msg.Attempts = testMaxAttempts - 1

	registry := outbox.NewRegistry()
	registry.Subscribe(outbox.HandlerFunc(func(ctx context.Context, e domain.Event) error {
		return errors.New("still broken")
	}), domain.EventOrderDelivered)

	store := mock.NewMockOutboxStore(mockCtrl)
	store.EXPECT().ListDue(gomock.Any(), testBatchSize, gomock.Any()).
		Return([]*domain.OutboxMessage{msg}, nil)
	store.EXPECT().Update(gomock.Any(), msg).Return(nil)

	d := newTestDispatcher(store, registry)
	require.NoError(t, d.ProcessBatch(context.Background()))

	require.NotNil(t, msg.DeadLetteredAt)
	assert.Nil(t, msg.ProcessedAt)
	assert.Equal(t, testMaxAttempts, msg.Attempts)
	assert.Equal(t, "still broken", msg.Error)
}

func TestDispatcher_UnknownTypeFails(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	msg := &domain.OutboxMessage{
		ID:          uuid.New(),
		Type:        "SomethingNobodyKnows",
		Content:     []byte(`{}`),
		CreatedAt:   time.Now(),
		ScheduledAt: time.Now(),
	}

	store := mock.NewMockOutboxStore(mockCtrl)
	store.EXPECT().ListDue(gomock.Any(), testBatchSize, gomock.Any()).
		Return([]*domain.OutboxMessage{msg}, nil)
	store.EXPECT().Update(gomock.Any(), msg).Return(nil)

	d := newTestDispatcher(store, outbox.NewRegistry())
	require.NoError(t, d.ProcessBatch(context.Background()))

	assert.Nil(t, msg.ProcessedAt)
	assert.Equal(t, 1, msg.Attempts)
	assert.Contains(t, msg.Error, "SomethingNobodyKnows")
}

func TestDispatcher_NoHandlersStillProcessed(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	msg := mustMessage(t, domain.OrderCancelled{OrderID: uuid.New(), OccurredAt: time.Now()})

	store := mock.NewMockOutboxStore(mockCtrl)
	store.EXPECT().ListDue(gomock.Any(), testBatchSize, gomock.Any()).
		Return([]*domain.OutboxMessage{msg}, nil)
	store.EXPECT().Update(gomock.Any(), msg).Return(nil)

	d := newTestDispatcher(store, outbox.NewRegistry())
	require.NoError(t, d.ProcessBatch(context.Background()))

	require.NotNil(t, msg.ProcessedAt)
}

func TestDispatcher_ListDueError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	store := mock.NewMockOutboxStore(mockCtrl)
	store.EXPECT().ListDue(gomock.Any(), testBatchSize, gomock.Any()).
		Return(nil, errors.New("connection refused"))

	d := newTestDispatcher(store, outbox.NewRegistry())
	err := d.ProcessBatch(context.Background())
	assert.Error(t, err)
}
