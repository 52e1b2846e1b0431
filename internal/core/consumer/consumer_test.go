package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/consumer"
	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port/mock"
)

func TestCacheInvalidator(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()
	orderID := uuid.New()
	paymentID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name  string
		event domain.Event
		mock  func(cache *mock.MockCacheService)
	}{
		{
			name:  "order status change drops order keys",
			event: domain.OrderStatusChanged{OrderID: orderID, UserID: &userID},
			mock: func(cache *mock.MockCacheService) {
				cache.EXPECT().Remove(gomock.Any(), fmt.Sprintf("order:%s", orderID)).Return(nil)
				cache.EXPECT().RemoveByPattern(gomock.Any(), fmt.Sprintf("orders:user:%s:*", userID)).Return(nil)
			},
		},
		{
			name:  "guest order skips the user listing",
			event: domain.OrderStatusChanged{OrderID: orderID},
			mock: func(cache *mock.MockCacheService) {
				cache.EXPECT().Remove(gomock.Any(), fmt.Sprintf("order:%s", orderID)).Return(nil)
			},
		},
		{
			name:  "payment status change drops payment and order keys",
			event: domain.PaymentStatusChanged{PaymentID: paymentID, OrderID: orderID, UserID: &userID},
			mock: func(cache *mock.MockCacheService) {
				cache.EXPECT().Remove(gomock.Any(), fmt.Sprintf("payment:%s", paymentID)).Return(nil)
				cache.EXPECT().Remove(gomock.Any(), fmt.Sprintf("order:%s", orderID)).Return(nil)
				cache.EXPECT().RemoveByPattern(gomock.Any(), fmt.Sprintf("orders:user:%s:*", userID)).Return(nil)
			},
		},
		{
			name:  "method deactivation drops the method listing",
			event: domain.PaymentMethodDeactivated{MethodID: uuid.New(), UserID: userID},
			mock: func(cache *mock.MockCacheService) {
				cache.EXPECT().RemoveByPattern(gomock.Any(), fmt.Sprintf("payment_methods:user:%s:*", userID)).Return(nil)
			},
		},
		{
			name:  "unrelated event touches nothing",
			event: domain.OrderShipped{OrderID: orderID},
			mock:  func(cache *mock.MockCacheService) {},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cache := mock.NewMockCacheService(mockCtrl)
			test.mock(cache)

			h := consumer.NewCacheInvalidator(cache, logger)
			assert.NoError(t, h.Handle(context.Background(), test.event))
		})
	}
}

func TestNotifier(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()
	userID := uuid.New()
	user := &domain.User{ID: userID, Login: "customer@example.com"}
	orderID := uuid.New()

	tests := []struct {
		name     string
		event    domain.Event
		mock     func(repo *mock.MockRepository, mailer *mock.MockEmailSender)
		expError error
	}{
		{
			name:  "order paid notifies the customer",
			event: domain.OrderPaid{OrderID: orderID, UserID: &userID, Total: "99.80", Currency: "USD"},
			mock: func(repo *mock.MockRepository, mailer *mock.MockEmailSender) {
				repo.EXPECT().GetUser(gomock.Any(), userID).Return(user, nil)
				mailer.EXPECT().SendEmail(gomock.Any(), user.Login, "Payment received", gomock.Any()).Return(nil)
			},
		},
		{
			name:  "shipped email carries the tracking number",
			event: domain.OrderShipped{OrderID: orderID, UserID: &userID, TrackingNumber: "TRK-1"},
			mock: func(repo *mock.MockRepository, mailer *mock.MockEmailSender) {
				repo.EXPECT().GetUser(gomock.Any(), userID).Return(user, nil)
				mailer.EXPECT().SendEmail(gomock.Any(), user.Login, "Order shipped",
					fmt.Sprintf("Your order %s is on its way. Tracking number: TRK-1.", orderID)).Return(nil)
			},
		},
		{
			name:  "guest checkout has nobody to notify",
			event: domain.OrderPaid{OrderID: orderID, Total: "99.80", Currency: "USD"},
			mock:  func(repo *mock.MockRepository, mailer *mock.MockEmailSender) {},
		},
		{
			name:  "deleted user is skipped, not retried",
			event: domain.PaymentFailed{OrderID: orderID, UserID: &userID},
			mock: func(repo *mock.MockRepository, mailer *mock.MockEmailSender) {
				repo.EXPECT().GetUser(gomock.Any(), userID).Return(nil, domain.ErrDataNotFound)
			},
		},
		{
			name:  "mailer outage does not hold the message",
			event: domain.OrderPaid{OrderID: orderID, UserID: &userID, Total: "99.80", Currency: "USD"},
			mock: func(repo *mock.MockRepository, mailer *mock.MockEmailSender) {
				repo.EXPECT().GetUser(gomock.Any(), userID).Return(user, nil)
				mailer.EXPECT().SendEmail(gomock.Any(), user.Login, "Payment received", gomock.Any()).
					Return(errors.New("smtp down"))
			},
		},
		{
			name:  "repository outage is retried",
			event: domain.OrderPaid{OrderID: orderID, UserID: &userID, Total: "99.80", Currency: "USD"},
			mock: func(repo *mock.MockRepository, mailer *mock.MockEmailSender) {
				repo.EXPECT().GetUser(gomock.Any(), userID).Return(nil, domain.ErrInternal)
			},
			expError: domain.ErrInternal,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			mailer := mock.NewMockEmailSender(mockCtrl)
			test.mock(repo, mailer)

			h := consumer.NewNotifier(repo, mailer, logger)
			err := h.Handle(context.Background(), test.event)
			assert.ErrorIs(t, err, test.expError)
		})
	}
}

func TestTokenRevoker(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()
	userID := uuid.New()

	t.Run("revokes on deactivation", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().RevokeRefreshTokens(gomock.Any(), userID).Return(int64(2), nil)

		h := consumer.NewTokenRevoker(repo, logger)
		err := h.Handle(context.Background(), domain.PaymentMethodDeactivated{
			MethodID: uuid.New(), UserID: userID, OccurredAt: time.Now(),
		})
		assert.NoError(t, err)
	})

	t.Run("redelivery finds nothing left", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		repo.EXPECT().RevokeRefreshTokens(gomock.Any(), userID).Return(int64(0), nil)

		h := consumer.NewTokenRevoker(repo, logger)
		err := h.Handle(context.Background(), domain.PaymentMethodDeactivated{
			MethodID: uuid.New(), UserID: userID, OccurredAt: time.Now(),
		})
		assert.NoError(t, err)
	})

	t.Run("other events ignored", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)

		h := consumer.NewTokenRevoker(repo, logger)
		err := h.Handle(context.Background(), domain.OrderPaid{OrderID: uuid.New()})
		assert.NoError(t, err)
	})
}

func TestSearchReindexer(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()
	orderID := uuid.New()

	t.Run("reindexes the current state", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		indexer := mock.NewMockSearchIndexer(mockCtrl)

		order := domain.NewOrder(nil, "USD")
		repo.EXPECT().ReadOrder(gomock.Any(), orderID).Return(order, nil)
		indexer.EXPECT().IndexOrder(gomock.Any(), order).Return(nil)

		h := consumer.NewSearchReindexer(repo, indexer, logger)
		err := h.Handle(context.Background(), domain.OrderStatusChanged{
			OrderID: orderID, Old: domain.OrderStatusPending, New: domain.OrderStatusProcessing,
		})
		assert.NoError(t, err)
	})

	t.Run("cancelled order leaves the index", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		indexer := mock.NewMockSearchIndexer(mockCtrl)

		indexer.EXPECT().RemoveOrder(gomock.Any(), orderID).Return(nil)

		h := consumer.NewSearchReindexer(repo, indexer, logger)
		err := h.Handle(context.Background(), domain.OrderStatusChanged{
			OrderID: orderID, Old: domain.OrderStatusPending, New: domain.OrderStatusCancelled,
		})
		assert.NoError(t, err)
	})

	t.Run("order gone is not an error", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		indexer := mock.NewMockSearchIndexer(mockCtrl)

		repo.EXPECT().ReadOrder(gomock.Any(), orderID).Return(nil, domain.ErrDataNotFound)

		h := consumer.NewSearchReindexer(repo, indexer, logger)
		err := h.Handle(context.Background(), domain.OrderStatusChanged{
			OrderID: orderID, Old: domain.OrderStatusPending, New: domain.OrderStatusShipped,
		})
		assert.NoError(t, err)
	})
}
