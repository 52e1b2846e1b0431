package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

func (s *Service) CreateOrder(ctx context.Context, userID *uuid.UUID, currency string) (*domain.Order, error) {
	order := domain.NewOrder(userID, currency)

	if err := s.uow.Save(ctx, order); err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (s *Service) AddOrderItem(ctx context.Context, orderID, productID uuid.UUID,
	name, variant string, unitPrice decimal.Decimal, quantity int) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.AddItem(productID, name, variant, unitPrice, quantity); err != nil {
		return nil, err
	}

	if err := s.uow.Save(ctx, order); err != nil {
		s.logger.Error("Save order items", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.repo.ReadOrder(ctx, orderID)
}

func (s *Service) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("List orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) CancelOrder(ctx context.Context, orderID uuid.UUID, reason string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.uow.Save(ctx, order); err != nil {
		s.logger.Error("Cancel order", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (s *Service) ShipOrder(ctx context.Context, orderID uuid.UUID, trackingNumber string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkAsShipped(trackingNumber); err != nil {
		return nil, err
	}

	if err := s.uow.Save(ctx, order); err != nil {
		s.logger.Error("Ship order", zap.Error(err))
		return nil, err
	}

	return order, nil
}

func (s *Service) DeliverOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkAsDelivered(); err != nil {
		return nil, err
	}

	if err := s.uow.Save(ctx, order); err != nil {
		s.logger.Error("Deliver order", zap.Error(err))
		return nil, err
	}

	return order, nil
}
