package search

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

// LogIndexer is the narrow stand-in for the search engine. Index updates
// are logged; the real indexing pipeline is an external collaborator.
type LogIndexer struct {
	logger *zap.Logger
}

func NewLogIndexer(logger *zap.Logger) *LogIndexer {
	return &LogIndexer{logger: logger}
}

func (s *LogIndexer) IndexOrder(_ context.Context, order *domain.Order) error {
	s.logger.Info("indexing order",
		zap.String("order", order.ID.String()),
		zap.String("status", string(order.Status)))
	return nil
}

func (s *LogIndexer) RemoveOrder(_ context.Context, orderID uuid.UUID) error {
	s.logger.Info("removing order from index", zap.String("order", orderID.String()))
	return nil
}
