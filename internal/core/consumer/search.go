package consumer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

// SearchReindexer pushes the current order state to the search index after
// a transition. Indexing the same document twice is a cheap upsert, so
// redelivery is safe.
type SearchReindexer struct {
	repo    port.Repository
	indexer port.SearchIndexer
	logger  *zap.Logger
}

func NewSearchReindexer(repo port.Repository, indexer port.SearchIndexer, logger *zap.Logger) *SearchReindexer {
	return &SearchReindexer{repo: repo, indexer: indexer, logger: logger}
}

func (h *SearchReindexer) Handle(ctx context.Context, event domain.Event) error {
	var e domain.OrderStatusChanged
	switch ev := event.(type) {
	case domain.OrderStatusChanged:
		e = ev
	default:
		return nil
	}

	if e.New == domain.OrderStatusCancelled {
		return h.indexer.RemoveOrder(ctx, e.OrderID)
	}

	order, err := h.repo.ReadOrder(ctx, e.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			h.logger.Info("reindex skipped, order gone", zap.String("order", e.OrderID.String()))
			return nil
		}
		return err
	}

	return h.indexer.IndexOrder(ctx, order)
}
