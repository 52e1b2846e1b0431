package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

//go:generate mockgen -source=search.go -destination=mock/search.go -package=mock
type SearchIndexer interface {
	IndexOrder(ctx context.Context, order *domain.Order) error
	RemoveOrder(ctx context.Context, orderID uuid.UUID) error
}
