package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/port"
)

// BatchRunner is the dispatcher's explicit "process now" trigger.
type BatchRunner interface {
	ProcessBatch(ctx context.Context) error
}

// AdminHandler hosts one-shot operational jobs. They reuse the same
// narrow ports as the event consumers but are not part of the delivery
// contract.
type AdminHandler struct {
	Handler
	cache  port.CacheService
	runner BatchRunner
}

func NewAdminHandler(cache port.CacheService, runner BatchRunner, logger *zap.Logger) (*AdminHandler, error) {
	return &AdminHandler{
		Handler: *NewHandler(logger),
		cache:   cache,
		runner:  runner,
	}, nil
}

func (ah *AdminHandler) ClearCache(ctx *gin.Context) {
	if err := ah.cache.Flush(ctx); err != nil {
		ah.handleError(ctx, err)
		return
	}
	ah.handleSuccess(ctx, gin.H{"cleared": true})
}

func (ah *AdminHandler) RunOutboxBatch(ctx *gin.Context) {
	if err := ah.runner.ProcessBatch(ctx); err != nil {
		ah.handleError(ctx, err)
		return
	}
	ah.handleSuccess(ctx, gin.H{"processed": true})
}
