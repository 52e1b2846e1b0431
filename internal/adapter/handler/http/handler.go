package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		// service errors may arrive wrapped
		for sentinel, code := range errorStatusMap {
			if errors.Is(err, sentinel) {
				statusCode = code
				ok = true
				break
			}
		}
	}
	if !ok {
		statusCode = http.StatusInternalServerError
	}

	h.logger.Debug("request failed", zap.Int("status", statusCode), zap.Error(err))
	ctx.JSON(statusCode, gin.H{"error": err.Error()})
}

func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}

func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data == nil {
		ctx.Status(status)
		return
	}
	ctx.JSON(status, data)
}
