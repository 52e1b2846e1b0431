package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderflow-io/orderflow/internal/core/domain"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,
	domain.ErrVersionConflict: http.StatusConflict,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,

	domain.ErrBadRequest:            http.StatusBadRequest,
	domain.ErrInvalidWebhookPayload: http.StatusBadRequest,
	domain.ErrOrderNotEditable:      http.StatusUnprocessableEntity,
	domain.ErrOrderNotPaid:          http.StatusUnprocessableEntity,
	domain.ErrOrderNotShippable:     http.StatusUnprocessableEntity,
	domain.ErrOrderNotShipped:       http.StatusUnprocessableEntity,
	domain.ErrOrderDelivered:        http.StatusUnprocessableEntity,
	domain.ErrPaymentNotRefundable:  http.StatusUnprocessableEntity,
	domain.ErrPaymentMethodInactive: http.StatusUnprocessableEntity,
}

// handleAbort sends an error response and aborts the request with the
// mapped status code.
func handleAbort(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.AbortWithError(statusCode, err)
}
