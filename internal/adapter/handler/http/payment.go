package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

type PaymentHandler struct {
	Handler
	service port.Service
}

func NewPaymentHandler(service port.Service, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createPaymentRequest struct {
	MethodType  string `json:"method_type" binding:"required"`
	Provider    string `json:"provider" binding:"required"`
	ExternalRef string `json:"external_ref" binding:"required"`
}

func (ph *PaymentHandler) CreatePayment(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("order"))
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	var req createPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	payment, err := ph.service.CreatePayment(ctx, orderID,
		domain.MethodType(req.MethodType), req.Provider, req.ExternalRef)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, gin.H{
		"id":     payment.ID,
		"status": payment.Status,
		"amount": payment.Amount.String(),
	}, http.StatusCreated)
}

// PaymentWebhook ingests the raw provider payload. Malformed payloads are
// rejected with a 400 before any state is touched.
func (ph *PaymentHandler) PaymentWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	defer ctx.Request.Body.Close()

	if err := ph.service.HandlePaymentWebhook(ctx, payload); err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, gin.H{"received": true})
}

type addPaymentMethodRequest struct {
	MethodType    string `json:"method_type" binding:"required"`
	Provider      string `json:"provider" binding:"required"`
	ProviderToken string `json:"provider_token" binding:"required"`
	CardBrand     string `json:"card_brand"`
	CardLast4     string `json:"card_last4"`
	PayPalEmail   string `json:"paypal_email"`
}

func (ph *PaymentHandler) AddPaymentMethod(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	var req addPaymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	method, err := ph.service.AddPaymentMethod(ctx, userID,
		domain.MethodType(req.MethodType), req.Provider, req.ProviderToken,
		domain.PaymentMethodDisplay{
			CardBrand:   req.CardBrand,
			CardLast4:   req.CardLast4,
			PayPalEmail: req.PayPalEmail,
		})
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, newPaymentMethodResp(method), http.StatusCreated)
}

func (ph *PaymentHandler) ListPaymentMethods(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := ph.service.ListPaymentMethods(ctx, userID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]paymentMethodResp, 0, len(list))
	for _, m := range list {
		result = append(result, newPaymentMethodResp(m))
	}

	ph.handleSuccess(ctx, result)
}

func (ph *PaymentHandler) SetDefaultPaymentMethod(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	methodID, err := uuid.Parse(ctx.Param("method"))
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	if err := ph.service.SetDefaultPaymentMethod(ctx, userID, methodID); err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, gin.H{"default": true})
}

func (ph *PaymentHandler) DeactivatePaymentMethod(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	methodID, err := uuid.Parse(ctx.Param("method"))
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	if err := ph.service.DeactivatePaymentMethod(ctx, userID, methodID); err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}

type paymentMethodResp struct {
	ID          string `json:"id"`
	MethodType  string `json:"method_type"`
	Provider    string `json:"provider"`
	CardBrand   string `json:"card_brand,omitempty"`
	CardLast4   string `json:"card_last4,omitempty"`
	PayPalEmail string `json:"paypal_email,omitempty"`
	IsDefault   bool   `json:"is_default"`
}

func newPaymentMethodResp(m *domain.PaymentMethod) paymentMethodResp {
	return paymentMethodResp{
		ID:          m.ID.String(),
		MethodType:  string(m.MethodType),
		Provider:    m.Provider,
		CardBrand:   m.CardBrand,
		CardLast4:   m.CardLast4,
		PayPalEmail: m.PayPalEmail,
		IsDefault:   m.IsDefault,
	}
}
