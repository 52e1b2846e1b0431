package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/orderflow-io/orderflow/internal/core/domain"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createOrderRequest struct {
	Currency string `json:"currency" binding:"required"`
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	var req createOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.CreateOrder(ctx, &userID, req.Currency)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResp(order), http.StatusCreated)
}

type addItemRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	ProductName string `json:"product_name" binding:"required"`
	Variant     string `json:"variant"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

func (oh *OrderHandler) AddOrderItem(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("order"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	var req addItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	unitPrice, err := decimal.Parse(req.UnitPrice)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.AddOrderItem(ctx, orderID, productID,
		req.ProductName, req.Variant, unitPrice, req.Quantity)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("order"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.GetOrder(ctx, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.ListOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResp, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResp(o))
	}

	oh.handleSuccess(ctx, result)
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("order"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	var req cancelOrderRequest
	_ = ctx.ShouldBindJSON(&req)

	order, err := oh.service.CancelOrder(ctx, orderID, req.Reason)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

type shipOrderRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

func (oh *OrderHandler) ShipOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("order"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	var req shipOrderRequest
	_ = ctx.ShouldBindJSON(&req)

	order, err := oh.service.ShipOrder(ctx, orderID, req.TrackingNumber)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

func (oh *OrderHandler) DeliverOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("order"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.DeliverOrder(ctx, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

type orderItemResp struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Variant     string `json:"variant,omitempty"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"line_total"`
}

type orderResp struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	Subtotal       string          `json:"subtotal"`
	Tax            string          `json:"tax"`
	ShippingCost   string          `json:"shipping_cost"`
	Total          string          `json:"total"`
	Currency       string          `json:"currency"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Items          []orderItemResp `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
}

func newOrderResp(o *domain.Order) orderResp {
	items := make([]orderItemResp, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResp{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Variant:     item.Variant,
			UnitPrice:   item.UnitPrice.String(),
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal.String(),
		})
	}
	return orderResp{
		ID:             o.ID.String(),
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		Subtotal:       o.Subtotal.String(),
		Tax:            o.Tax.String(),
		ShippingCost:   o.ShippingCost.String(),
		Total:          o.Total.String(),
		Currency:       o.Currency,
		TrackingNumber: o.TrackingNumber,
		Items:          items,
		CreatedAt:      o.CreatedAt,
	}
}
