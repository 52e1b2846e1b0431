package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/orderflow-io/orderflow/internal/adapter/config"
	"github.com/orderflow-io/orderflow/internal/core/port"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	userHandler *UserHandler,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	adminHandler *AdminHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/register", userHandler.RegisterUser)
			user.POST("/login", userHandler.LoginUser)
		}

		// provider callbacks authenticate by payload, not by user token
		api.POST("/webhooks/payment", paymentHandler.PaymentWebhook)

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService))
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrdersByUser)
			orders.GET("/:order", orderHandler.GetOrder)
			orders.POST("/:order/items", orderHandler.AddOrderItem)
			orders.POST("/:order/cancel", orderHandler.CancelOrder)
			orders.POST("/:order/ship", orderHandler.ShipOrder)
			orders.POST("/:order/deliver", orderHandler.DeliverOrder)
			orders.POST("/:order/payments", paymentHandler.CreatePayment)
		}

		methods := api.Group("/payment-methods")
		{
			methods.Use(authCheck(tokenService))
			methods.POST("", paymentHandler.AddPaymentMethod)
			methods.GET("", paymentHandler.ListPaymentMethods)
			methods.PUT("/:method/default", paymentHandler.SetDefaultPaymentMethod)
			methods.DELETE("/:method", paymentHandler.DeactivatePaymentMethod)
		}

		admin := api.Group("/admin")
		{
			admin.Use(authCheck(tokenService))
			admin.POST("/cache/clear", adminHandler.ClearCache)
			admin.POST("/outbox/run", adminHandler.RunOutboxBatch)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
