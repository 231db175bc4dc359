package http

import (
	"github.com/eshevtsov/washpoint/internal/adapter/config"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	userHandler *UserHandler,
	orderHandler *OrderHandler,
	balanceHandler *BalanceHandler,
	webhookHandler *WebhookHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/register", userHandler.RegisterUser)
			user.POST("/login", userHandler.LoginUser)

			user.GET("/balance", authCheck(tokenService), balanceHandler.GetBalance)

			orders := user.Group("/orders")
			{
				orders.Use(authCheck(tokenService))
				orders.POST("", orderHandler.CreateOrder)
				orders.GET("", orderHandler.ListOrdersByUser)
				orders.GET("/:orderNo", orderHandler.GetOrder)
				orders.POST("/:orderNo/pay", orderHandler.PayOrder)
				orders.POST("/:orderNo/start", orderHandler.StartOrder)
				orders.POST("/:orderNo/finish", orderHandler.FinishOrder)
				orders.POST("/:orderNo/cancel", orderHandler.CancelOrder)
				orders.POST("/:orderNo/refund", orderHandler.RefundOrder)
			}
		}

		webhook := api.Group("/webhook")
		{
			webhook.Use(rateLimit(rate.Limit(20), 40))
			webhook.POST("/payment", webhookHandler.PaymentCallback)
			webhook.POST("/device", webhookHandler.DeviceReport)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
