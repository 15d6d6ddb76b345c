package api

import (
	"log"
	stdhttp "net/http"

	intconfig "laundry-admin/internal/config"
	h "laundry-admin/internal/http/handlers"
	"laundry-admin/internal/http/middleware"
	"laundry-admin/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSOrigins),
		metrics.PrometheusMiddleware(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "không tìm thấy đường dẫn",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.Auth([]byte(env.JWTSecret))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.GET("/me", authRequired, h.Me)

		// Products
		products := api.Group("/product", authRequired)
		products.GET("", h.ListProducts)
		products.GET("/active", h.ListActiveProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.POST("/removeMany", h.DeleteProducts)
		products.POST("/import", h.ImportProducts)
		products.PUT("/:id/pin", h.PinProduct)

		// Orders
		orders := api.Group("/order", authRequired)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("", h.CreateOrder)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
		orders.GET("/:id/receipt", h.OrderReceipt)

		// Dashboard
		api.GET("/dashboard", authRequired, h.Dashboard)
	}

	return r
}
