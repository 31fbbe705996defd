package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"c2b-order-backend/internal/auth"
	"c2b-order-backend/internal/database"
	"c2b-order-backend/internal/middleware"
	"c2b-order-backend/internal/storage"
)

// RouterConfig carries everything route registration needs.
type RouterConfig struct {
	DB        *database.Client
	Codes     auth.CodeService
	Store     *storage.LocalStorage
	JWTSecret string
	TokenTTL  time.Duration
	DevMode   bool

	// Redis enables rate limiting on send-code when non-nil.
	Redis       *redis.Client
	SendCodeRPS int
}

// NewRouter wires middleware, handlers and routes into a gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	authHandler := NewAuthHandler(cfg.DB, cfg.Codes, cfg.JWTSecret, cfg.TokenTTL, cfg.DevMode)
	ordersHandler := NewOrdersHandler(cfg.DB)
	adminHandler := NewAdminHandler(cfg.DB)
	uploadHandler := NewUploadHandler(cfg.DB, cfg.Store)
	usersHandler := NewUsersHandler(cfg.DB)

	router.Static("/uploads", cfg.Store.Dir())

	api := router.Group("/api")
	api.GET("/health", HealthHandler)

	authGroup := api.Group("/auth")
	if cfg.Redis != nil {
		rps := cfg.SendCodeRPS
		if rps <= 0 {
			rps = 5
		}
		authGroup.POST("/send-code", middleware.RateLimit(cfg.Redis, rps), authHandler.SendCode)
	} else {
		authGroup.POST("/send-code", authHandler.SendCode)
	}
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/admin/login", authHandler.AdminLogin)

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.JWTSecret))

	orders := protected.Group("/orders")
	orders.POST("", ordersHandler.Create)
	orders.GET("", ordersHandler.List)
	orders.GET("/:id", ordersHandler.Get)
	orders.PUT("/:id", ordersHandler.Update)
	orders.POST("/:id/submit", ordersHandler.Submit)
	orders.POST("/:id/revoke", ordersHandler.Revoke)

	protected.GET("/users/profile", usersHandler.Profile)

	upload := protected.Group("/upload")
	upload.POST("/image", uploadHandler.UploadImage)
	upload.DELETE("/image/:id", uploadHandler.DeleteImage)

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/orders/:id", adminHandler.GetOrder)
	admin.PATCH("/orders/:id", adminHandler.UpdateOrder)

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
