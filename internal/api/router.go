package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/api/handlers"
	"github.com/emreokur/319FinalProject/internal/api/middleware"
	"github.com/emreokur/319FinalProject/internal/config"
	"github.com/emreokur/319FinalProject/internal/mailer"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/internal/shiprate"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	mailClient := mailer.NewClient(cfg.Resend.APIKey, cfg.Resend.FromAddress, logger)
	rateClient := shiprate.NewClient(cfg.FedEx.BaseURL, cfg.FedEx.ClientID, cfg.FedEx.ClientSecret, cfg.FedEx.AccountNumber, logger)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Accounts
		api.POST("/auth/register", handlers.HandleRegister(repos, logger))
		api.POST("/auth/login", handlers.HandleLogin(cfg, repos, logger))

		userRoutes := api.Group("/auth/user")
		userRoutes.Use(middleware.RequireAuth(cfg.Auth.JWTSecret, logger))
		{
			userRoutes.GET("/:email", handlers.HandleGetUser(repos, logger))
			userRoutes.PUT("/:email", handlers.HandleUpdateUser(repos, logger))
			userRoutes.DELETE("/:email", handlers.HandleDeleteUser(repos, logger))
		}

		// Catalog: reads are public, writes are admin only
		api.GET("/products", handlers.HandleListProducts(repos, logger))
		api.GET("/products/:id", handlers.HandleGetProduct(repos, logger))

		productAdmin := api.Group("/products")
		productAdmin.Use(middleware.RequireAuth(cfg.Auth.JWTSecret, logger), middleware.RequireAdmin())
		{
			productAdmin.POST("", handlers.HandleCreateProduct(repos, logger))
			productAdmin.PUT("/:id", handlers.HandleUpdateProduct(repos, logger))
			productAdmin.DELETE("/:id", handlers.HandleDeleteProduct(repos, logger))
		}

		// Carts
		cartRoutes := api.Group("/cart")
		cartRoutes.Use(middleware.RequireAuth(cfg.Auth.JWTSecret, logger))
		{
			cartRoutes.GET("", handlers.HandleGetCart(repos, logger))
			cartRoutes.POST("/items", handlers.HandleAddCartItem(repos, logger))
			cartRoutes.PUT("/items/:productId", handlers.HandleUpdateCartItem(repos, logger))
			cartRoutes.DELETE("/items/:productId", handlers.HandleRemoveCartItem(repos, logger))
			cartRoutes.DELETE("", handlers.HandleClearCart(repos, logger))
		}

		// Orders
		orderRoutes := api.Group("/orders")
		orderRoutes.Use(middleware.RequireAuth(cfg.Auth.JWTSecret, logger))
		{
			// Admin routes first so /admin does not bind as an order id
			adminRoutes := orderRoutes.Group("/admin")
			adminRoutes.Use(middleware.RequireAdmin())
			{
				adminRoutes.GET("", handlers.HandleListAllOrders(repos, logger))
				adminRoutes.PATCH("/:id/status", handlers.HandleUpdateOrderStatus(repos, logger))
				adminRoutes.DELETE("/:id", handlers.HandleDeleteOrder(repos, logger))
				adminRoutes.GET("/:id/events", handlers.HandleGetOrderEvents(repos, logger))
			}

			orderRoutes.POST("", handlers.HandlePlaceOrder(repos, logger))
			orderRoutes.GET("", handlers.HandleListMyOrders(repos, logger))
			orderRoutes.GET("/:id", handlers.HandleGetOrder(repos, logger))
			orderRoutes.PATCH("/:id/cancel", handlers.HandleCancelOrder(repos, logger))
			orderRoutes.PATCH("/:id/return", handlers.HandleRequestReturn(repos, logger))
		}

		// Questions: submit and list are public, moderation is admin only
		api.POST("/questions", handlers.HandleSubmitQuestion(repos, logger))
		api.GET("/questions", handlers.HandleListQuestions(repos, logger))

		questionAdmin := api.Group("/questions")
		questionAdmin.Use(middleware.RequireAuth(cfg.Auth.JWTSecret, logger), middleware.RequireAdmin())
		{
			questionAdmin.PATCH("/:id/resolve", handlers.HandleResolveQuestion(repos, logger))
			questionAdmin.DELETE("/:id", handlers.HandleDeleteQuestion(repos, logger))
		}

		// Provider passthroughs
		providerRoutes := api.Group("")
		providerRoutes.Use(middleware.RequireAuth(cfg.Auth.JWTSecret, logger), middleware.RequireAdmin())
		{
			providerRoutes.POST("/email", handlers.HandleSendEmail(mailClient, logger))
			providerRoutes.POST("/shipping/estimate", handlers.HandleShippingEstimate(rateClient, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
