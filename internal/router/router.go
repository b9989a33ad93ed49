// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/thenielthevis/foodever-backend/internal/config"
	"github.com/thenielthevis/foodever-backend/internal/handlers"
	"github.com/thenielthevis/foodever-backend/internal/middleware"
	"github.com/thenielthevis/foodever-backend/internal/services"
	"github.com/thenielthevis/foodever-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	identityProvider := services.NewTokenIdentityProvider(cfg.Identity.ProviderSecret)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Warn("Storage service degraded to local uploads")
	}
	notificationService := services.NewNotificationService(db)

	authService := services.NewAuthService(db, cfg, identityProvider)
	userService := services.NewUserService(db, identityProvider, storageService)
	productService := services.NewProductService(db, storageService)
	reviewService := services.NewReviewService(db)
	orderListService := services.NewOrderListService(db)
	orderService := services.NewOrderService(db, orderListService, notificationService)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	orderHandler := handlers.NewOrderHandler(orderService)
	orderListHandler := handlers.NewOrderListHandler(orderListService)
	adminHandler := handlers.NewAdminHandler(statsService, userService, notificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/provider", authHandler.ProviderSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.PUT("/profile", userHandler.UpdateProfile)
			users.POST("/upload-avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/popular", productHandler.GetPopularProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
			products.GET("/:id/reviews", reviewHandler.GetProductReviews)

			// Authenticated routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/:id/reviews", reviewHandler.UpsertReview)
				protected.GET("/:id/reviews/me", reviewHandler.GetOwnReview)
				protected.DELETE("/:id/reviews/:reviewId", reviewHandler.DeleteReview)
			}
		}

		// Order list routes
		orderList := v1.Group("/order-list")
		orderList.Use(middleware.AuthRequired())
		{
			orderList.POST("", orderListHandler.AddEntry)
			orderList.GET("", orderListHandler.GetEntries)
			orderList.PUT("/:id", orderListHandler.UpdateQuantity)
			orderList.DELETE("/products", orderListHandler.DeleteByProducts)
			orderList.DELETE("/:id", orderListHandler.DeleteEntry)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.GetUserOrders)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			// Dashboard
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/stats", adminHandler.GetDashboardStats)
			}

			// Product management
			adminProducts := admin.Group("/products")
			{
				adminProducts.POST("", productHandler.CreateProduct)
				adminProducts.PUT("/:id", productHandler.UpdateProduct)
				adminProducts.DELETE("/:id", productHandler.DeleteProduct)
				adminProducts.POST("/:id/images", middleware.UploadRateLimit(), productHandler.UploadProductImages)
			}

			// Order management
			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("/status-counts", adminHandler.GetOrderStatusCounts)
				adminOrders.GET("/monthly-top-product", adminHandler.GetMonthlyTopProduct)
				adminOrders.GET("/statuses", adminHandler.GetOrderStatuses)
				adminOrders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			}

			// User management
			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.ListUsers)
				adminUsers.PUT("/:id/status", adminHandler.UpdateUserStatus)
				adminUsers.DELETE("/:id", adminHandler.DeleteUser)
			}

			// Notifications
			adminNotifications := admin.Group("/notifications")
			{
				adminNotifications.GET("", adminHandler.GetNotifications)
				adminNotifications.PUT("/:id/read", adminHandler.MarkNotificationRead)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
