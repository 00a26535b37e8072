package handlers

import (
	"net/http"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/config"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	logrus.Info("Setting up routes...")

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Server is running!",
			"status":  "ok",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "shop-backend",
		})
	})

	if db == nil {
		logrus.Warn("Database not connected - running with limited functionality")
		router.Any("/api/*path", func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Database connection not available",
				"message": "The server is running but could not connect to the database. Please check server logs.",
			})
		})
		return
	}

	logrus.Info("Database connected - setting up database routes")
	authHandler := NewAuthHandler(db, cfg)
	categoryHandler := NewCategoryHandler(db, cfg)
	productHandler := NewProductHandler(db)
	cartHandler := NewCartHandler(db)
	orderHandler := NewOrderHandler(db)
	paymentHandler := NewPaymentHandler(db, cfg)
	reviewHandler := NewReviewHandler(db)
	couponHandler := NewCouponHandler(db)
	dealHandler := NewFlashDealHandler(db)
	bannerHandler := NewBannerHandler(db)
	adminHandler := NewAdminHandler(db)
	analyticsHandler := NewAnalyticsHandler(db, cfg)

	// Public Routes
	authGroup := router.Group("/api/v1/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh-token", authHandler.RefreshToken)
	}

	public := router.Group("/api/v1/public")
	{
		public.GET("/products", productHandler.FetchProductsPublic)
		public.GET("/products/:id", productHandler.FetchProductPublicById)
		public.GET("/products/:id/reviews", reviewHandler.GetProductReviews)
		public.GET("/categories", categoryHandler.ListCategories)
		public.GET("/flash-deals", dealHandler.GetActiveDeals)
		public.GET("/banners", bannerHandler.GetActiveBanners)
	}

	// Stripe signs the webhook payload itself, so it stays outside the
	// auth chain.
	router.POST("/api/v1/payments/webhook", paymentHandler.HandleWebhook)

	// Protected Routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/auth/me", authHandler.Me)

		carts := protected.Group("/cart")
		{
			carts.POST("", cartHandler.AddToCart)
			carts.GET("", cartHandler.GetCart)
			carts.PUT("/:id", cartHandler.UpdateQuantity)
			carts.DELETE("/:id", cartHandler.RemoveFromCart)
			carts.DELETE("", cartHandler.ClearCart)
		}

		orders := protected.Group("/orders")
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.GetUserOrders)
			orders.GET("/:id", orderHandler.GetOrderById)
			orders.PUT("/:id/confirm", orderHandler.ConfirmReceipt)
		}

		payments := protected.Group("/payments")
		{
			payments.POST("/create-intent", paymentHandler.CreatePaymentIntent)
		}

		protected.POST("/reviews", reviewHandler.CreateReview)
		protected.POST("/coupons/validate", couponHandler.ValidateCoupon)

		// Admin Routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RoleMiddleware("admin"))
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/users", adminHandler.ListUsers)

			products := admin.Group("/products")
			{
				products.POST("", productHandler.CreateProduct)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}

			categories := admin.Group("/categories")
			{
				categories.POST("", categoryHandler.CreateCategory)
				categories.PUT("/:id", categoryHandler.UpdateCategory)
				categories.DELETE("/:id", categoryHandler.DeleteCategory)
				categories.POST("/upload-image", categoryHandler.UploadCategoryImage)
			}

			orders := admin.Group("/orders")
			{
				orders.GET("", orderHandler.ListOrders)
				orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			}

			coupons := admin.Group("/coupons")
			{
				coupons.GET("", couponHandler.ListCoupons)
				coupons.POST("", couponHandler.CreateCoupon)
				coupons.PUT("/:id/active", couponHandler.SetCouponActive)
				coupons.DELETE("/:id", couponHandler.DeleteCoupon)
			}

			deals := admin.Group("/flash-deals")
			{
				deals.GET("", dealHandler.ListDeals)
				deals.GET("/:id", dealHandler.GetDealById)
				deals.POST("", dealHandler.CreateDeal)
				deals.PUT("/:id", dealHandler.UpdateDeal)
				deals.DELETE("/:id", dealHandler.DeleteDeal)
			}

			banners := admin.Group("/banners")
			{
				banners.GET("", bannerHandler.ListBanners)
				banners.POST("", bannerHandler.CreateBanner)
				banners.PUT("/:id", bannerHandler.UpdateBanner)
				banners.DELETE("/:id", bannerHandler.DeleteBanner)
			}

			reviews := admin.Group("/reviews")
			{
				reviews.GET("", reviewHandler.ListReviews)
				reviews.DELETE("/:id", reviewHandler.DeleteReview)
			}

			analytics := admin.Group("/analytics")
			{
				analytics.GET("/revenue", analyticsHandler.GetRevenue)
				analytics.GET("/categories", analyticsHandler.GetSalesByCategory)
				analytics.GET("/growth", analyticsHandler.GetGrowth)
				analytics.GET("/insights", analyticsHandler.GetInsights)
			}
		}
	}
}
