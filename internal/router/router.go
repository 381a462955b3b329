package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmalhotra/stitchmart-backend/config"
	"github.com/jmalhotra/stitchmart-backend/internal/app/controller"
	"github.com/jmalhotra/stitchmart-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	productController    *controller.ProductController
	cartController       *controller.CartController
	checkoutController   *controller.CheckoutController
	orderController      *controller.OrderController
	orderAdminController *controller.OrderAdminController
	userAdminController  *controller.UserAdminController
	subscriberController *controller.SubscriberController
	uploadController     *controller.UploadController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	orderController *controller.OrderController,
	orderAdminController *controller.OrderAdminController,
	userAdminController *controller.UserAdminController,
	subscriberController *controller.SubscriberController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		productController:    productController,
		cartController:       cartController,
		checkoutController:   checkoutController,
		orderController:      orderController,
		orderAdminController: orderAdminController,
		userAdminController:  userAdminController,
		subscriberController: subscriberController,
		uploadController:     uploadController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "StitchMart API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/profile", r.authMiddleware.Authenticate(), r.authController.GetProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/best-seller", r.productController.GetBestSeller)
			products.GET("/new-arrivals", r.productController.GetNewArrivals)
			products.GET("/similar/:id", r.productController.GetSimilarProducts)
			products.GET("/:id", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.DeleteProduct,
			)
		}

		// Cart works for guests too, so auth is optional here.
		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.OptionalAuthenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("", r.cartController.UpdateCartItem)
			cart.DELETE("", r.cartController.RemoveCartItem)
			cart.POST("/merge", r.authMiddleware.Authenticate(), r.cartController.MergeCart)
		}

		checkout := v1.Group("/checkout")
		checkout.Use(r.authMiddleware.Authenticate())
		{
			checkout.POST("", r.checkoutController.CreateCheckout)
			checkout.GET("/mine", r.checkoutController.ListMyCheckouts)
			checkout.PUT("/:id/pay", r.checkoutController.PayCheckout)
			checkout.POST("/:id/finalize", r.checkoutController.FinalizeCheckout)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetMyOrders)
			orders.GET("/:id", r.orderController.GetOrder)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/orders", r.orderAdminController.ListOrders)
			admin.PUT("/orders/:id", r.orderAdminController.UpdateOrder)
			admin.DELETE("/orders/:id", r.orderAdminController.DeleteOrder)

			admin.GET("/users", r.userAdminController.ListUsers)
			admin.POST("/users", r.userAdminController.CreateUser)
			admin.PUT("/users/:id", r.userAdminController.UpdateUser)
			admin.DELETE("/users/:id", r.userAdminController.DeleteUser)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		v1.POST("/subscribe", r.subscriberController.Subscribe)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
