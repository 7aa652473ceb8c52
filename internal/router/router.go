package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pawstore/pawstore-backend/config"
	"github.com/pawstore/pawstore-backend/internal/app/controller"
	"github.com/pawstore/pawstore-backend/internal/middleware"
	"github.com/pawstore/pawstore-backend/internal/websocket"
)

type Router struct {
	authController      *controller.AuthController
	adminController     *controller.AdminController
	categoryController  *controller.CategoryController
	accessoryController *controller.AccessoryController
	petController       *controller.PetController
	addressController   *controller.AddressController
	cartController      *controller.CartController
	orderController     *controller.OrderController
	paymentController   *controller.PaymentController
	contactController   *controller.ContactController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	hub                 *websocket.Hub
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	adminController *controller.AdminController,
	categoryController *controller.CategoryController,
	accessoryController *controller.AccessoryController,
	petController *controller.PetController,
	addressController *controller.AddressController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	paymentController *controller.PaymentController,
	contactController *controller.ContactController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	hub *websocket.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		adminController:     adminController,
		categoryController:  categoryController,
		accessoryController: accessoryController,
		petController:       petController,
		addressController:   addressController,
		cartController:      cartController,
		orderController:     orderController,
		paymentController:   paymentController,
		contactController:   contactController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		hub:                 hub,
		config:              cfg,
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
			"message": "PawStore API is running",
		})
	})

	authenticate := r.authMiddleware.Authenticate()
	staffOnly := r.authMiddleware.RequireStaff()

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.GET("/me", authenticate, r.authController.Me)
			auth.PATCH("/me", authenticate, r.authController.UpdateMe)
		}

		users := v1.Group("/users")
		users.Use(authenticate)
		{
			users.GET("", staffOnly, r.authController.ListUsers)
			users.GET("/:id", r.authController.GetUser)
			users.PATCH("/:id/active", staffOnly, r.authController.SetUserActive)
			users.DELETE("/:id", staffOnly, r.authController.DeleteUser)
		}

		admins := v1.Group("/admins")
		admins.Use(authenticate, staffOnly)
		{
			admins.GET("", r.adminController.ListProfiles)
			admins.POST("", r.adminController.CreateProfile)
			admins.GET("/:id", r.adminController.GetProfile)
			admins.PATCH("/:id", r.adminController.UpdateProfileImage)
			admins.POST("/:id/toggle-superadmin", r.adminController.ToggleSuperadmin)
			admins.DELETE("/:id", r.adminController.DeleteProfile)
		}

		admin := v1.Group("/admin")
		admin.Use(authenticate, staffOnly)
		{
			admin.GET("/overview", r.adminController.Overview)
			admin.POST("/overview/refresh", r.adminController.RefreshOverview)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.GET("/:id", r.categoryController.Get)
			categories.GET("/:id/accessories", r.categoryController.ListAccessories)
			categories.POST("", authenticate, staffOnly, r.categoryController.Create)
			categories.PUT("/:id", authenticate, staffOnly, r.categoryController.Update)
			categories.DELETE("/:id", authenticate, staffOnly, r.categoryController.Delete)
		}

		accessories := v1.Group("/accessories")
		{
			accessories.GET("", r.accessoryController.List)
			accessories.GET("/in-stock", r.accessoryController.ListInStock)
			accessories.GET("/out-of-stock", r.accessoryController.ListOutOfStock)
			accessories.GET("/low-stock", authenticate, staffOnly, r.accessoryController.ListLowStock)
			accessories.GET("/stats", authenticate, staffOnly, r.accessoryController.Stats)
			accessories.GET("/export", authenticate, staffOnly, r.accessoryController.Export)
			accessories.GET("/:id", r.accessoryController.Get)
			accessories.POST("", authenticate, staffOnly, r.accessoryController.Create)
			accessories.PUT("/:id", authenticate, staffOnly, r.accessoryController.Update)
			accessories.PATCH("/:id/stock", authenticate, staffOnly, r.accessoryController.UpdateStock)
			accessories.DELETE("/:id", authenticate, staffOnly, r.accessoryController.Delete)
		}

		pets := v1.Group("/pets")
		{
			pets.GET("", r.petController.List)
			pets.GET("/available", r.petController.ListAvailable)
			pets.GET("/adopted", authenticate, staffOnly, r.petController.ListAdopted)
			pets.GET("/my", authenticate, r.petController.ListMine)
			pets.GET("/stats", authenticate, staffOnly, r.petController.Stats)
			pets.GET("/:id", r.petController.Get)
			pets.POST("", authenticate, staffOnly, r.petController.Create)
			pets.PUT("/:id", authenticate, staffOnly, r.petController.Update)
			pets.DELETE("/:id", authenticate, staffOnly, r.petController.Delete)
			pets.POST("/:id/adopt", authenticate, r.petController.Adopt)
			pets.POST("/:id/make-available", authenticate, staffOnly, r.petController.MakeAvailable)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(authenticate)
		{
			addresses.GET("", r.addressController.ListMine)
			addresses.GET("/shipping", r.addressController.ListShipping)
			addresses.GET("/billing", r.addressController.ListBilling)
			addresses.GET("/:id", r.addressController.Get)
			addresses.POST("", r.addressController.Create)
			addresses.PUT("/:id", r.addressController.Update)
			addresses.DELETE("/:id", r.addressController.Delete)
		}

		carts := v1.Group("/carts")
		carts.Use(authenticate)
		{
			carts.GET("", staffOnly, r.cartController.ListAll)
			carts.GET("/stats", staffOnly, r.cartController.Stats)
			carts.GET("/empty", staffOnly, r.cartController.ListEmpty)
			carts.GET("/my", r.cartController.GetMyCart)
			carts.POST("/my/items", r.cartController.AddItem)
			carts.PATCH("/items/:id", r.cartController.UpdateItem)
			carts.DELETE("/items/:id", r.cartController.RemoveItem)
			carts.GET("/:id", r.cartController.Get)
			carts.POST("/:id/clear", r.cartController.Clear)
		}

		orders := v1.Group("/orders")
		orders.Use(authenticate)
		{
			orders.GET("", staffOnly, r.orderController.ListAll)
			orders.GET("/stats", staffOnly, r.orderController.Stats)
			orders.GET("/my", r.orderController.ListMine)
			orders.POST("", r.orderController.Create)
			orders.GET("/:id", r.orderController.Get)
			orders.GET("/:id/tracking", r.orderController.Tracking)
			orders.POST("/:id/cancel", r.orderController.Cancel)
			orders.PATCH("/:id/status", staffOnly, r.orderController.UpdateStatus)
		}

		payments := v1.Group("/payments")
		payments.Use(authenticate)
		{
			payments.GET("", staffOnly, r.paymentController.ListAll)
			payments.GET("/stats", staffOnly, r.paymentController.Stats)
			payments.GET("/my", r.paymentController.ListMine)
			payments.POST("", r.paymentController.Create)
			payments.GET("/:id", r.paymentController.Get)
			payments.POST("/:id/process", r.paymentController.Process)
			payments.POST("/:id/refund", staffOnly, r.paymentController.Refund)
			payments.PATCH("/:id/status", staffOnly, r.paymentController.UpdateStatus)
		}

		contacts := v1.Group("/contacts")
		{
			contacts.POST("", r.contactController.Create)
			contacts.GET("", authenticate, staffOnly, r.contactController.List)
			contacts.GET("/stats", authenticate, staffOnly, r.contactController.Stats)
			contacts.GET("/:id", authenticate, staffOnly, r.contactController.Get)
			contacts.PATCH("/:id/status", authenticate, staffOnly, r.contactController.UpdateStatus)
			contacts.DELETE("/:id", authenticate, staffOnly, r.contactController.Delete)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(authenticate, staffOnly)
		{
			uploads.POST("/presign", r.uploadController.Presign)
		}

		ws := v1.Group("/ws")
		ws.Use(authenticate)
		{
			ws.GET("/orders", websocket.Handler(r.hub))
		}
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
