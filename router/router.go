package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cozinha360/pos-backend/controllers"
	"github.com/cozinha360/pos-backend/middlewares"
	"github.com/cozinha360/pos-backend/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global per IP, dipasang sebelum route didaftarkan
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController()
	productCtrl := controllers.NewProductController(db)
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db)
	reportCtrl := controllers.NewReportController(db, services.NewSummaryService())

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// Endpoint WebSocket untuk sinkronisasi semua layar
	auth.GET("/ws", controllers.EventsHandler)

	// KATALOG (baca: semua role)
	auth.GET("/products", productCtrl.GetAllProducts)
	auth.GET("/products/:product_id", productCtrl.GetProductByID)
	auth.GET("/categories", productCtrl.GetCategories)

	// MEJA (proyeksi okupansi)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_id/order", tableCtrl.GetTableOrder)

	// ORDERS (waiter/cashier)
	orders := auth.Group("/")
	orders.Use(middlewares.RequireRoles(controllers.RoleWaiter, controllers.RoleCashier))
	{
		orders.GET("/orders", orderCtrl.GetAllOrders)
		orders.POST("/orders", orderCtrl.CreateOrder)
		orders.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		orders.PUT("/orders/:order_id", orderCtrl.UpdateOrder)
		orders.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	}

	// DAPUR (kitchen)
	kitchen := auth.Group("/")
	kitchen.Use(middlewares.RequireRoles(controllers.RoleKitchen))
	{
		kitchen.GET("/kitchen/orders", orderCtrl.GetKitchenOrders)
		kitchen.POST("/orders/:order_id/start-preparing", orderCtrl.StartPreparing)
		kitchen.POST("/orders/:order_id/ready", orderCtrl.MarkReady)
	}

	// KASIR (cashier)
	cashier := auth.Group("/")
	cashier.Use(middlewares.RequireRoles(controllers.RoleCashier))
	{
		cashier.GET("/cashier/orders", orderCtrl.GetCashierOrders)
		cashier.POST("/orders/:order_id/pay", orderCtrl.PayOrder)
	}

	// ADMIN
	admin := auth.Group("/admin")
	admin.Use(middlewares.RequireRoles(controllers.RoleAdmin))
	{
		admin.POST("/products", productCtrl.UpsertProduct)
		admin.PUT("/products/:product_id", productCtrl.UpsertProduct)
		admin.DELETE("/products/:product_id", productCtrl.DeleteProduct)

		admin.GET("/reports/stats", reportCtrl.GetSalesStats)
		admin.GET("/reports/history", reportCtrl.GetSalesHistory)
		admin.GET("/reports/summary", reportCtrl.GetDailySummary)
	}

	return r
}
