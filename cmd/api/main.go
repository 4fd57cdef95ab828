package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-warehouse-admin/internal/handler"
	"go-warehouse-admin/internal/middleware"
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"
	"go-warehouse-admin/internal/service"
	"go-warehouse-admin/internal/ws"
	"go-warehouse-admin/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Stock{},
		&model.Transaction{},
		&model.ActivityLog{},
		&model.Admin{},
	)

	// 3. Seed default admin (and demo data when in demo mode)
	seedAdmin(db)
	if os.Getenv("DEMO_MODE") == "true" {
		seedDemoData(db)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	stockRepo := repository.NewStockRepo(db)
	txnRepo := repository.NewTransactionRepo(db)
	logRepo := repository.NewActivityLogRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	var rates service.RateSource = service.NewAPIRateSource()
	if os.Getenv("DEMO_MODE") == "true" {
		rates = service.StaticRateSource{Rate: service.FallbackUSDToIQD}
	}

	currencyService := service.NewCurrencyService(rates)
	ledgerService := service.NewLedgerService(db, stockRepo, txnRepo, logRepo, wsHub)
	reportService := service.NewReportService(txnRepo, productRepo)
	alertService := service.NewAlertService(stockRepo)
	productService := service.NewProductService(db, productRepo, stockRepo, txnRepo, logRepo, wsHub)
	txnService := service.NewTransactionService(txnRepo, logRepo)
	dashService := service.NewDashboardService(productRepo, stockRepo, txnRepo, alertService, currencyService)
	authService := service.NewAuthService(adminRepo)

	stockHandler := handler.NewStockHandler(ledgerService, stockRepo)
	reportHandler := handler.NewReportHandler(reportService)
	alertHandler := handler.NewAlertHandler(alertService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	txnHandler := handler.NewTransactionHandler(txnService)
	logHandler := handler.NewLogHandler(logRepo)
	dashHandler := handler.NewDashboardHandler(dashService)
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Warehouse Admin v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(adminRepo))

	// Dashboard
	protected.Get("/dashboard", dashHandler.GetDashboard)

	// Stock ledger
	protected.Get("/stock", stockHandler.GetStocks)
	protected.Post("/stock", stockHandler.ApplyMovement)

	// Reports & alerts
	protected.Get("/reports", reportHandler.GetReports)
	protected.Get("/alerts", alertHandler.GetAlerts)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)
	protected.Post("/products/:id/recover", productHandler.RecoverProduct)

	// Categories
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", categoryHandler.CreateCategory)
	protected.Put("/categories/:id", categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", categoryHandler.DeleteCategory)

	// Transactions
	protected.Get("/transactions", txnHandler.GetTransactions)
	protected.Get("/transactions/:id", txnHandler.GetTransaction)
	protected.Delete("/transactions/:id", txnHandler.DeleteTransaction)

	// Activity logs
	protected.Get("/logs", logHandler.GetLogs)

	// Currency
	protected.Get("/currency/convert", currencyHandler.Convert)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if it doesn't exist
func seedAdmin(db *gorm.DB) {
	adminRepo := repository.NewAdminRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	if _, err := adminRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.Admin{Email: email, FullName: "Administrator"}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := adminRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", email)
}

// seedDemoData fills the in-memory store with a small catalog so the demo
// dashboard has something to show.
func seedDemoData(db *gorm.DB) {
	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []model.Category{
		{Name: "Screens", Description: "Replacement displays", IsActive: true},
		{Name: "Batteries", Description: "OEM and compatible batteries", IsActive: true},
		{Name: "Charging", Description: "Cables, ports, adapters", IsActive: true},
	}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			log.Printf("Warning: Failed to seed category: %v", err)
			return
		}
	}

	products := []model.Product{
		{Name: "iPhone 13 Screen", Model: "A2633", CategoryID: categories[0].ID,
			BuyPrice: decimal.NewFromInt(85000), SellPrice: decimal.NewFromInt(120000), Currency: model.CurrencyIQD},
		{Name: "Galaxy S22 Battery", Model: "EB-BS901ABY", CategoryID: categories[1].ID,
			BuyPrice: decimal.NewFromInt(25000), SellPrice: decimal.NewFromInt(40000), Currency: model.CurrencyIQD},
		{Name: "USB-C Charging Port", Model: "UC-30", CategoryID: categories[2].ID,
			BuyPrice: decimal.NewFromInt(5), SellPrice: decimal.NewFromInt(12), Currency: model.CurrencyUSD},
	}

	stockRepo := repository.NewStockRepo(db)
	txnRepo := repository.NewTransactionRepo(db)
	logRepo := repository.NewActivityLogRepo(db)
	ledger := service.NewLedgerService(db, stockRepo, txnRepo, logRepo, nil)

	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			log.Printf("Warning: Failed to seed product: %v", err)
			return
		}
		if err := db.Create(&model.Stock{
			ProductID:        products[i].ID,
			MinAlertQuantity: model.DefaultMinAlertQuantity,
		}).Error; err != nil {
			log.Printf("Warning: Failed to seed stock: %v", err)
			return
		}
	}

	movements := []service.MovementRequest{
		{ProductID: products[0].ID, Type: model.MovementBuy, Quantity: 20},
		{ProductID: products[0].ID, Type: model.MovementSell, Quantity: 7},
		{ProductID: products[1].ID, Type: model.MovementBuy, Quantity: 30},
		{ProductID: products[1].ID, Type: model.MovementSell, Quantity: 26},
		{ProductID: products[2].ID, Type: model.MovementBuy, Quantity: 50},
		{ProductID: products[2].ID, Type: model.MovementSell, Quantity: 50},
	}
	for i := range movements {
		if _, err := ledger.ApplyMovement(&movements[i]); err != nil {
			log.Printf("Warning: Failed to seed movement: %v", err)
			return
		}
	}

	log.Println("Demo data seeded:", len(products), "products")
}
