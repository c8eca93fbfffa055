package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "zigzax/api/swagger" // swagger docs
	"zigzax/internal/database"
	"zigzax/internal/handler"
	"zigzax/internal/middleware"
	"zigzax/internal/repository"
	"zigzax/internal/service"
	"zigzax/internal/websocket"
)

// @title           Zigzax ERP API
// @version         1.0
// @description     Fashion retail backend: product catalog, invoices, exchange rates.
// @host            localhost:3001
// @BasePath        /
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info().Msg("no configs/.env file found, using environment defaults")
	}

	setupLogger()

	// Money fields marshal as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "zigzax.db"
	}

	db, err := database.NewConnection(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("database connection failed")
	}
	log.Info().Str("path", dbPath).Msg("connected to sqlite store")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	productRepo := repository.NewProductRepository(db)
	rateRepo := repository.NewRateRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	productService := service.NewProductService(productRepo, wsHub)
	rateService := service.NewRateService(rateRepo, wsHub)
	accountService := service.NewAccountService(accountRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, accountRepo, txManager, wsHub)
	draftService := service.NewDraftService(rateService, productRepo, invoiceService)
	statsService := service.NewStatsService(productRepo, accountRepo, invoiceRepo)

	// Initialize Handlers
	productHandler := handler.NewProductHandler(productService)
	rateHandler := handler.NewRateHandler(rateService)
	accountHandler := handler.NewAccountHandler(accountService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	draftHandler := handler.NewDraftHandler(draftService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Set up Gin Router
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	rateLimit := os.Getenv("RATE_LIMIT")
	if rateLimit == "" {
		rateLimit = "300-M"
	}
	router.Use(middleware.RateLimit(rateLimit))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	api := router.Group("")
	productHandler.RegisterRoutes(api)
	rateHandler.RegisterRoutes(api)
	accountHandler.RegisterRoutes(api)
	invoiceHandler.RegisterRoutes(api)
	draftHandler.RegisterRoutes(api)
	statsHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	log.Info().Str("port", port).Msg("server listening")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func setupLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
