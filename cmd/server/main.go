package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/simplifly/booking-backend/internal/cache"
	"github.com/simplifly/booking-backend/internal/config"
	"github.com/simplifly/booking-backend/internal/database"
	"github.com/simplifly/booking-backend/internal/events"
	"github.com/simplifly/booking-backend/internal/handlers"
	"github.com/simplifly/booking-backend/internal/middleware"
	"github.com/simplifly/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Simplifly Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Repositories
	flightRepo := database.NewFlightRepository(db, logger)
	scheduleRepo := database.NewScheduleRepository(db, logger)
	seatDetailRepo := database.NewSeatDetailRepository(db, logger)
	bookingRepo := database.NewBookingRepository(db, logger)
	paymentRepo := database.NewPaymentRepository(db, logger)
	customerRepo := database.NewCustomerRepository(db, logger)

	// Optional flight cache for the quote path
	var flightCache services.FlightCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewFlightCache(cfg.Redis)
		defer redisCache.Close()
		flightCache = redisCache
		logger.Info("Flight cache enabled")
	}

	// Optional booking event producer
	var producer services.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.BookingEventsTopic)
		defer kafkaProducer.Close()
		producer = kafkaProducer
		logger.Infof("Booking events enabled on topic %s", cfg.Kafka.BookingEventsTopic)
	}

	// Services
	inventoryService := services.NewSeatInventoryService(seatDetailRepo, logger)
	pricingService := services.NewPricingService(cfg.Pricing.Currency, logger)
	paymentService := services.NewPaymentService(paymentRepo, logger)
	bookingService := services.NewBookingService(
		bookingRepo,
		scheduleRepo,
		flightRepo,
		customerRepo,
		inventoryService,
		pricingService,
		paymentService,
		producer,
		logger,
	)
	quoteService := services.NewFareQuoteService(flightRepo, flightCache, pricingService, logger)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": version})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	handlers.NewBookingHandler(bookingService, logger).Register(api)
	handlers.NewFareHandler(quoteService, logger).Register(api)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}
