package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/funntour/service-rental/internal/application"
	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/config"
	"github.com/funntour/service-rental/internal/database"
	bookingDomain "github.com/funntour/service-rental/internal/domain/booking"
	"github.com/funntour/service-rental/internal/domain/pricing"
	"github.com/funntour/service-rental/internal/events"
	"github.com/funntour/service-rental/internal/handler"
	"github.com/funntour/service-rental/internal/health"
	"github.com/funntour/service-rental/internal/logger"
	"github.com/funntour/service-rental/internal/middleware"
	"github.com/funntour/service-rental/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rental",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run SQL migrations. The schema carries an exclusion constraint that
	// auto-migration cannot express, so migrations always run from files.
	if err := database.RunMigrations(cfg.Database.URL(), "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager (verification only; tokens are issued by the
	// identity service)
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret)

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize holiday calendar for day-type classification
	calendar, err := pricing.NewCalendar(cfg.HolidayDates)
	if err != nil {
		log.Fatal("invalid holiday calendar", zap.Error(err))
	}

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	boatRepo := repository.NewGormBoatRepository(db)
	priceRepo := repository.NewGormPartnerPriceRepository(db)
	marinaRepo := repository.NewGormMarinaRepository(db)
	routeRepo := repository.NewGormRouteRepository(db)
	countryRepo := repository.NewGormCountryRepository(db)
	stateRepo := repository.NewGormStateRepository(db)
	cityRepo := repository.NewGormCityRepository(db)

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		boatRepo,
		priceRepo,
		bookingDomain.NewDayRatePricing(),
		calendar,
		producer,
		log,
	)
	boatService := application.NewBoatService(boatRepo, log)
	priceService := application.NewPartnerPriceService(priceRepo, boatRepo, log)
	catalogService := application.NewCatalogService(marinaRepo, routeRepo, log)
	geoService := application.NewGeoService(countryRepo, stateRepo, cityRepo, log)

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	boatHandler := handler.NewBoatHandler(boatService)
	pricingHandler := handler.NewPricingHandler(priceService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	geoHandler := handler.NewGeoHandler(geoService)
	adminHandler := handler.NewAdminHandler(bookingService, priceService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-rental")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	boatHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	pricingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	catalogHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	geoHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rental...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rental stopped")
}
