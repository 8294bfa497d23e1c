package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	catalogHTTP "github.com/anhtn-dev/storefront/internal/catalog/delivery/http"
	catalogRepo "github.com/anhtn-dev/storefront/internal/catalog/repository"
	"github.com/anhtn-dev/storefront/internal/config"
	"github.com/anhtn-dev/storefront/internal/middleware"
	userHTTP "github.com/anhtn-dev/storefront/internal/user/delivery/http"
	userRepo "github.com/anhtn-dev/storefront/internal/user/repository"
	"github.com/anhtn-dev/storefront/pkg/auth"
	"github.com/anhtn-dev/storefront/pkg/database"
	"github.com/anhtn-dev/storefront/pkg/logger"
	"github.com/anhtn-dev/storefront/pkg/mailer"
	"github.com/anhtn-dev/storefront/pkg/tracing"
)

var startTime = time.Now()

func main() {
	cfg := config.Load()

	logger.Init("storefront-api", cfg.LogLevel, cfg.IsDevelopment())
	ctx := context.Background()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer("storefront-api", cfg.JaegerEndpoint)
		if err != nil {
			logger.Error(ctx).Err(err).Msg("Failed to initialize tracer")
			os.Exit(1)
		}
		defer tracing.Shutdown(ctx, tp)
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to get database instance")
		os.Exit(1)
	}
	defer sqlDB.Close()

	productRepo := catalogRepo.NewGormProductRepository(db)
	if err := productRepo.AutoMigrate(); err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to run catalog migrations")
		os.Exit(1)
	}
	usersRepo := userRepo.NewGormUserRepository(db)
	if err := usersRepo.AutoMigrate(); err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to run user migrations")
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	smtpMailer := mailer.NewMailer(cfg.SMTP)

	catalogHandler := catalogHTTP.NewCatalogHandler(
		catalogRepo.NewTracingProductRepository(productRepo),
		catalogRepo.NewGormCategoryRepository(db),
		catalogRepo.NewGormBrandRepository(db),
		prometheus.DefaultRegisterer,
	)
	authHandler := userHTTP.NewAuthHandler(
		usersRepo,
		userRepo.NewGormOtpRepository(db),
		smtpMailer,
		tokens,
		cfg.OTPExpiryMinutes,
		prometheus.DefaultRegisterer,
	)

	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.AccessLog)

	router.Handle("/metrics", promhttp.Handler())

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", healthHandler).Methods("GET")
	catalogHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info(ctx).Str("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx).Err(err).Msg("HTTP server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx).Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx).Err(err).Msg("Server shutdown failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startTime).String(),
		},
	})
}
