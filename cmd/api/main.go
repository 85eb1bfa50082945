package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/wilayah_api/internal/cache"
	"github.com/GTDGit/wilayah_api/internal/config"
	"github.com/GTDGit/wilayah_api/internal/database"
	"github.com/GTDGit/wilayah_api/internal/handler"
	"github.com/GTDGit/wilayah_api/internal/middleware"
	"github.com/GTDGit/wilayah_api/internal/repository"
)

// main is the application entrypoint for the Wilayah API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("driver", cfg.DB.Driver).Msg("starting wilayah api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 4. Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	lockWait, err := repository.NewLockWaitHistogram(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register repository metrics")
	}
	metricsMw, err := middleware.NewMetricsMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}

	// 5. Repository and handlers
	territoryRepo := repository.NewTerritoryRepository(db, repository.WithLockWaitObserver(lockWait))
	territoryHandler := handler.NewTerritoryHandler(territoryRepo)
	healthHandler := handler.NewHealthHandler(territoryRepo)

	// 6. Context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 7. Rate limiter
	var limiter middleware.RateLimiter
	if cfg.RateLimit.Requests > 0 {
		if cfg.Redis.Enabled() {
			redisClient, err := cache.NewRedisClient(&cfg.Redis)
			if err != nil {
				log.Error().Err(err).Msg("redis connection failed")
				fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
				os.Exit(1)
			}
			defer redisClient.Close()
			log.Info().Msg("redis connected successfully")
			limiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		} else {
			limiter = middleware.NewMemoryRateLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
	}

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := setupRouter(reg, metricsMw, limiter, healthHandler, territoryHandler)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// setupRouter builds the engine. /health and /metrics sit in front of the rate
// limiter and are never limited.
func setupRouter(
	reg *prometheus.Registry,
	metricsMw *middleware.MetricsMiddleware,
	limiter middleware.RateLimiter,
	healthHandler *handler.HealthHandler,
	territoryHandler *handler.TerritoryHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metricsMw.Handler())

	router.GET("/health", healthHandler.GetHealth)
	router.GET(middleware.MetricsPath, gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	if limiter != nil {
		router.Use(middleware.RateLimitMiddleware(limiter))
	}
	handler.RegisterRoutes(router, territoryHandler)
	return router
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
