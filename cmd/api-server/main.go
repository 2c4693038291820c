package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"topmovies/database"
	"topmovies/internal/config"
	"topmovies/internal/ingestion/tmdb"
	applog "topmovies/internal/logger"
	"topmovies/internal/microservices/http-api/handler"
	"topmovies/internal/microservices/http-api/middleware"
	"topmovies/internal/microservices/http-api/repository"
	"topmovies/internal/microservices/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := applog.Init(cfg.GoEnv, cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// Redis only caches the catalog configuration; run without it if unreachable
	var cache tmdb.ConfigurationCache
	if cfg.RedisURL != "" {
		rc, err := tmdb.NewRedisConfigurationCache(cfg.RedisURL, cfg.CacheDuration())
		if err != nil {
			logger.Warn("redis_unavailable_cache_disabled", "error", err)
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	catalog := tmdb.NewClient(tmdb.Config{
		BaseURL:   cfg.TMDBAPIURL,
		APIKey:    cfg.TMDBAPIKey,
		ReadToken: cfg.TMDBReadToken,
		Timeout:   cfg.TMDBTimeout,
		RateLimit: cfg.TMDBRateLimit,
	}, cache, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(db, catalog, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("api_server_listening", "addr", srv.Addr, "env", cfg.GoEnv, "postgres", cfg.IsPostgres())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown_failed", "error", err)
		}
		logger.Info("server_stopped_gracefully")
	case err := <-errChan:
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}
}

// newRouter wires store, services and handlers onto a gin engine
func newRouter(db *gorm.DB, catalog service.MovieCatalog, logger *slog.Logger) *gin.Engine {
	repo := repository.NewMovieRepository(db)
	movies := service.NewMovieService(repo, logger)
	adder := service.NewAddMovieService(catalog, repo, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/manage/health", handler.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, repo).Check)

	api := r.Group("/api")
	handler.NewMovieHandler(movies).RegisterRoutes(api.Group("/movies"))
	handler.NewCatalogHandler(adder).RegisterRoutes(api.Group("/catalog"))

	return r
}
