package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-api/config"
	"recipe-api/handlers"
	"recipe-api/logging"
	"recipe-api/media"
	"recipe-api/metrics"
	"recipe-api/middleware"
	"recipe-api/routes"
	"recipe-api/services"
	"recipe-api/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.OpenDB(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}()

	uploader, err := media.New(ctx, cfg.Media)
	if err != nil {
		return err
	}
	log.Info("media uploader ready", "provider", cfg.Media.Provider)

	st := store.New(db)
	hasher := services.NewPasswordHasher(cfg.BcryptCost)
	issuer := middleware.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	authSvc := services.NewAuthService(st, hasher, issuer, log)
	accountSvc := services.NewAccountService(st, hasher, uploader, log)
	recipeSvc := services.NewRecipeService(st, uploader, log)
	favoriteSvc := services.NewFavoriteService(st, log)

	m := metrics.New("recipe_api")
	if sqlDB, err := db.DB(); err == nil {
		if err := m.RegisterDB(sqlDB, cfg.DBDriver); err != nil {
			log.Warn("db stats collector not registered", "error", err)
		}
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(middleware.Recovery(), logging.RequestLogger(log), m.Middleware(), middleware.CORS())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Recipe Sharing API",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	routes.SetupRoutes(r, routes.Handlers{
		Auth:    handlers.NewAuthHandler(authSvc),
		Users:   handlers.NewUserHandler(accountSvc, favoriteSvc, cfg.MaxUploadBytes),
		Recipes: handlers.NewRecipeHandler(recipeSvc, favoriteSvc, cfg.MaxUploadBytes),
	}, issuer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", "http://localhost:"+cfg.Port, "mode", cfg.GinMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
