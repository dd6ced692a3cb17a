package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hariom1711/travelbuddy/internal/auth"
	"github.com/Hariom1711/travelbuddy/internal/config"
	"github.com/Hariom1711/travelbuddy/internal/dashboard"
	"github.com/Hariom1711/travelbuddy/internal/database"
	"github.com/Hariom1711/travelbuddy/internal/handler"
	"github.com/Hariom1711/travelbuddy/internal/jwtutil"
	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/Hariom1711/travelbuddy/internal/profile"
	"github.com/Hariom1711/travelbuddy/internal/server"
	"github.com/Hariom1711/travelbuddy/internal/store"
	"github.com/Hariom1711/travelbuddy/internal/trip"
	"github.com/Hariom1711/travelbuddy/internal/web"
	"go.uber.org/zap"
)

const serviceName = "travelbuddy"

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("Starting TravelBuddy server...", cfg.LogConfig()...)

	repo, closeStore := openStore(cfg, log)
	defer closeStore()

	tokens := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})
	provider := auth.NewProvider(repo, tokens, auth.Config{
		CookieName:   cfg.Auth.SessionCookieName,
		SecureCookie: cfg.Server.IsProduction(),
	})
	enabled := auth.InitProviders(cfg.Auth, cfg.Server.IsProduction(), log)
	log.Info("Auth providers initialized", zap.Strings("federated", enabled))

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	h := handler.New(handler.Options{
		ServiceName: cfg.ServiceName,
		Auth:        provider,
		Profiles:    profile.NewService(repo),
		Dashboards:  dashboard.NewService(repo, nil),
		Trips:       trip.NewService(repo),
		Health:      repo,
	})

	e := server.New(server.Options{
		ServiceName:    cfg.Metrics.Prefix,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Handler:        h,
		Sessions:       provider,
		Renderer:       renderer,
	})

	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// openStore returns the repository selected by DB_DRIVER and a function releasing it
func openStore(cfg *config.Config, log *zap.Logger) (store.Repository, func()) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn("Using in-memory store; data is lost on restart")
		return store.NewMemory(), func() {}
	}

	db, err := database.Open(&cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	return store.New(db), func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}
}
