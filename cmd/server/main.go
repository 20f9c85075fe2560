package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/HammerMeetNail/microstartup/internal/auth"
	"github.com/HammerMeetNail/microstartup/internal/config"
	"github.com/HammerMeetNail/microstartup/internal/database"
	"github.com/HammerMeetNail/microstartup/internal/handlers"
	"github.com/HammerMeetNail/microstartup/internal/logging"
	"github.com/HammerMeetNail/microstartup/internal/metrics"
	"github.com/HammerMeetNail/microstartup/internal/middleware"
	"github.com/HammerMeetNail/microstartup/internal/services"
	"github.com/HammerMeetNail/microstartup/internal/services/ai"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logging.ParseLevel(cfg.Server.LogLevel)
	if cfg.Server.Debug {
		level = logging.LevelDebug
	}
	logger.SetLevel(level)
	logging.SetDefaultLevel(level)
	logger.Debug("Debug logging enabled", map[string]interface{}{"env": cfg.Server.Environment})

	logger.Info("Starting micro-startup idea server...")

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), cfg.Server.MigrationsDir)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	version, err := migrator.Up()
	_ = migrator.Close()
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("Migrations completed", map[string]interface{}{"version": version})

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	dbAdapter := services.NewPoolAdapter(db.Pool)
	ideaService := services.NewIdeaService(dbAdapter)
	aiService := ai.NewService(cfg, dbAdapter)
	if cfg.AI.Stub {
		logger.Warn("AI_STUB is enabled; ideas are canned responses")
	} else if !aiService.Configured() {
		logger.Warn("GEMINI_API_KEY is not set; every generate call will fail")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(database.NewPoolCollector(db.Pool))
	metrics.RegisterCollectors(registry)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	var limiter *middleware.RateLimiter
	if cfg.AI.RateLimit > 0 {
		logger.Info("Generate rate limit", map[string]interface{}{"per_hour": cfg.AI.RateLimit})
		limiter = middleware.NewGenerateRateLimiter(redisDB.Client, int64(cfg.AI.RateLimit))
	}

	handler := newRouter(routerDeps{
		health:   handlers.NewHealthHandler(db, redisDB, aiService),
		generate: handlers.NewGenerateHandler(aiService, ideaService),
		ideas:    handlers.NewIdeasHandler(ideaService),
		auth:     middleware.NewAuthMiddleware(verifier, cfg.Auth.AnonKey),
		limiter:  limiter,
		registry: registry,
		logger:   logger,
		secure:   cfg.Server.Secure,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Provider calls can take well over 15s.
		WriteTimeout: 95 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
