package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/qrinvite/internal/factory"
	redisstorage "github.com/mcoot/qrinvite/internal/storage/redis"
	"github.com/mcoot/qrinvite/internal/web"
)

func main() {
	cfg, err := web.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config
	factoryCfg := factory.Config{
		APIURL:      cfg.APIURL,
		Logger:      logger,
		StorageType: cfg.Storage,
	}
	if cfg.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	web.CheckAPI(context.Background(), app.API, web.HealthCheckTimeout, logger.With(slog.String("api_url", cfg.APIURL)))

	router := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		App:            app,
		TabIdleTimeout: cfg.TabIdleTimeout,
	})
	server := web.NewServer(router, *cfg, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
