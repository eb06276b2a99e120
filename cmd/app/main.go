package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	gormDB, err := postgres.Open(configs.Database())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, app, configs.HTTPPort, logger)

	jobManager.StopAll()
	if err = app.Close(); err != nil {
		logger.Error("Failed to close application", "error", err)
	}
	logger.Info("Dispatch service stopped")
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// startWebServer serves until ctx is done, then drains in-flight requests.
func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	go func() {
		logger.Info("HTTP server listening", "port", port, "warehouses", app.Registry().Len())
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", startErr)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
