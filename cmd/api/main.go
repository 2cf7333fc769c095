package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fitsage/server/pkg/activity"
	"github.com/fitsage/server/pkg/api"
	"github.com/fitsage/server/pkg/bootstrap"
	sentryutil "github.com/fitsage/server/pkg/infrastructure/sentry"
	"github.com/fitsage/server/pkg/recommendation"
	"github.com/fitsage/server/pkg/user"
)

func gracefulShutdown(srv *http.Server, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	slog.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	done <- true
}

func main() {
	// Local development convenience; in Cloud Run the env is already set.
	_ = godotenv.Load()

	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		slog.Error("Service init failed", "error", err)
		os.Exit(1)
	}

	logger := bootstrap.NewLogger("api")

	if err := sentryutil.Init(sentryutil.Config{
		DSN:         os.Getenv("SENTRY_DSN"),
		Environment: os.Getenv("ENVIRONMENT"),
	}, logger); err != nil {
		logger.Warn("Sentry init failed, continuing without error reporting", "error", err)
	}
	defer sentryutil.Flush(2 * time.Second)
	server := api.NewServer(
		activity.NewService(svc.DB, svc.Pub),
		user.NewService(svc.DB),
		recommendation.NewQueryService(svc.DB),
		logger,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      server,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	done := make(chan bool, 1)
	go gracefulShutdown(httpServer, done)

	logger.Info("API server listening", "port", port)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server error", "error", err)
		os.Exit(1)
	}

	<-done
	logger.Info("Graceful shutdown complete")
}
