package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackrabbitrecords/backend/pkg/cms/api"
	"github.com/jackrabbitrecords/backend/pkg/cms/config"
	"github.com/jackrabbitrecords/backend/pkg/cms/youtube"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc, closeRepo, err := cfg.BuildService(ctx)
	if err != nil {
		slog.Error("failed to build service", "err", err)
		os.Exit(1)
	}
	defer closeRepo()

	var checker *youtube.Client
	if cfg.YouTubeAPIKey != "" {
		checker = youtube.NewClient(cfg.YouTubeAPIKey)
	}

	server := api.NewHTTPServer(svc, checker, cfg)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: server.Routes(),
	}

	go func() {
		slog.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Environment,
			"db", cfg.DB.Type,
			"storage", cfg.Storage.Backend)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
