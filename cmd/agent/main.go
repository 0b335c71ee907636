// Package main runs the complaint client agent: a localhost REST/WebSocket
// surface over the offline submission queue and its sync machinery. The UI
// stays a thin shell; everything durable lives here.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/complainthub/client-go/cmd/agent/handlers"
	"github.com/complainthub/client-go/internal/api"
	"github.com/complainthub/client-go/internal/complaints"
	"github.com/complainthub/client-go/internal/config"
	"github.com/complainthub/client-go/internal/connectivity"
	"github.com/complainthub/client-go/internal/db"
	"github.com/complainthub/client-go/internal/events"
	"github.com/complainthub/client-go/internal/logging"
	"github.com/complainthub/client-go/internal/queue"
	syncpkg "github.com/complainthub/client-go/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error("Invalid configuration", err, nil)
		os.Exit(1)
	}

	logging.Init(os.Stdout, logLevel(cfg.LogLevel))

	database, err := db.Open(cfg.DataDir)
	if err != nil {
		logging.ErrorWithCode("Failed to open local database", "DATABASE_ERROR", err, nil)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logging.ErrorWithCode("Failed to migrate local database", "MIGRATION_FAILED", err, nil)
		os.Exit(1)
	}

	store := queue.NewStore(database)
	client := api.NewClient(cfg.APIBaseURL, cfg.AuthToken, cfg.SubmitTimeout)
	monitor := connectivity.NewMonitor()
	bus := events.NewBus()
	coordinator := syncpkg.NewCoordinator(store, client, bus, cfg.SyncItemTimeout)
	gateway := complaints.NewGateway(client, store, monitor, bus)

	hub := NewWSHub()
	bus.Subscribe(hub.Forward)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go monitor.Run(ctx, client, cfg.ProbeInterval, cfg.ProbeTimeout)
	go coordinator.Run(ctx, monitor)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	complaintHandler := handlers.NewComplaintHandler(gateway, store)
	syncHandler := handlers.NewSyncHandler(coordinator)

	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"complaint-agent"}`))
	})
	router.Post("/api/complaints", complaintHandler.Submit)
	router.Get("/api/complaints/offline", complaintHandler.ListOffline)
	router.Get("/api/sync/status", syncHandler.Status)
	router.Post("/api/sync/now", syncHandler.SyncNow)
	router.Get("/api/events", hub.Handler())

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Info("Complaint agent listening", logging.Fields{"addr": cfg.ListenAddr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Server failed", err, nil)
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}

	logging.Info("Shutting down", nil)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("Shutdown failed", err, nil)
	}
}

// logLevel maps the configured level name to a logging level.
func logLevel(name string) logging.LogLevel {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return logging.LevelDebug
	case "WARN":
		return logging.LevelWarn
	case "ERROR":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
