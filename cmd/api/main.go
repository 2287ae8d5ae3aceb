// Package main is the entry point for the trip store API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/tripstore/internal/config"
	"github.com/pkordes/tripstore/internal/handler"
	"github.com/pkordes/tripstore/internal/kv"
	"github.com/pkordes/tripstore/internal/logging"
	"github.com/pkordes/tripstore/internal/metrics"
	"github.com/pkordes/tripstore/internal/repo"
	"github.com/pkordes/tripstore/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real environment variables always win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger, logCloser := logging.New(logging.Options{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
	})
	defer logCloser.Close()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server exited with error", "error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	// --- Metrics ----------------------------------------------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// --- Backing store ----------------------------------------------------
	// Postgres applies its goose migrations inside kv.Open.
	openCtx, cancelOpen := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelOpen()

	driver, driverCloser, err := kv.Open(openCtx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := driverCloser.Close(); err != nil {
			slog.Error("close backing store", "error", err)
		}
	}()
	slog.Info("backing store opened", "driver", cfg.Store.Driver)

	var store kv.Store = kv.Instrument(driver, m)
	store = kv.WithBreaker(store, cfg.Breaker, logger)
	if cfg.StoreKeyPrefix != "" {
		store = kv.Prefixed(store, cfg.StoreKeyPrefix)
	}

	// --- Data context -----------------------------------------------------
	// Start returns immediately; /healthz reports loaded once the first
	// read of the backing store has finished.
	r := repo.New(store, repo.Options{Logger: logger, Metrics: m})
	dc := service.New(r, service.Options{
		Logger:   logger,
		Metrics:  m,
		Location: cfg.Location,
	})
	dc.Start(context.Background())

	// --- Router -----------------------------------------------------------
	srvHandler := handler.NewServer(handler.FromDataContext(dc), handler.Options{
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Location:     cfg.Location,
	})

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout stays unset so /events streams are not cut off; the
	// other handlers never block on anything but the store lock.
	// Request contexts derive from baseCtx, which is cancelled when Shutdown
	// starts so open /events streams return instead of holding it up.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srvHandler.Routes(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serveErr:
		_ = dc.Close(context.Background())
		return err
	}
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("shutdown did not finish cleanly", "error", err)
	}
	if err := dc.Close(ctx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
