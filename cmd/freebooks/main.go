package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"freebooks/internal/config"
	"freebooks/internal/events"
	apphttp "freebooks/internal/http"
	"freebooks/internal/ledger"
	applog "freebooks/internal/log"
	"freebooks/internal/store"
	"freebooks/internal/store/memory"
	"freebooks/internal/store/postgres"
	"freebooks/internal/store/sqlite"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var (
		backing store.Store
		closeFn func() error
	)
	switch cfg.DataBackend {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		backing, closeFn = db, db.Close
		logger.Info("Initialized sqlite backend", "backend", cfg.DataBackend, "path", cfg.SQLiteDBPath)
	case "postgres":
		db, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			logger.Error("Failed to open Postgres store", "error", err)
			os.Exit(1)
		}
		backing, closeFn = db, db.Close
		logger.Info("Initialized postgres backend", "backend", cfg.DataBackend)
	default:
		if cfg.SeedDir != "" {
			backing = memory.NewFromDir(cfg.SeedDir, store.Clients, store.Invoices, store.Expenses)
		} else {
			backing = memory.New()
		}
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend, "seed_dir", cfg.SeedDir)
	}
	if closeFn != nil {
		defer func() { _ = closeFn() }()
	}

	// Messaging is optional: without a broker the service runs store-only.
	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without messaging", "error", err)
		} else {
			publisher = client
			defer client.Close()
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	svc := ledger.New(backing, publisher)
	srv := apphttp.NewServer(":"+cfg.Port, svc)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting freebooks server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
