// Command freebooks-export takes a one-shot snapshot of the collections and
// writes it to a local XLSX workbook or a Google Sheets spreadsheet.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"freebooks/internal/config"
	"freebooks/internal/export"
	applog "freebooks/internal/log"
	"freebooks/internal/store"
	"freebooks/internal/store/memory"
	"freebooks/internal/store/postgres"
	"freebooks/internal/store/sqlite"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentExport})
	applog.SetDefault(logger)

	var (
		format      = flag.String("format", "xlsx", "export format: xlsx or sheets")
		out         = flag.String("out", "freebooks.xlsx", "output path for the xlsx format")
		spreadsheet = flag.String("spreadsheet", "", "spreadsheet id for the sheets format")
		credentials = flag.String("credentials", "", "service account credentials file for the sheets format")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var backing store.Store
	switch cfg.DataBackend {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer db.Close()
		backing = db
	case "postgres":
		db, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			logger.Error("Failed to open Postgres store", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		backing = db
	default:
		if cfg.SeedDir == "" {
			logger.Error("Memory backend needs SEED_DIR to have anything to export")
			os.Exit(1)
		}
		backing = memory.NewFromDir(cfg.SeedDir, store.Clients, store.Invoices, store.Expenses)
	}

	data := export.Collect(ctx, backing)
	logger.Info("Collected snapshot",
		"clients", len(data.Clients),
		"invoices", len(data.Invoices),
		"expenses", len(data.Expenses))

	switch *format {
	case "xlsx":
		if err := export.WriteXLSX(data, *out); err != nil {
			logger.Error("XLSX export failed", "error", err, "path", *out)
			os.Exit(1)
		}
		logger.Info("Export complete", "format", *format, "path", *out)
	case "sheets":
		writer, err := export.NewSheetsWriter(ctx, *spreadsheet, *credentials)
		if err != nil {
			logger.Error("Sheets client failed", "error", err)
			os.Exit(1)
		}
		if err := writer.Write(ctx, data); err != nil {
			logger.Error("Sheets export failed", "error", err, "spreadsheet", *spreadsheet)
			os.Exit(1)
		}
		logger.Info("Export complete", "format", *format, "spreadsheet", *spreadsheet)
	default:
		logger.Error("Unknown format", "format", *format)
		os.Exit(1)
	}
}
