package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"sfa/internal/db"
	"sfa/internal/domain/portfolio"
	"sfa/internal/platform/config"
)

// importer loads a customer portfolio workbook (xlsx) into the database.
//
//	importer -file cartera.xlsx
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	file := flag.String("file", "", "path to the portfolio workbook")
	flag.Parse()
	if *file == "" {
		slog.Error("missing -file argument")
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	importer := portfolio.NewImporter(portfolio.NewStore(pool), logger)
	summary, err := importer.ImportFile(ctx, *file)
	if err != nil {
		slog.Error("import failed", "err", err)
		os.Exit(1)
	}
	slog.Info("import complete",
		"rows", summary.Rows,
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", summary.Skipped)
}
