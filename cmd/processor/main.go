// Command processor runs the aggregation pipeline once from the command
// line and writes the derived tables to disk.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"ecomdash/internal/config"
	"ecomdash/internal/dataset"
	"ecomdash/internal/infrastructure"
	"ecomdash/internal/services"
)

func main() {
	dataDir := flag.String("data", "", "dataset directory (defaults to the configured data dir)")
	from := flag.String("from", "", "range start, YYYY-MM-DD (defaults to the earliest purchase date)")
	to := flag.String("to", "", "range end, YYYY-MM-DD (defaults to the latest purchase date)")
	format := flag.String("format", services.FormatCSV, "output format: csv or xlsx")
	out := flag.String("out", "", "output directory (defaults to the configured reports dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if *dataDir == "" {
		*dataDir = cfg.Paths.DataDir
	}
	if *out == "" {
		*out = cfg.Paths.ReportsDir
	}

	loader := dataset.NewLoader(logger)
	raw, err := loader.Load(*dataDir)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	tables := dataset.Clean(raw, logger)

	stopwords, err := dataset.LoadStopwords(cfg.Paths.StopwordsFile)
	if err != nil {
		logger.Error("failed to load stopwords", "error", err)
		os.Exit(1)
	}

	// An unspecified range covers the whole snapshot.
	if *from == "" || *to == "" {
		min, max, ok := tables.PurchaseBounds()
		if !ok {
			logger.Error("dataset has no purchase timestamps")
			os.Exit(1)
		}
		if *from == "" {
			*from = min.Format(services.DateLayout)
		}
		if *to == "" {
			*to = max.Format(services.DateLayout)
		}
	}

	dashboards := services.NewDashboardService(tables, stopwords, logger, nil)
	exports := services.NewExportService(dashboards, *out, logger)

	result, err := exports.Export(context.Background(), services.DateRangeParams{From: *from, To: *to}, *format)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	logger.Info("export complete",
		slog.String("format", result.Format),
		slog.String("path", result.Path))
}
