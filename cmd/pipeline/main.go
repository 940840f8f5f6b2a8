// Package main provides the unified pipeline command that cleanses the
// retail export and loads the warehouse in one run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"retailetl/internal/config"
	"retailetl/internal/logger"
	"retailetl/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration (defaults apply when omitted)")
	inputPath := flag.String("input", "", "Input CSV path (overrides config)")
	goodPath := flag.String("good", "", "Accepted-records CSV path (overrides config)")
	badPath := flag.String("bad", "", "Rejected-records CSV path (overrides config)")
	dbPath := flag.String("db", "", "Warehouse SQLite path (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	applyOverrides(cfg, *inputPath, *goodPath, *badPath, *dbPath, *logLevel)

	log := logger.NewLoggerWithFormat(cfg.Pipeline.Logging.Level, cfg.Pipeline.Logging.Format)

	log.Info("🚀 Starting retail ETL pipeline")
	log.Info(fmt.Sprintf("📍 Source: %s", cfg.Pipeline.Input.Path))
	log.Info(fmt.Sprintf("🎯 Warehouse: %s", cfg.Pipeline.Output.WarehousePath))

	result, err := pipeline.New(cfg, log).Run(context.Background())
	if err != nil {
		log.Error(fmt.Sprintf("❌ Pipeline failed: %v", err))
		os.Exit(1)
	}

	log.Info("✨ Pipeline complete")
	fmt.Println()
	fmt.Print(result.Summary.Render())
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}

	return config.LoadConfig(path)
}

func applyOverrides(cfg *config.Config, input, good, bad, db, level string) {
	if input != "" {
		cfg.Pipeline.Input.Path = input
	}

	if good != "" {
		cfg.Pipeline.Output.GoodPath = good
	}

	if bad != "" {
		cfg.Pipeline.Output.BadPath = bad
	}

	if db != "" {
		cfg.Pipeline.Output.WarehousePath = db
	}

	if level != "" {
		cfg.Pipeline.Logging.Level = level
	}
}
