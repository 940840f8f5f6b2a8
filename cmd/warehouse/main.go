// Package main provides the warehouse command: project an already-cleansed
// good-data CSV into the five normalized tables and load them into SQLite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"retailetl/internal/builder"
	"retailetl/internal/config"
	"retailetl/internal/ingest"
	"retailetl/internal/logger"
	"retailetl/internal/normalizer"
	"retailetl/internal/warehouse"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration (defaults apply when omitted)")
	inputPath := flag.String("input", "", "Cleansed good-data CSV path (overrides config good_path)")
	dbPath := flag.String("db", "", "Warehouse SQLite path (overrides config)")

	flag.Parse()

	cfg := config.DefaultConfig()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	pc := &cfg.Pipeline

	source := pc.Output.GoodPath
	if *inputPath != "" {
		source = *inputPath
	}

	if *dbPath != "" {
		pc.Output.WarehousePath = *dbPath
	}

	log := logger.NewLoggerWithFormat(pc.Logging.Level, pc.Logging.Format)

	log.Info("🚀 Starting warehouse load")
	log.Info(fmt.Sprintf("📍 Source: %s", source))
	log.Info(fmt.Sprintf("🎯 Warehouse: %s", pc.Output.WarehousePath))

	raw, err := ingest.NewReader(log).ReadFile(source, pc.Schema.Required)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Ingest failed: %v", err))
		os.Exit(1)
	}

	// The input is expected to be pre-cleansed; normalization here only
	// restores the typed values. Anything still rejected is reported and
	// excluded.
	partition, _, err := normalizer.NewProcessor(pc.Schema, log).Process(raw)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Normalization failed: %v", err))
		os.Exit(1)
	}

	if len(partition.Rejected) > 0 {
		log.Warn(fmt.Sprintf("⚠️  %d rows in the cleansed input still failed validation", len(partition.Rejected)))
	}

	tables, err := builder.NewBuilder(log).BuildAll(partition.Accepted)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Table build failed: %v", err))
		os.Exit(1)
	}

	ctx := context.Background()

	loader, err := warehouse.Open(pc.Output.WarehousePath, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Warehouse open failed: %v", err))
		os.Exit(1)
	}
	defer loader.Close()

	if err := loader.Init(ctx); err != nil {
		log.Error(fmt.Sprintf("❌ Schema creation failed: %v", err))
		os.Exit(1)
	}

	if err := loader.LoadAll(ctx, tables); err != nil {
		log.Error(fmt.Sprintf("❌ Load failed: %v", err))
		os.Exit(1)
	}

	log.Info("✨ Warehouse load complete")
}
