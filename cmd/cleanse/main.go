// Package main provides the cleanse command: validate the raw export and
// split it into good and bad CSV files without touching the warehouse.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"retailetl/internal/config"
	"retailetl/internal/ingest"
	"retailetl/internal/logger"
	"retailetl/internal/normalizer"
	"retailetl/internal/report"
	"retailetl/internal/sink"
	"retailetl/pkg/manifest"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration (defaults apply when omitted)")
	inputPath := flag.String("input", "", "Input CSV path (overrides config)")
	goodPath := flag.String("good", "", "Accepted-records CSV path (overrides config)")
	badPath := flag.String("bad", "", "Rejected-records CSV path (overrides config)")

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

	if *inputPath != "" {
		cfg.Pipeline.Input.Path = *inputPath
	}

	if *goodPath != "" {
		cfg.Pipeline.Output.GoodPath = *goodPath
	}

	if *badPath != "" {
		cfg.Pipeline.Output.BadPath = *badPath
	}

	pc := &cfg.Pipeline
	log := logger.NewLoggerWithFormat(pc.Logging.Level, pc.Logging.Format)

	log.Info("🚀 Starting cleanse run")
	log.Info(fmt.Sprintf("📍 Source: %s", pc.Input.Path))

	started := time.Now()

	m, err := manifest.Begin(pc.Input.Path)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Manifest failed: %v", err))
		os.Exit(1)
	}

	raw, err := ingest.NewReader(log).ReadFile(pc.Input.Path, pc.Schema.Required)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Ingest failed: %v", err))
		os.Exit(1)
	}

	partition, verdicts, err := normalizer.NewProcessor(pc.Schema, log).Process(raw)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Validation failed: %v", err))
		os.Exit(1)
	}

	writer := sink.NewWriter(log)

	if err := writer.WriteAccepted(pc.Output.GoodPath, partition); err != nil {
		log.Error(fmt.Sprintf("❌ Writing accepted records failed: %v", err))
		os.Exit(1)
	}

	if err := writer.WriteRejected(pc.Output.BadPath, partition); err != nil {
		log.Error(fmt.Sprintf("❌ Writing rejected records failed: %v", err))
		os.Exit(1)
	}

	log.Info("✨ Cleanse complete")

	summary := report.NewSummary(m.RunID, verdicts)
	summary.Duration = time.Since(started)

	fmt.Println()
	fmt.Print(summary.Render())
}
