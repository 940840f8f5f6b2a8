// Package pipeline wires the stages of one ETL run: ingest, cleanse,
// build, load. Each run owns its own context object; no state is shared
// between runs.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"retailetl/internal/builder"
	"retailetl/internal/config"
	"retailetl/internal/ingest"
	"retailetl/internal/logger"
	"retailetl/internal/models"
	"retailetl/internal/normalizer"
	"retailetl/internal/report"
	"retailetl/internal/sink"
	"retailetl/internal/warehouse"
	"retailetl/pkg/manifest"
)

// Pipeline runs the full ETL flow for one configuration.
type Pipeline struct {
	cfg    *config.Config
	logger *logger.Logger
}

// Result carries everything one run produced.
type Result struct {
	Manifest  *manifest.Manifest
	Summary   *report.Summary
	Tables    *models.Tables
	Partition *normalizer.Partition
}

// New creates a pipeline.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: log}
}

// Run executes one complete pipeline run. A run either completes and emits
// the five tables plus the rejects set, or aborts entirely on a structural
// error.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	pc := &p.cfg.Pipeline

	m, err := manifest.Begin(pc.Input.Path)
	if err != nil {
		return nil, err
	}

	log := p.logger.With("run_id", m.RunID)

	reader := ingest.NewReader(log)
	raw, err := reader.ReadFile(pc.Input.Path, pc.Schema.Required)
	if err != nil {
		return nil, err
	}

	processor := normalizer.NewProcessor(pc.Schema, log)
	partition, verdicts, err := processor.Process(raw)
	if err != nil {
		return nil, err
	}

	m.InputRows = len(raw.Rows)
	m.AcceptedRows = len(partition.Accepted)
	m.RejectedRows = len(partition.Rejected)

	writer := sink.NewWriter(log)
	if err := writer.WriteAccepted(pc.Output.GoodPath, partition); err != nil {
		return nil, err
	}

	if err := writer.WriteRejected(pc.Output.BadPath, partition); err != nil {
		return nil, err
	}

	tables, err := builder.NewBuilder(log).BuildAll(partition.Accepted)
	if err != nil {
		return nil, err
	}

	loader, err := warehouse.Open(pc.Output.WarehousePath, log)
	if err != nil {
		return nil, err
	}
	defer loader.Close()

	if err := loader.Init(ctx); err != nil {
		return nil, err
	}

	if err := loader.LoadAll(ctx, tables); err != nil {
		return nil, err
	}

	counts, err := loader.TableCounts(ctx)
	if err != nil {
		return nil, err
	}

	m.Tables = counts
	m.Finish()

	if pc.Output.ManifestPath != "" {
		if err := m.Write(pc.Output.ManifestPath); err != nil {
			return nil, fmt.Errorf("failed to record run manifest: %w", err)
		}
	}

	summary := report.NewSummary(m.RunID, verdicts)
	summary.AddTableCount("customer_master", len(tables.CustomerMaster))
	summary.AddTableCount("product_master", len(tables.ProductMaster))
	summary.AddTableCount("sales_transactions", len(tables.SalesTransactions))
	summary.AddTableCount("customer_analytics", len(tables.CustomerAnalytics))
	summary.AddTableCount("loyalty_transactions", len(tables.LoyaltyTransactions))
	summary.Duration = time.Since(started)

	return &Result{
		Manifest:  m,
		Summary:   summary,
		Tables:    tables,
		Partition: partition,
	}, nil
}
