// Package config provides configuration management for the ETL pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"retailetl/internal/models"
)

// Configuration validation errors.
var (
	ErrMissingInputPath     = errors.New("input.path is required")
	ErrMissingGoodPath      = errors.New("output.good_path is required")
	ErrMissingBadPath       = errors.New("output.bad_path is required")
	ErrMissingWarehousePath = errors.New("output.warehouse_path is required")
	ErrNoRequiredColumns    = errors.New("schema.required must list at least one column")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// PipelineConfig contains pipeline-specific settings.
type PipelineConfig struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Schema  SchemaConfig  `yaml:"schema"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig defines the source dataset.
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig defines where run artifacts are written.
type OutputConfig struct {
	GoodPath      string `yaml:"good_path"`
	BadPath       string `yaml:"bad_path"`
	WarehousePath string `yaml:"warehouse_path"`
	ManifestPath  string `yaml:"manifest_path"`
}

// SchemaConfig declares the column roles driving normalization and
// validation. Columns not listed under any role are treated as free text.
type SchemaConfig struct {
	Required         []string `yaml:"required"`
	DateColumns      []string `yaml:"date_columns"`
	TimeColumns      []string `yaml:"time_columns"`
	NumericColumns   []string `yaml:"numeric_columns"`
	PhoneColumns     []string `yaml:"phone_columns"`
	CriticalKeywords []string `yaml:"critical_keywords"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration matching the retail transaction
// export. A config file only needs to override what differs.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Input: InputConfig{
				Path: "retail_data.csv",
			},
			Output: OutputConfig{
				GoodPath:      "output/good_data.csv",
				BadPath:       "output/bad_data.csv",
				WarehousePath: "output/retail.db",
				ManifestPath:  "output/run_manifest.yaml",
			},
			Schema: SchemaConfig{
				Required: []string{
					models.ColTransactionID,
					models.ColCustomerID,
					models.ColDate,
					models.ColTotalAmount,
				},
				DateColumns: []string{models.ColDate},
				TimeColumns: []string{models.ColTime},
				NumericColumns: []string{
					models.ColAge,
					models.ColIncome,
					models.ColYear,
					models.ColTotalPurchases,
					models.ColAmount,
					models.ColTotalAmount,
					models.ColRatings,
				},
				PhoneColumns:     []string{models.ColPhone},
				CriticalKeywords: []string{"price", "amount", "quantity", "total"},
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file layered over the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	p := &c.Pipeline

	if p.Input.Path == "" {
		return ErrMissingInputPath
	}

	if p.Output.GoodPath == "" {
		return ErrMissingGoodPath
	}

	if p.Output.BadPath == "" {
		return ErrMissingBadPath
	}

	if p.Output.WarehousePath == "" {
		return ErrMissingWarehousePath
	}

	if len(p.Schema.Required) == 0 {
		return ErrNoRequiredColumns
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[p.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if p.Logging.Format != "text" && p.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// CriticalColumns returns the numeric columns whose name contains one of the
// critical keywords. The zero-value business rule applies to these columns.
func (s *SchemaConfig) CriticalColumns() []string {
	var critical []string

	for _, col := range s.NumericColumns {
		lower := strings.ToLower(col)
		for _, kw := range s.CriticalKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				critical = append(critical, col)
				break
			}
		}
	}

	return critical
}

// RoleOf returns the normalizer role for a column.
func (s *SchemaConfig) RoleOf(col string) models.Kind {
	for _, c := range s.DateColumns {
		if c == col {
			return models.KindDate
		}
	}

	for _, c := range s.TimeColumns {
		if c == col {
			return models.KindTime
		}
	}

	for _, c := range s.NumericColumns {
		if c == col {
			return models.KindNumeric
		}
	}

	for _, c := range s.PhoneColumns {
		if c == col {
			return models.KindPhone
		}
	}

	return models.KindText
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Warehouse: %s, RequiredColumns: %d}",
		c.Pipeline.Input.Path,
		c.Pipeline.Output.WarehousePath,
		len(c.Pipeline.Schema.Required),
	)
}
