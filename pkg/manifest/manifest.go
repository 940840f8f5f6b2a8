// Package manifest records provenance for one pipeline run: a run
// identifier, the source file checksum and the stage counts.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest describes one completed (or in-flight) pipeline run.
type Manifest struct {
	RunID        string         `yaml:"run_id"`
	Source       string         `yaml:"source"`
	SourceSHA256 string         `yaml:"source_sha256"`
	StartedAt    time.Time      `yaml:"started_at"`
	FinishedAt   time.Time      `yaml:"finished_at,omitempty"`
	InputRows    int            `yaml:"input_rows"`
	AcceptedRows int            `yaml:"accepted_rows"`
	RejectedRows int            `yaml:"rejected_rows"`
	Tables       map[string]int `yaml:"tables,omitempty"`
}

// Begin starts a manifest for the given source file, fingerprinting its
// content so a run can be traced back to the exact input.
func Begin(source string) (*Manifest, error) {
	sum, err := FileSHA256(source)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint source: %w", err)
	}

	return &Manifest{
		RunID:        uuid.NewString(),
		Source:       source,
		SourceSHA256: sum,
		StartedAt:    time.Now().UTC(),
	}, nil
}

// Finish stamps the completion time.
func (m *Manifest) Finish() {
	m.FinishedAt = time.Now().UTC()
}

// Write saves the manifest as YAML.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// Read loads a manifest from a YAML file.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &m, nil
}

// FileSHA256 computes the hex-encoded SHA-256 of a file's content.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
