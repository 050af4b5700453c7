// Copyright Altrinid, 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// RunReport is the on-disk summary of one extraction run. Kept next to the
// exported tables, it records what produced them and how complete the run
// was, without requiring the source model to be reopened.
type RunReport struct {
	// Source is the path of the model file the run read.
	Source string `yaml:"source"`

	// Schema is the model's schema identifier (e.g. "IFC4"), if present.
	Schema string `yaml:"schema,omitempty"`

	// Classes is the class filter that selected the elements.
	Classes []string `yaml:"classes,omitempty"`

	// Attributes lists the extra top-level attributes requested.
	Attributes []string `yaml:"attributes,omitempty"`

	// Columns is the full ordered column set of the export.
	Columns []string `yaml:"columns"`

	// Rows is the number of records written.
	Rows int `yaml:"rows"`

	// Skipped counts elements dropped as unreadable.
	Skipped int `yaml:"skipped"`

	// Outputs lists the files the run wrote.
	Outputs []string `yaml:"outputs"`

	// Timestamp records when the run finished.
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteRunReport saves a run report to a YAML file.
func WriteRunReport(path string, report RunReport) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report %s: %w", path, err)
	}
	return nil
}

// ReadRunReport loads a previously written run report.
func ReadRunReport(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run report %s: %w", path, err)
	}
	var report RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing run report %s: %w", path, err)
	}
	return &report, nil
}
