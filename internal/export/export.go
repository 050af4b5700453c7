// Copyright Altrinid, 2026. All rights reserved.

// Package export writes flattened tables to tabular output files. Writers
// take an ordered column list plus records and persist them; a write
// failure is fatal to the run and surfaces the underlying I/O cause.
// See docs/ARCHITECTURE.md § Export.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/altrinid/IFC-Extractor/internal/flatten"
)

// ErrUnsupportedFormat reports an unknown output format name.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format identifies an output format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// Extension is the conventional file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatCSV: {
		Name:        FormatCSV,
		Extension:   ".csv",
		Description: "Comma-separated values with a header row",
	},
	FormatXLSX: {
		Name:        FormatXLSX,
		Extension:   ".xlsx",
		Description: "Excel workbook with a single worksheet",
	},
	FormatSQLite: {
		Name:        FormatSQLite,
		Extension:   ".db",
		Description: "SQLite database with elements and properties tables",
	},
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// Writer persists one flattened table.
type Writer interface {
	Write(table *flatten.Table) error
}

// ensureDir creates the parent directory of path when it does not exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}
