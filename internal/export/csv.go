package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/altrinid/IFC-Extractor/internal/flatten"
)

// CSVWriter writes a table as UTF-8 CSV with a header row.
type CSVWriter struct {
	Path string
}

func (w CSVWriter) Write(table *flatten.Table) error {
	if err := ensureDir(w.Path); err != nil {
		return err
	}
	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("creating csv %s: %w", w.Path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(table.Columns); err != nil {
		f.Close()
		return fmt.Errorf("writing csv header: %w", err)
	}
	row := make([]string, len(table.Columns))
	for _, rec := range table.Records {
		for i, col := range table.Columns {
			row[i] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing csv %s: %w", w.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing csv %s: %w", w.Path, err)
	}
	return nil
}
