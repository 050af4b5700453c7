package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/altrinid/IFC-Extractor/internal/flatten"
)

// DefaultSheet is the worksheet name used when none is configured.
const DefaultSheet = "Elements"

// XLSXWriter writes a table as an Excel workbook with a single worksheet.
type XLSXWriter struct {
	Path  string
	Sheet string
}

func (w XLSXWriter) Write(table *flatten.Table) error {
	sheet := w.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet %q: %w", sheet, err)
	}

	row := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		row[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}

	for r, rec := range table.Records {
		for i, col := range table.Columns {
			row[i] = rec[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("addressing xlsx row %d: %w", r+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing xlsx row %d: %w", r+2, err)
		}
	}

	if err := ensureDir(w.Path); err != nil {
		return err
	}
	if err := f.SaveAs(w.Path); err != nil {
		return fmt.Errorf("writing xlsx %s: %w", w.Path, err)
	}
	return nil
}
