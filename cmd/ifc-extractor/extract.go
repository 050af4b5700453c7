package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/altrinid/IFC-Extractor/internal/export"
	"github.com/altrinid/IFC-Extractor/internal/flatten"
	"github.com/altrinid/IFC-Extractor/internal/model"
	"github.com/altrinid/IFC-Extractor/pkg/types"
)

// defaultCSV is written when no output flag is given.
const defaultCSV = "ifc_elements.csv"

var extractCmd = &cobra.Command{
	Use:   "extract <model.ifc>",
	Short: "Flatten element attributes and property sets to tabular output",
	Long: `Extract opens an IFC model, selects elements by class, and writes one row
per element. Columns are the base attributes (GlobalId, Entity, Name, Level),
the requested top-level attributes, and one "{group}:{key}" column for every
property or quantity seen anywhere in the batch, in first-encounter order.

Cells an element has no value for stay blank. Elements that cannot be read
are skipped and counted, never fatal. Without --csv, --xlsx, or --sqlite the
result goes to ` + defaultCSV + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("classes", "c", "IfcWall,IfcDoor,IfcWindow", "comma-separated element classes (use * for all)")
	extractCmd.Flags().StringP("props", "p", "PredefinedType,Tag", "comma-separated top-level attributes to include")
	extractCmd.Flags().Int("limit", 0, "limit number of elements (0 = no limit)")
	extractCmd.Flags().String("csv", "", "output CSV path")
	extractCmd.Flags().String("xlsx", "", "output Excel path")
	extractCmd.Flags().String("sqlite", "", "output SQLite database path")
	extractCmd.Flags().String("sheet", export.DefaultSheet, "Excel sheet name")
	extractCmd.Flags().String("report", "", "write a YAML run report to this path")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := types.ExtractConfig{
		Classes:    splitList(stringSetting(cmd, "classes", "extract.classes")),
		Attributes: splitList(stringSetting(cmd, "props", "extract.props")),
		Limit:      intSetting(cmd, "limit", "extract.limit"),
	}
	sheet := stringSetting(cmd, "sheet", "extract.sheet")
	csvPath, _ := cmd.Flags().GetString("csv")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	sqlitePath, _ := cmd.Flags().GetString("sqlite")
	reportPath, _ := cmd.Flags().GetString("report")

	m, err := model.Open(args[0])
	if err != nil {
		return err
	}

	table, summary := flatten.Flatten(
		m.Elements(),
		flatten.NewClassFilter(cfg.Classes),
		cfg.Attributes,
		flatten.Options{Limit: cfg.Limit},
	)
	if summary.Skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d unreadable element(s)\n", summary.Skipped)
	}

	type output struct {
		format export.Format
		cfg    types.OutputConfig
	}
	var outputs []output
	if csvPath != "" {
		outputs = append(outputs, output{export.FormatCSV, types.OutputConfig{Path: csvPath}})
	}
	if xlsxPath != "" {
		outputs = append(outputs, output{export.FormatXLSX, types.OutputConfig{Path: xlsxPath, Sheet: sheet}})
	}
	if sqlitePath != "" {
		outputs = append(outputs, output{export.FormatSQLite, types.OutputConfig{Path: sqlitePath}})
	}
	if len(outputs) == 0 {
		outputs = append(outputs, output{export.FormatCSV, types.OutputConfig{Path: defaultCSV}})
	}

	written := make([]string, 0, len(outputs))
	for _, o := range outputs {
		var w export.Writer
		switch o.format {
		case export.FormatCSV:
			w = export.CSVWriter{Path: o.cfg.Path}
		case export.FormatXLSX:
			w = export.XLSXWriter{Path: o.cfg.Path, Sheet: o.cfg.Sheet}
		case export.FormatSQLite:
			w = export.SQLiteWriter{Path: o.cfg.Path}
		}
		if err := w.Write(table); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s %s (%d rows)\n", o.format, o.cfg.Path, summary.Rows)
		written = append(written, o.cfg.Path)
	}

	if reportPath != "" {
		report := export.RunReport{
			Source:     args[0],
			Schema:     m.Schema(),
			Classes:    cfg.Classes,
			Attributes: cfg.Attributes,
			Columns:    table.Columns,
			Rows:       summary.Rows,
			Skipped:    summary.Skipped,
			Outputs:    written,
			Timestamp:  time.Now().UTC(),
		}
		if err := export.WriteRunReport(reportPath, report); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote report %s\n", reportPath)
	}

	return nil
}

// splitList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
