package export

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/altrinid/IFC-Extractor/internal/flatten"
)

// SQLiteWriter persists a table into a SQLite database so exports can be
// queried without re-reading the source model. Base attributes go into the
// elements table; every other column becomes a row in properties, keyed by
// the element and the flattened column name ("Pset_A:x", "Tag", ...).
type SQLiteWriter struct {
	Path string
}

func (w SQLiteWriter) Write(table *flatten.Table) error {
	if err := ensureDir(w.Path); err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", w.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("opening database %s: %w", w.Path, err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return err
	}

	base := make(map[string]struct{}, len(flatten.BaseColumns))
	for _, c := range flatten.BaseColumns {
		base[c] = struct{}{}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Re-running an export replaces the previous contents.
	for _, stmt := range []string{`DELETE FROM properties`, `DELETE FROM elements`} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clearing previous export: %w", err)
		}
	}

	insEl, err := tx.Prepare(
		`INSERT INTO elements (global_id, entity, name, level) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing element insert: %w", err)
	}
	defer insEl.Close()

	insProp, err := tx.Prepare(
		`INSERT INTO properties (element_id, name, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing property insert: %w", err)
	}
	defer insProp.Close()

	for _, rec := range table.Records {
		res, err := insEl.Exec(
			rec[flatten.ColGlobalID], rec[flatten.ColEntity],
			rec[flatten.ColName], rec[flatten.ColLevel],
		)
		if err != nil {
			return fmt.Errorf("inserting element %s: %w", rec[flatten.ColGlobalID], err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("resolving element rowid: %w", err)
		}
		for _, col := range table.Columns {
			if _, isBase := base[col]; isBase || rec[col] == "" {
				continue
			}
			if _, err := insProp.Exec(id, col, rec[col]); err != nil {
				return fmt.Errorf("inserting property %s of %s: %w",
					col, rec[flatten.ColGlobalID], err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

func createSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS elements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			global_id TEXT NOT NULL,
			entity TEXT NOT NULL,
			name TEXT,
			level TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS properties (
			element_id INTEGER NOT NULL REFERENCES elements(id),
			name TEXT NOT NULL,
			value TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_element ON properties(element_id)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_name ON properties(name)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
