package export

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.db")
	require.NoError(t, SQLiteWriter{Path: path}.Write(testTable()))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var elements int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM elements`).Scan(&elements))
	assert.Equal(t, 2, elements)

	// Only non-blank, non-base cells become property rows: the wall's
	// Tag and Pset_A:x.
	var props int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM properties`).Scan(&props))
	assert.Equal(t, 2, props)

	var value string
	require.NoError(t, db.QueryRow(
		`SELECT p.value FROM properties p
		 JOIN elements e ON e.id = p.element_id
		 WHERE e.global_id = 'g1' AND p.name = 'Pset_A:x'`).Scan(&value))
	assert.Equal(t, "1", value)
}

func TestSQLiteWriterReplacesPreviousExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.db")
	require.NoError(t, SQLiteWriter{Path: path}.Write(testTable()))
	require.NoError(t, SQLiteWriter{Path: path}.Write(testTable()))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var elements int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM elements`).Scan(&elements))
	assert.Equal(t, 2, elements, "re-running an export must not duplicate rows")
}
