package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.xlsx")
	require.NoError(t, XLSXWriter{Path: path, Sheet: "Walls"}.Write(testTable()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Walls")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, testTable().Columns, rows[0])
	assert.Equal(t, "g1", rows[1][0])
	assert.Equal(t, "IFCDOOR", rows[2][1])
}

func TestXLSXWriterDefaultSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.xlsx")
	require.NoError(t, XLSXWriter{Path: path}.Write(testTable()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheet}, f.GetSheetList())
}
