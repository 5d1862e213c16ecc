package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"prepkit/domain/table"
)

// Column describes one fixture column; an empty cell is missing
type Column struct {
	Name  string
	Type  series.Type
	Cells []string
}

func Ints(name string, cells ...string) Column    { return Column{name, series.Int, cells} }
func Floats(name string, cells ...string) Column  { return Column{name, series.Float, cells} }
func Strings(name string, cells ...string) Column { return Column{name, series.String, cells} }
func Bools(name string, cells ...string) Column   { return Column{name, series.Bool, cells} }

// NewTable builds a table from fixture columns
func NewTable(t testing.TB, columns ...Column) *table.Table {
	t.Helper()
	built := make([]series.Series, len(columns))
	for i, c := range columns {
		present := make([]bool, len(c.Cells))
		for j, cell := range c.Cells {
			present[j] = cell != ""
		}
		built[i] = table.Build(c.Name, c.Type, c.Cells, present)
	}
	tbl, err := table.New(built...)
	require.NoError(t, err)
	return tbl
}

// Cells returns a column as text, missing cells as ""
func Cells(t testing.TB, tbl *table.Table, name string) []string {
	t.Helper()
	s, err := tbl.Col(name)
	require.NoError(t, err)
	out := make([]string, s.Len())
	for i := range out {
		out[i] = table.CellString(s, i)
	}
	return out
}

// WriteCSV writes records to dir/name and returns the path
func WriteCSV(t testing.TB, dir, name string, content string) string {
	t.Helper()
	return WriteFile(t, dir, name, content)
}

// WriteJSON writes a JSON document to dir/name and returns the path
func WriteJSON(t testing.TB, dir, name string, content string) string {
	t.Helper()
	return WriteFile(t, dir, name, content)
}

// WriteFile writes raw content to dir/name and returns the path
func WriteFile(t testing.TB, dir, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteXLSX writes rows into the named sheet of a new workbook. The default
// "Sheet1" always exists and stays first; pass "Sheet1" to fill it.
func WriteXLSX(t testing.TB, dir, name, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}
