package reader

import (
	"context"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepkit/domain/core"
	"prepkit/domain/table"
	"prepkit/internal"
	"prepkit/internal/config"
	"prepkit/internal/testkit"
)

func newTestReader(config ReaderConfig) *DataReader {
	return NewDataReader(config, internal.Discard)
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		path    string
		want    FileType
		wantErr bool
	}{
		{"data.csv", FileTypeCSV, false},
		{"DATA.CSV", FileTypeCSV, false},
		{"book.xlsx", FileTypeExcel, false},
		{"book.XLS", FileTypeExcel, false},
		{"records.Json", FileTypeJSON, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFileType(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultReaderConfigCopiesNAList(t *testing.T) {
	c := DefaultReaderConfig()
	assert.Equal(t, config.DefaultNAValues, c.NAValues)
	assert.Empty(t, c.Sheet)

	c.NAValues[0] = "changed"
	assert.NotEqual(t, "changed", config.DefaultNAValues[0])
}

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteCSV(t, dir, "people.csv",
		"name,age,score,member,empty\n"+
			"alice,30,1.5,true,\n"+
			"bob,,2.5,False,\n"+
			"carol,41,NA,TRUE,\n")

	tbl, err := newTestReader(DefaultReaderConfig()).Read(context.Background(), path)
	require.NoError(t, err)

	rows, cols := tbl.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, []string{"name", "age", "score", "member", "empty"}, tbl.Names())
	assert.Equal(t, []series.Type{series.String, series.Int, series.Float, series.Bool, series.Float}, tbl.Types())
	assert.Equal(t, []string{"30", "", "41"}, testkit.Cells(t, tbl, "age"))
	assert.Equal(t, []string{"1.5", "2.5", ""}, testkit.Cells(t, tbl, "score"))
	assert.Equal(t, []string{"true", "false", "true"}, testkit.Cells(t, tbl, "member"))
}

func TestReadCSVHeaderFixups(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteCSV(t, dir, "dupes.csv", "a,a,,a\n1,2,3,4\n5,6\n")

	tbl, err := newTestReader(DefaultReaderConfig()).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2", "a.2"}, tbl.Names())
	assert.Equal(t, []string{"4", ""}, testkit.Cells(t, tbl, "a.2"))
}

func TestReadCSVCustomNAValues(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteCSV(t, dir, "na.csv", "x,y\n1,?\n2,b\n")

	tbl, err := newTestReader(ReaderConfig{NAValues: []string{"?"}}).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "b"}, testkit.Cells(t, tbl, "y"))
}

func TestReadCSVNaNTextOutsideNAList(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteCSV(t, dir, "nan.csv", "x,y\n1,NaN\n2,?\nNaN,b\n")

	tbl, err := newTestReader(ReaderConfig{NAValues: []string{"?"}}).Read(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"NaN", "", "b"}, testkit.Cells(t, tbl, "y"))
	y, err := tbl.Col("y")
	require.NoError(t, err)
	assert.True(t, table.Present(y, 0))
	assert.False(t, table.Present(y, 1))

	// "NaN" is text here, so x cannot be numeric
	assert.Equal(t, series.String, tbl.Types()[0])
	assert.Equal(t, []string{"1", "2", "NaN"}, testkit.Cells(t, tbl, "x"))
}

func TestReadCSVDefaultNAListStillMarksNaN(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteCSV(t, dir, "nan.csv", "x\n1\nNaN\n")

	tbl, err := newTestReader(DefaultReaderConfig()).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, series.Int, tbl.Types()[0])
	assert.Equal(t, []string{"1", ""}, testkit.Cells(t, tbl, "x"))
}

func TestReadCSVFailures(t *testing.T) {
	dir := t.TempDir()
	reader := newTestReader(DefaultReaderConfig())

	tests := map[string]string{
		"empty.csv":     "",
		"wide.csv":      "a,b\n1,2,3\n",
		"badquotes.csv": "a,b\n\"1,2\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := testkit.WriteCSV(t, dir, name, content)
			_, err := reader.Read(context.Background(), path)
			assert.ErrorIs(t, err, core.ErrReadFailure)
		})
	}

	_, err := reader.Read(context.Background(), dir+"/missing.csv")
	assert.ErrorIs(t, err, core.ErrReadFailure)
}

func TestReadUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteFile(t, dir, "table.parquet", "PAR1")

	_, err := newTestReader(DefaultReaderConfig()).Read(context.Background(), path)
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
	assert.True(t, core.IsRecoverable(err))
}

func TestReadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestReader(DefaultReaderConfig()).Read(ctx, "whatever.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "book.xlsx", "Sheet1", [][]interface{}{
		{"city", "population", "area"},
		{"Oslo", 709000, 454.0},
		{"Bergen", 286000, nil},
		{"Oslo", 709000, 454.0},
	})

	tbl, err := newTestReader(DefaultReaderConfig()).Read(context.Background(), path)
	require.NoError(t, err)

	rows, cols := tbl.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []string{"city", "population", "area"}, tbl.Names())
	assert.Equal(t, []series.Type{series.String, series.Int, series.Int}, tbl.Types())
	assert.Equal(t, []string{"454", "", "454"}, testkit.Cells(t, tbl, "area"))
}

func TestReadXLSXNamedSheet(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteXLSX(t, dir, "book.xlsx", "Data", [][]interface{}{
		{"k", "v"},
		{"a", 1.25},
	})

	config := DefaultReaderConfig()
	config.Sheet = "Data"
	tbl, err := newTestReader(config).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.25"}, testkit.Cells(t, tbl, "v"))

	config.Sheet = "Nope"
	_, err = newTestReader(config).Read(context.Background(), path)
	assert.ErrorIs(t, err, core.ErrReadFailure)
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteFile(t, dir, "legacy.xls", "not a workbook")

	_, err := newTestReader(DefaultReaderConfig()).Read(context.Background(), path)
	assert.ErrorIs(t, err, core.ErrReadFailure)
}

func TestReadJSONRecords(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteJSON(t, dir, "records.json", `[
		{"zeta": "a", "alpha": 1, "flag": true},
		{"zeta": null, "alpha": 2.5, "flag": false, "extra": "x"},
		{"alpha": 3}
	]`)

	tbl, err := newTestReader(DefaultReaderConfig()).Read(context.Background(), path)
	require.NoError(t, err)

	rows, cols := tbl.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, []string{"zeta", "alpha", "flag", "extra"}, tbl.Names(), "key order is preserved")
	assert.Equal(t, []string{"a", "", ""}, testkit.Cells(t, tbl, "zeta"))
	assert.Equal(t, series.Float, tbl.Types()[1])
	assert.Equal(t, series.Bool, tbl.Types()[2])
	assert.Equal(t, []string{"", "x", ""}, testkit.Cells(t, tbl, "extra"))
}

func TestReadJSONKeepsNaNString(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteJSON(t, dir, "nan.json", `[{"s": "NaN"}, {"s": "x"}, {"s": null}]`)

	tbl, err := newTestReader(ReaderConfig{}).Read(context.Background(), path)
	require.NoError(t, err)

	s, err := tbl.Col("s")
	require.NoError(t, err)
	assert.True(t, table.Present(s, 0))
	assert.True(t, table.Present(s, 1))
	assert.False(t, table.Present(s, 2))
	assert.Equal(t, []string{"NaN", "x", ""}, testkit.Cells(t, tbl, "s"))
}

func TestReadJSONColumns(t *testing.T) {
	dir := t.TempDir()
	path := testkit.WriteJSON(t, dir, "columns.json", `{
		"color": {"0": "red", "1": "blue", "2": "red"},
		"size": [1, 2, null]
	}`)

	tbl, err := newTestReader(DefaultReaderConfig()).Read(context.Background(), path)
	require.NoError(t, err)

	rows, cols := tbl.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []string{"red", "blue", "red"}, testkit.Cells(t, tbl, "color"))
	assert.Equal(t, []string{"1", "2", ""}, testkit.Cells(t, tbl, "size"))
}

func TestReadJSONFailures(t *testing.T) {
	dir := t.TempDir()
	reader := newTestReader(DefaultReaderConfig())

	tests := map[string]string{
		"broken.json":  `[{"a": 1}`,
		"scalar.json":  `42`,
		"mixed.json":   `[{"a": 1}, 2]`,
		"badcol.json":  `{"a": 1}`,
		"nothing.json": `[]`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := testkit.WriteJSON(t, dir, name, content)
			_, err := reader.Read(context.Background(), path)
			assert.ErrorIs(t, err, core.ErrReadFailure)
		})
	}
}
