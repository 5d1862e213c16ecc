package app

import (
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepkit/domain/core"
	"prepkit/domain/prep"
	"prepkit/domain/table"
	"prepkit/internal"
	"prepkit/internal/testkit"
)

func colType(t *testing.T, tbl *table.Table, name string) series.Type {
	t.Helper()
	col, err := tbl.Col(name)
	require.NoError(t, err)
	return col.Type()
}

func TestImputeAvg(t *testing.T) {
	svc := NewImputationService(internal.Discard)
	tbl := testkit.NewTable(t,
		testkit.Floats("f", "1.5", "", "2.5"),
		testkit.Ints("whole", "2", "", "4"),
		testkit.Ints("frac", "1", "2", ""),
		testkit.Strings("s", "x", "", "y"),
	)

	report, err := svc.ImputeAvg(tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"1.5", "2", "2.5"}, testkit.Cells(t, tbl, "f"))
	assert.Equal(t, []string{"2", "3", "4"}, testkit.Cells(t, tbl, "whole"))
	assert.Equal(t, series.Int, colType(t, tbl, "whole"), "integral mean keeps the int type")
	assert.Equal(t, []string{"1", "2", "1.5"}, testkit.Cells(t, tbl, "frac"))
	assert.Equal(t, series.Float, colType(t, tbl, "frac"), "fractional mean promotes to float")
	assert.Equal(t, []string{"x", "", "y"}, testkit.Cells(t, tbl, "s"), "categorical columns untouched")

	assert.Equal(t, "avg", report.Method)
	assert.Equal(t, 3, report.FilledCells())
	assert.Empty(t, report.Skipped)

	for _, name := range tbl.NumericColumns() {
		col, err := tbl.Col(name)
		require.NoError(t, err)
		assert.Equal(t, col.Len(), table.PresentCount(col), name)
	}
}

func TestImputeAvgLeavesEmptyColumnsMissing(t *testing.T) {
	svc := NewImputationService(internal.Discard)
	tbl := testkit.NewTable(t,
		testkit.Floats("empty", "", ""),
		testkit.Ints("n", "1", ""),
	)

	report, err := svc.ImputeAvg(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"empty"}, report.Skipped)
	assert.Equal(t, []string{"", ""}, testkit.Cells(t, tbl, "empty"))
	assert.Equal(t, []string{"1", "1"}, testkit.Cells(t, tbl, "n"))
}

func TestImputeZero(t *testing.T) {
	svc := NewImputationService(internal.Discard)
	tbl := testkit.NewTable(t,
		testkit.Floats("f", "", "2.5"),
		testkit.Ints("i", "", ""),
	)

	report, err := svc.ImputeZero(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "2.5"}, testkit.Cells(t, tbl, "f"))
	assert.Equal(t, []string{"0", "0"}, testkit.Cells(t, tbl, "i"))
	assert.Equal(t, series.Int, colType(t, tbl, "i"))
	assert.Equal(t, 3, report.FilledCells())
}

func TestImputeMode(t *testing.T) {
	svc := NewImputationService(internal.Discard)
	tbl := testkit.NewTable(t,
		testkit.Strings("color", "red", "", "blue", "red"),
		testkit.Strings("tie", "b", "a", "", "c"),
		testkit.Strings("none", "", "", "", ""),
		testkit.Ints("n", "1", "", "1", "1"),
	)

	report, err := svc.ImputeMode(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "red", "blue", "red"}, testkit.Cells(t, tbl, "color"))
	assert.Equal(t, []string{"b", "a", "a", "c"}, testkit.Cells(t, tbl, "tie"))
	assert.Equal(t, []string{"none"}, report.Skipped)
	assert.Equal(t, []string{"1", "", "1", "1"}, testkit.Cells(t, tbl, "n"), "numeric columns untouched")
}

func TestDropMissingCategorical(t *testing.T) {
	svc := NewImputationService(internal.Discard)
	tbl := testkit.NewTable(t,
		testkit.Strings("a", "x", "", "y", "z"),
		testkit.Bools("b", "true", "false", "", "true"),
		testkit.Ints("n", "", "2", "3", "4"),
	)

	report, err := svc.DropMissingCategorical(tbl)
	require.NoError(t, err)
	assert.Equal(t, 2, report.DroppedRows)
	assert.Equal(t, []int{0, 3}, tbl.Index())
	assert.Equal(t, []string{"", "4"}, testkit.Cells(t, tbl, "n"))
}

func TestImputeDispatch(t *testing.T) {
	svc := NewImputationService(internal.Discard)

	for _, m := range prep.NumericImputations() {
		tbl := testkit.NewTable(t, testkit.Ints("n", "1", ""))
		report, err := svc.ImputeNumeric(tbl, m)
		require.NoError(t, err)
		assert.Equal(t, string(m), report.Method)
	}
	for _, m := range prep.CategoricalImputations() {
		tbl := testkit.NewTable(t, testkit.Strings("s", "a", ""))
		report, err := svc.ImputeCategorical(tbl, m)
		require.NoError(t, err)
		assert.Equal(t, string(m), report.Method)
	}

	_, err := svc.ImputeNumeric(testkit.NewTable(t), "median")
	assert.ErrorIs(t, err, core.ErrInvalidMethod)
	_, err = svc.ImputeCategorical(testkit.NewTable(t), "ffill")
	assert.ErrorIs(t, err, core.ErrInvalidMethod)
}

func TestImputeWithoutTable(t *testing.T) {
	svc := NewImputationService(internal.Discard)

	_, err := svc.ImputeAvg(nil)
	assert.ErrorIs(t, err, core.ErrNoData)
	_, err = svc.ImputeZero(nil)
	assert.ErrorIs(t, err, core.ErrNoData)
	_, err = svc.ImputeMode(nil)
	assert.ErrorIs(t, err, core.ErrNoData)
	_, err = svc.DropMissingCategorical(nil)
	assert.ErrorIs(t, err, core.ErrNoData)
}
