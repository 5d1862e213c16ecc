package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepkit/domain/core"
	"prepkit/internal"
	"prepkit/internal/testkit"
)

func TestDropDuplicates(t *testing.T) {
	svc := NewCleaningService(internal.Discard)
	tbl := testkit.NewTable(t,
		testkit.Ints("id", "1", "2", "1", "3", "3"),
		testkit.Strings("name", "a", "b", "a", "", ""),
	)

	removed, err := svc.DropDuplicates(tbl)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []int{0, 1, 3}, tbl.Index())
	assert.Equal(t, []string{"1", "2", "3"}, testkit.Cells(t, tbl, "id"))

	removed, err = svc.DropDuplicates(tbl)
	require.NoError(t, err)
	assert.Zero(t, removed, "dropping duplicates twice equals dropping once")
	assert.Equal(t, []int{0, 1, 3}, tbl.Index())
}

func TestDropDuplicatesKeepsRowsDifferingInOneColumn(t *testing.T) {
	svc := NewCleaningService(internal.Discard)
	tbl := testkit.NewTable(t,
		testkit.Ints("id", "1", "1"),
		testkit.Strings("name", "a", ""),
	)

	removed, err := svc.DropDuplicates(tbl)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDropRowsCols(t *testing.T) {
	svc := NewCleaningService(internal.Discard)
	tbl := testkit.NewTable(t,
		testkit.Ints("a", "1", "2", "3"),
		testkit.Ints("b", "4", "5", "6"),
		testkit.Ints("c", "7", "8", "9"),
	)

	require.NoError(t, svc.DropRowsCols(tbl, []int{1}, []string{"b"}))
	assert.Equal(t, []string{"a", "c"}, tbl.Names())
	assert.Equal(t, []int{0, 2}, tbl.Index())
	assert.Equal(t, []string{"7", "9"}, testkit.Cells(t, tbl, "c"))

	require.NoError(t, svc.DropRowsCols(tbl, []int{2}, nil))
	assert.Equal(t, []int{0}, tbl.Index())

	require.NoError(t, svc.DropRowsCols(tbl, nil, nil))
	assert.Equal(t, 1, tbl.Nrow())
}

func TestDropRowsColsValidatesBeforeChanging(t *testing.T) {
	svc := NewCleaningService(internal.Discard)

	tests := []struct {
		name    string
		rows    []int
		columns []string
		wantErr error
	}{
		{"unknown column", []int{0}, []string{"a", "zzz"}, core.ErrColumnNotFound},
		{"unknown row", []int{0, 99}, []string{"a"}, core.ErrRowNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := testkit.NewTable(t,
				testkit.Ints("a", "1", "2"),
				testkit.Ints("b", "3", "4"),
			)
			err := svc.DropRowsCols(tbl, tt.rows, tt.columns)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, core.IsNotFoundError(err))
			assert.Equal(t, []string{"a", "b"}, tbl.Names())
			assert.Equal(t, []int{0, 1}, tbl.Index())
		})
	}
}

func TestDropEmptyColumns(t *testing.T) {
	svc := NewCleaningService(internal.Discard)
	tbl := testkit.NewTable(t,
		testkit.Ints("A", "1", "2"),
		testkit.Floats("B", "", ""),
		testkit.Ints("C", "3", "4"),
	)

	dropped, err := svc.DropEmptyColumns(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, dropped)
	assert.Equal(t, []string{"A", "C"}, tbl.Names())
	assert.Equal(t, []string{"1", "2"}, testkit.Cells(t, tbl, "A"))
	assert.Equal(t, []string{"3", "4"}, testkit.Cells(t, tbl, "C"))

	dropped, err = svc.DropEmptyColumns(tbl)
	require.NoError(t, err)
	assert.Empty(t, dropped)
}

func TestCleaningWithoutTable(t *testing.T) {
	svc := NewCleaningService(internal.Discard)

	_, err := svc.DropDuplicates(nil)
	assert.ErrorIs(t, err, core.ErrNoData)
	assert.ErrorIs(t, svc.DropRowsCols(nil, nil, []string{"a"}), core.ErrNoData)
	_, err = svc.DropEmptyColumns(nil)
	assert.ErrorIs(t, err, core.ErrNoData)
	assert.True(t, core.IsRecoverable(err))
}
