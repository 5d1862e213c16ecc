package table

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"prepkit/domain/core"
)

// Table is the working dataset: ordered, uniquely named gota columns of equal
// length plus a row-label index. Labels are assigned 0..n-1 when the table is
// built and follow their rows through every drop.
type Table struct {
	columns []series.Series
	index   []int
}

// New builds a table from columns. All columns must be error-free, equally
// long and uniquely named.
func New(columns ...series.Series) (*Table, error) {
	rows := 0
	if len(columns) > 0 {
		rows = columns[0].Len()
	}
	seen := make(map[string]bool, len(columns))
	for _, s := range columns {
		if s.Err != nil {
			return nil, fmt.Errorf("column %q: %w", s.Name, s.Err)
		}
		if s.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", core.ErrLengthMismatch, s.Name, s.Len(), rows)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateColumn, s.Name)
		}
		seen[s.Name] = true
	}

	index := make([]int, rows)
	for i := range index {
		index[i] = i
	}
	cols := make([]series.Series, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, index: index}, nil
}

// FromRecords builds a table from a header and string rows. Every row must be
// as wide as the header. present marks which cells hold a value and may be nil
// when none are missing. types gives the gota type per column and defaults to
// string for absent names.
func FromRecords(header []string, rows [][]string, present [][]bool, types map[string]series.Type) (*Table, error) {
	if present != nil && len(present) != len(rows) {
		return nil, fmt.Errorf("%w: %d presence rows for %d rows", core.ErrLengthMismatch, len(present), len(rows))
	}
	columns := make([]series.Series, len(header))
	for j, name := range header {
		cells := make([]string, len(rows))
		var mask []bool
		if present != nil {
			mask = make([]bool, len(rows))
		}
		for i, row := range rows {
			if len(row) != len(header) {
				return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", core.ErrLengthMismatch, i, len(row), len(header))
			}
			cells[i] = row[j]
			if mask != nil {
				if len(present[i]) != len(header) {
					return nil, fmt.Errorf("%w: presence row %d has %d flags, header has %d", core.ErrLengthMismatch, i, len(present[i]), len(header))
				}
				mask[i] = present[i][j]
			}
		}
		tp, ok := types[name]
		if !ok {
			tp = series.String
		}
		columns[j] = Build(name, tp, cells, mask)
	}
	t, err := New(columns...)
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		t.index = make([]int, len(rows))
		for i := range t.index {
			t.index[i] = i
		}
	}
	return t, nil
}

// Nrow returns the number of rows.
func (t *Table) Nrow() int { return len(t.index) }

// Ncol returns the number of columns.
func (t *Table) Ncol() int { return len(t.columns) }

// Dims returns rows and columns.
func (t *Table) Dims() (int, int) { return t.Nrow(), t.Ncol() }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, s := range t.columns {
		names[i] = s.Name
	}
	return names
}

// Index returns a copy of the row labels.
func (t *Table) Index() []int {
	out := make([]int, len(t.index))
	copy(out, t.index)
	return out
}

// Columns returns the columns in order. The slice is a copy; the series share
// storage with the table and must not be modified.
func (t *Table) Columns() []series.Series {
	out := make([]series.Series, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	return t.position(name) >= 0
}

// Col returns the named column.
func (t *Table) Col(name string) (series.Series, error) {
	pos := t.position(name)
	if pos < 0 {
		return series.Series{}, core.NewColumnNotFoundError([]string{name})
	}
	return t.columns[pos], nil
}

// Types returns the gota type of each column in order.
func (t *Table) Types() []series.Type {
	out := make([]series.Type, len(t.columns))
	for i, s := range t.columns {
		out[i] = s.Type()
	}
	return out
}

// NumericColumns returns the names of int and float columns.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, s := range t.columns {
		if IsNumericType(s.Type()) {
			out = append(out, s.Name)
		}
	}
	return out
}

// CategoricalColumns returns the names of every non-numeric column.
func (t *Table) CategoricalColumns() []string {
	var out []string
	for _, s := range t.columns {
		if !IsNumericType(s.Type()) {
			out = append(out, s.Name)
		}
	}
	return out
}

// RequireColumns fails with core.ErrColumnNotFound naming every absent column.
func (t *Table) RequireColumns(names []string) error {
	var missing []string
	for _, name := range names {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return core.NewColumnNotFoundError(missing)
	}
	return nil
}

// ReplaceColumn swaps in s for the column of the same name, keeping its position.
func (t *Table) ReplaceColumn(s series.Series) error {
	return t.SpliceColumn(s.Name, s)
}

// SpliceColumn replaces the named column, at its position, with zero or more
// columns. Replacement names must not collide with the other columns.
func (t *Table) SpliceColumn(name string, replacement ...series.Series) error {
	pos := t.position(name)
	if pos < 0 {
		return core.NewColumnNotFoundError([]string{name})
	}
	if err := t.checkSplice(pos, replacement); err != nil {
		return err
	}

	cols := make([]series.Series, 0, len(t.columns)-1+len(replacement))
	cols = append(cols, t.columns[:pos]...)
	cols = append(cols, replacement...)
	cols = append(cols, t.columns[pos+1:]...)
	t.columns = cols
	return nil
}

func (t *Table) checkSplice(pos int, replacement []series.Series) error {
	seen := make(map[string]bool, len(replacement))
	for _, s := range replacement {
		if s.Err != nil {
			return fmt.Errorf("column %q: %w", s.Name, s.Err)
		}
		if s.Len() != t.Nrow() {
			return fmt.Errorf("%w: column %q has %d rows, expected %d", core.ErrLengthMismatch, s.Name, s.Len(), t.Nrow())
		}
		if other := t.position(s.Name); (other >= 0 && other != pos) || seen[s.Name] {
			return fmt.Errorf("%w: %q", core.ErrColumnConflict, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// DropColumns removes the named columns. Nothing is removed unless every name exists.
func (t *Table) DropColumns(names []string) error {
	if err := t.RequireColumns(names); err != nil {
		return err
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.columns[:0:0]
	for _, s := range t.columns {
		if !drop[s.Name] {
			kept = append(kept, s)
		}
	}
	t.columns = kept
	return nil
}

// DropRows removes rows by label. Nothing is removed unless every label exists.
func (t *Table) DropRows(labels []int) error {
	byLabel := make(map[int]bool, len(t.index))
	for _, l := range t.index {
		byLabel[l] = true
	}
	var missing []int
	drop := make(map[int]bool, len(labels))
	for _, l := range labels {
		if !byLabel[l] {
			missing = append(missing, l)
			continue
		}
		drop[l] = true
	}
	if len(missing) > 0 {
		return core.NewRowNotFoundError(missing)
	}

	keep := make([]int, 0, len(t.index))
	for pos, l := range t.index {
		if !drop[l] {
			keep = append(keep, pos)
		}
	}
	t.KeepRows(keep)
	return nil
}

// KeepRows retains the rows at the given positions, in the given order.
func (t *Table) KeepRows(positions []int) {
	index := make([]int, len(positions))
	for i, p := range positions {
		index[i] = t.index[p]
	}
	for i, s := range t.columns {
		t.columns[i] = s.Subset(positions)
	}
	t.index = index
}

// RowKey renders row pos as a string that is equal for rows equal in every
// column. Missing cells match each other and nothing else.
func (t *Table) RowKey(pos int) string {
	var b strings.Builder
	for j, s := range t.columns {
		if j > 0 {
			b.WriteByte('\x1f')
		}
		if !Present(s, pos) {
			b.WriteByte('\x00')
			continue
		}
		b.WriteString(CellString(s, pos))
	}
	return b.String()
}

// Head returns a copy holding the first n rows.
func (t *Table) Head(n int) *Table {
	if n > t.Nrow() {
		n = t.Nrow()
	}
	if n < 0 {
		n = 0
	}
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	h := t.Clone()
	h.KeepRows(positions)
	return h
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	cols := make([]series.Series, len(t.columns))
	for i, s := range t.columns {
		cols[i] = s.Copy()
	}
	return &Table{columns: cols, index: t.Index()}
}

// DataFrame exposes the table as a gota DataFrame. A table without columns
// yields a DataFrame carrying an error, as gota has no zero-column frames.
func (t *Table) DataFrame() dataframe.DataFrame {
	return dataframe.New(t.columns...)
}

// String renders the table through gota.
func (t *Table) String() string {
	if t.Ncol() == 0 {
		return fmt.Sprintf("[%dx0] Table (no columns)\n", t.Nrow())
	}
	return t.DataFrame().String()
}

func (t *Table) position(name string) int {
	for i, s := range t.columns {
		if s.Name == name {
			return i
		}
	}
	return -1
}
