package app

import (
	"strconv"

	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"

	"prepkit/domain/core"
	"prepkit/domain/prep"
	"prepkit/domain/table"
	"prepkit/internal"
	"prepkit/internal/profiling"
)

// ColumnFill records the value written into the missing cells of one column
type ColumnFill struct {
	Column string
	Value  string
	Count  int
}

// ImputationReport describes what one imputation pass changed
type ImputationReport struct {
	Method      string
	Filled      []ColumnFill
	Skipped     []string // columns without any value to derive a fill from
	DroppedRows int
}

// FilledCells is the total number of cells written.
func (r ImputationReport) FilledCells() int {
	n := 0
	for _, f := range r.Filled {
		n += f.Count
	}
	return n
}

// ImputationService fills or drops missing values
type ImputationService struct {
	logger *internal.Logger
}

// NewImputationService creates an imputation service
func NewImputationService(logger *internal.Logger) *ImputationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ImputationService{logger: logger.With("impute")}
}

// ImputeNumeric fills the numeric columns of t with method.
func (s *ImputationService) ImputeNumeric(t *table.Table, method prep.NumericImputation) (ImputationReport, error) {
	switch method {
	case prep.ImputeMean:
		return s.ImputeAvg(t)
	case prep.ImputeZero:
		return s.ImputeZero(t)
	}
	return ImputationReport{}, core.NewInvalidMethodError("numeric imputation", string(method))
}

// ImputeCategorical handles missing categorical cells with method.
func (s *ImputationService) ImputeCategorical(t *table.Table, method prep.CategoricalImputation) (ImputationReport, error) {
	switch method {
	case prep.ImputeMode:
		return s.ImputeMode(t)
	case prep.DropMissing:
		return s.DropMissingCategorical(t)
	}
	return ImputationReport{}, core.NewInvalidMethodError("categorical imputation", string(method))
}

// ImputeAvg fills each numeric column with the mean of its present values. An
// int column whose mean is not a whole number becomes a float column.
func (s *ImputationService) ImputeAvg(t *table.Table) (ImputationReport, error) {
	report := ImputationReport{Method: string(prep.ImputeMean)}
	if err := requireTable(t); err != nil {
		return report, err
	}

	for _, name := range t.NumericColumns() {
		col, err := t.Col(name)
		if err != nil {
			return report, err
		}
		missing := col.Len() - table.PresentCount(col)
		if missing == 0 {
			continue
		}
		mean, err := stats.Mean(table.PresentFloats(col))
		if err != nil {
			s.logger.Warn("column %q has no values to average, leaving it missing", name)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		tp := col.Type()
		value := table.FormatFloat(mean)
		if tp == series.Int {
			if table.IsIntegral(mean) {
				value = strconv.FormatInt(int64(mean), 10)
			} else {
				tp = series.Float
			}
		}
		if err := t.ReplaceColumn(fill(col, tp, value)); err != nil {
			return report, err
		}
		report.Filled = append(report.Filled, ColumnFill{Column: name, Value: value, Count: missing})
	}

	s.logReport(report)
	return report, nil
}

// ImputeZero fills each numeric column with zero, keeping its type.
func (s *ImputationService) ImputeZero(t *table.Table) (ImputationReport, error) {
	report := ImputationReport{Method: string(prep.ImputeZero)}
	if err := requireTable(t); err != nil {
		return report, err
	}

	for _, name := range t.NumericColumns() {
		col, err := t.Col(name)
		if err != nil {
			return report, err
		}
		missing := col.Len() - table.PresentCount(col)
		if missing == 0 {
			continue
		}
		if err := t.ReplaceColumn(fill(col, col.Type(), "0")); err != nil {
			return report, err
		}
		report.Filled = append(report.Filled, ColumnFill{Column: name, Value: "0", Count: missing})
	}

	s.logReport(report)
	return report, nil
}

// ImputeMode fills each categorical column with its most frequent value. Ties
// go to the value that sorts first.
func (s *ImputationService) ImputeMode(t *table.Table) (ImputationReport, error) {
	report := ImputationReport{Method: string(prep.ImputeMode)}
	if err := requireTable(t); err != nil {
		return report, err
	}

	for _, name := range t.CategoricalColumns() {
		col, err := t.Col(name)
		if err != nil {
			return report, err
		}
		missing := col.Len() - table.PresentCount(col)
		if missing == 0 {
			continue
		}
		mode, ok := profiling.Mode(col)
		if !ok {
			s.logger.Warn("column %q has no values to take a mode from, leaving it missing", name)
			report.Skipped = append(report.Skipped, name)
			continue
		}
		if err := t.ReplaceColumn(fill(col, col.Type(), mode)); err != nil {
			return report, err
		}
		report.Filled = append(report.Filled, ColumnFill{Column: name, Value: mode, Count: missing})
	}

	s.logReport(report)
	return report, nil
}

// DropMissingCategorical removes every row with a missing categorical cell.
func (s *ImputationService) DropMissingCategorical(t *table.Table) (ImputationReport, error) {
	report := ImputationReport{Method: string(prep.DropMissing)}
	if err := requireTable(t); err != nil {
		return report, err
	}

	var cols []series.Series
	for _, col := range t.Columns() {
		if !table.IsNumericType(col.Type()) {
			cols = append(cols, col)
		}
	}

	keep := make([]int, 0, t.Nrow())
	for pos := 0; pos < t.Nrow(); pos++ {
		complete := true
		for _, col := range cols {
			if !table.Present(col, pos) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, pos)
		}
	}

	report.DroppedRows = t.Nrow() - len(keep)
	if report.DroppedRows > 0 {
		t.KeepRows(keep)
	}
	s.logReport(report)
	return report, nil
}

func (s *ImputationService) logReport(r ImputationReport) {
	s.logger.Info("%s: filled %d cells in %d columns, skipped %d columns, dropped %d rows",
		r.Method, r.FilledCells(), len(r.Filled), len(r.Skipped), r.DroppedRows)
}

// fill rebuilds col as type tp with value in every missing cell.
func fill(col series.Series, tp series.Type, value string) series.Series {
	cells := make([]string, col.Len())
	for i := range cells {
		if table.Present(col, i) {
			cells[i] = table.CellString(col, i)
		} else {
			cells[i] = value
		}
	}
	return table.Build(col.Name, tp, cells, nil)
}
