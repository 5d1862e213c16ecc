package app

import (
	"prepkit/domain/table"
	"prepkit/internal"
)

// CleaningService removes duplicate rows, named rows and columns, and empty columns
type CleaningService struct {
	logger *internal.Logger
}

// NewCleaningService creates a cleaning service
func NewCleaningService(logger *internal.Logger) *CleaningService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CleaningService{logger: logger.With("cleaning")}
}

// DropDuplicates removes every row equal in all columns to an earlier row and
// returns how many were removed. Missing cells count as equal.
func (s *CleaningService) DropDuplicates(t *table.Table) (int, error) {
	if err := requireTable(t); err != nil {
		return 0, err
	}

	seen := make(map[string]bool, t.Nrow())
	keep := make([]int, 0, t.Nrow())
	for pos := 0; pos < t.Nrow(); pos++ {
		key := t.RowKey(pos)
		if seen[key] {
			continue
		}
		seen[key] = true
		keep = append(keep, pos)
	}

	removed := t.Nrow() - len(keep)
	if removed > 0 {
		t.KeepRows(keep)
		s.logger.Info("dropped %d duplicate rows", removed)
	}
	return removed, nil
}

// DropRowsCols removes rows by label and columns by name. Either selection may
// be empty. Every label and name is checked before anything is removed.
func (s *CleaningService) DropRowsCols(t *table.Table, rows []int, columns []string) error {
	if err := requireTable(t); err != nil {
		return err
	}
	if err := t.RequireColumns(columns); err != nil {
		return err
	}

	if len(rows) > 0 {
		if err := t.DropRows(rows); err != nil {
			return err
		}
		s.logger.Info("dropped rows %v", rows)
	}
	if len(columns) > 0 {
		if err := t.DropColumns(columns); err != nil {
			return err
		}
		s.logger.Info("dropped columns %v", columns)
	}
	return nil
}

// DropEmptyColumns removes the columns without a single present value and
// returns their names.
func (s *CleaningService) DropEmptyColumns(t *table.Table) ([]string, error) {
	if err := requireTable(t); err != nil {
		return nil, err
	}

	var empty []string
	for _, col := range t.Columns() {
		if table.PresentCount(col) == 0 {
			empty = append(empty, col.Name)
		}
	}
	if len(empty) == 0 {
		return nil, nil
	}
	if err := t.DropColumns(empty); err != nil {
		return nil, err
	}
	s.logger.Info("dropped empty columns %v", empty)
	return empty, nil
}
