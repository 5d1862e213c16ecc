package app

import (
	"fmt"

	"github.com/go-gota/gota/series"

	"prepkit/domain/core"
	"prepkit/domain/prep"
	"prepkit/domain/table"
	"prepkit/internal"
	"prepkit/internal/encoding"
	"prepkit/internal/profiling"
)

// EncodingService replaces categorical columns with integer codes
type EncodingService struct {
	logger *internal.Logger
}

// NewEncodingService creates an encoding service
func NewEncodingService(logger *internal.Logger) *EncodingService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &EncodingService{logger: logger.With("encode")}
}

// EncodeCategorical encodes columns of t with method and returns the names of
// the columns that replaced them. Either every column is encoded or t is left
// unchanged.
func (s *EncodingService) EncodeCategorical(t *table.Table, columns []string, method prep.EncodingMethod) ([]string, error) {
	if err := requireTable(t); err != nil {
		return nil, err
	}
	columns = profiling.Distinct(columns)
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns to encode", core.ErrInvalidInput)
	}
	if err := t.RequireColumns(columns); err != nil {
		return nil, err
	}

	encoder, err := encoding.New(method)
	if err != nil {
		return nil, err
	}

	selected := make([]series.Series, len(columns))
	for i, name := range columns {
		if selected[i], err = t.Col(name); err != nil {
			return nil, err
		}
	}
	if err := encoder.Fit(selected...); err != nil {
		return nil, err
	}
	switch enc := encoder.(type) {
	case *encoding.LabelEncoder:
		s.logger.Debug("label codes for %v: %v", columns, enc.Categories())
	case *encoding.OrdinalEncoder:
		for _, name := range columns {
			s.logger.Debug("ordinal codes for %q: %v", name, enc.Categories(name))
		}
	}

	work := t.Clone()
	var produced []string
	for _, col := range selected {
		replacement, err := encoder.Transform(col)
		if err != nil {
			return nil, err
		}
		if err := work.SpliceColumn(col.Name, replacement...); err != nil {
			return nil, err
		}
		if len(replacement) == 0 {
			s.logger.Warn("column %q has no values to %s-encode and was removed", col.Name, method)
		}
		for _, r := range replacement {
			produced = append(produced, r.Name)
		}
	}
	*t = *work

	s.logger.Info("%s-encoded %v into %d columns", method, columns, len(produced))
	return produced, nil
}
