// Package encoding turns categorical columns into integer columns.
package encoding

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/series"

	"prepkit/domain/core"
	"prepkit/domain/prep"
	"prepkit/domain/table"
	"prepkit/internal/profiling"
)

// Encoder learns categories from columns and rewrites columns as codes.
// Transform returns the columns that replace s in its table.
type Encoder interface {
	Fit(columns ...series.Series) error
	Transform(s series.Series) ([]series.Series, error)
}

// New returns the encoder for method.
func New(method prep.EncodingMethod) (Encoder, error) {
	switch method {
	case prep.EncodeLabel:
		return NewLabelEncoder(), nil
	case prep.EncodeOrdinal:
		return NewOrdinalEncoder(), nil
	case prep.EncodeOneHot:
		return NewOneHotEncoder(), nil
	}
	return nil, core.NewInvalidMethodError("encoding", string(method))
}

// codebook maps each category to its position in category order
type codebook struct {
	categories []string
	codes      map[string]int
}

func newCodebook(values []string, numeric bool) *codebook {
	categories := profiling.SortCategories(profiling.Distinct(values), numeric)
	codes := make(map[string]int, len(categories))
	for i, c := range categories {
		codes[c] = i
	}
	return &codebook{categories: categories, codes: codes}
}

func fitCodebook(s series.Series) *codebook {
	return newCodebook(table.PresentStrings(s), table.IsNumericType(s.Type()))
}

// encode replaces each present cell of s by its code. Missing cells stay
// missing; a value outside the codebook is an error.
func (b *codebook) encode(s series.Series) (series.Series, error) {
	cells := make([]string, s.Len())
	present := make([]bool, s.Len())
	for i := range cells {
		if !table.Present(s, i) {
			continue
		}
		v := table.CellString(s, i)
		code, ok := b.codes[v]
		if !ok {
			return series.Series{}, core.NewUnknownCategoryError(s.Name, v)
		}
		cells[i] = strconv.Itoa(code)
		present[i] = true
	}
	return table.Build(s.Name, series.Int, cells, present), nil
}

func notFitted(name string) error {
	return fmt.Errorf("%w: encoder was not fitted on column %q", core.ErrInvalidInput, name)
}
