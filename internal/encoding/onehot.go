package encoding

import (
	"github.com/go-gota/gota/series"

	"prepkit/domain/table"
)

// OneHotEncoder expands a column into one 0/1 indicator column per category
type OneHotEncoder struct {
	books map[string]*codebook
}

func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{books: make(map[string]*codebook)}
}

func (e *OneHotEncoder) Fit(columns ...series.Series) error {
	for _, s := range columns {
		e.books[s.Name] = fitCodebook(s)
	}
	return nil
}

// Transform returns the indicator columns of s, named <column>_<category>, in
// category order. Missing and unseen values get zero in every indicator.
func (e *OneHotEncoder) Transform(s series.Series) ([]series.Series, error) {
	book, ok := e.books[s.Name]
	if !ok {
		return nil, notFitted(s.Name)
	}

	cells := make([][]string, len(book.categories))
	for k := range cells {
		cells[k] = make([]string, s.Len())
		for i := range cells[k] {
			cells[k][i] = "0"
		}
	}
	for i := 0; i < s.Len(); i++ {
		if !table.Present(s, i) {
			continue
		}
		if code, ok := book.codes[table.CellString(s, i)]; ok {
			cells[code][i] = "1"
		}
	}

	out := make([]series.Series, len(book.categories))
	for k, category := range book.categories {
		out[k] = table.Build(ColumnName(s.Name, category), series.Int, cells[k], nil)
	}
	return out, nil
}

// ColumnName names the indicator column of category in column.
func ColumnName(column, category string) string {
	return column + "_" + category
}
