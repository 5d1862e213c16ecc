package encoding

import (
	"github.com/go-gota/gota/series"

	"prepkit/domain/table"
)

// LabelEncoder assigns one shared set of codes to every column it was fitted
// on, so equal values get equal codes across columns.
type LabelEncoder struct {
	book *codebook
}

func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// Fit learns the union of the present values of columns. The categories sort
// numerically only when every column is numeric.
func (e *LabelEncoder) Fit(columns ...series.Series) error {
	var values []string
	numeric := len(columns) > 0
	for _, s := range columns {
		values = append(values, table.PresentStrings(s)...)
		numeric = numeric && table.IsNumericType(s.Type())
	}
	e.book = newCodebook(values, numeric)
	return nil
}

func (e *LabelEncoder) Transform(s series.Series) ([]series.Series, error) {
	if e.book == nil {
		return nil, notFitted(s.Name)
	}
	encoded, err := e.book.encode(s)
	if err != nil {
		return nil, err
	}
	return []series.Series{encoded}, nil
}

// Categories returns the learned categories; a category's code is its index.
func (e *LabelEncoder) Categories() []string {
	if e.book == nil {
		return nil
	}
	return append([]string(nil), e.book.categories...)
}
