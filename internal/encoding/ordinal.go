package encoding

import (
	"github.com/go-gota/gota/series"
)

// OrdinalEncoder keeps a separate category order per column
type OrdinalEncoder struct {
	books map[string]*codebook
}

func NewOrdinalEncoder() *OrdinalEncoder {
	return &OrdinalEncoder{books: make(map[string]*codebook)}
}

func (e *OrdinalEncoder) Fit(columns ...series.Series) error {
	for _, s := range columns {
		e.books[s.Name] = fitCodebook(s)
	}
	return nil
}

func (e *OrdinalEncoder) Transform(s series.Series) ([]series.Series, error) {
	book, ok := e.books[s.Name]
	if !ok {
		return nil, notFitted(s.Name)
	}
	encoded, err := book.encode(s)
	if err != nil {
		return nil, err
	}
	return []series.Series{encoded}, nil
}

// Categories returns the category order learned for column.
func (e *OrdinalEncoder) Categories(column string) []string {
	book, ok := e.books[column]
	if !ok {
		return nil
	}
	return append([]string(nil), book.categories...)
}
