package table

import (
	"math"
	"strconv"

	"github.com/go-gota/gota/series"
)

// literalNaN is a missing gota element. Assigning it to a string element
// stores its text "NaN" as a present value.
var literalNaN = series.New([]string{"NaN"}, series.String, "").Elem(0)

// IsNumericType reports whether a column of type tp takes part in numeric imputation.
func IsNumericType(tp series.Type) bool {
	return tp == series.Int || tp == series.Float
}

// Present reports whether row i of s holds a value.
func Present(s series.Series, i int) bool {
	return !s.Elem(i).IsNA()
}

// CellString renders row i of s without losing float precision. Missing cells
// render as the empty string.
func CellString(s series.Series, i int) string {
	e := s.Elem(i)
	if e.IsNA() {
		return ""
	}
	if s.Type() == series.Float {
		return FormatFloat(e.Float())
	}
	return e.String()
}

// PresentCount counts the non-missing cells of s.
func PresentCount(s series.Series) int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		if Present(s, i) {
			n++
		}
	}
	return n
}

// PresentFloats returns the non-missing cells of a numeric series.
func PresentFloats(s series.Series) []float64 {
	out := make([]float64, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if Present(s, i) {
			out = append(out, s.Elem(i).Float())
		}
	}
	return out
}

// PresentStrings returns the non-missing cells of s in row order.
func PresentStrings(s series.Series) []string {
	out := make([]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if Present(s, i) {
			out = append(out, CellString(s, i))
		}
	}
	return out
}

// Build creates a series of type tp from cell text. Cells whose present flag is
// false become missing; a nil present slice means every cell is present.
// Missingness comes only from the mask, so a present string cell may read "NaN".
func Build(name string, tp series.Type, cells []string, present []bool) series.Series {
	s := series.New(cells, tp, name)
	for i, c := range cells {
		switch {
		case present != nil && !present[i]:
			s.Elem(i).Set(nil)
		case tp == series.String && c == "NaN":
			s.Elem(i).Set(literalNaN)
		}
	}
	return s
}

// FormatFloat renders v in the shortest form that parses back to v.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// IsIntegral reports whether v has no fractional part.
func IsIntegral(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v)
}
