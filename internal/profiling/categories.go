package profiling

import (
	"sort"
	"strconv"

	"github.com/go-gota/gota/series"

	"prepkit/domain/table"
)

// ValueCount is one distinct value of a column with its frequency
type ValueCount struct {
	Value string
	Count int
}

// CategoricalProfile summarizes one categorical column
type CategoricalProfile struct {
	Column  string
	Mode    string
	HasMode bool
	Counts  []ValueCount
}

// NoMode is printed in place of the mode of a column without values
const NoMode = "<none>"

// ModeString returns the mode, or NoMode for an empty column.
func (p CategoricalProfile) ModeString() string {
	if !p.HasMode {
		return NoMode
	}
	return p.Mode
}

// ProfileCategorical computes the value counts and mode of s.
func ProfileCategorical(s series.Series) CategoricalProfile {
	mode, ok := Mode(s)
	return CategoricalProfile{
		Column:  s.Name,
		Mode:    mode,
		HasMode: ok,
		Counts:  ValueCounts(s),
	}
}

// ValueCounts counts the present values of s, most frequent first. Equal
// counts keep the order in which the values first appear.
func ValueCounts(s series.Series) []ValueCount {
	var counts []ValueCount
	pos := make(map[string]int)
	for _, v := range table.PresentStrings(s) {
		i, ok := pos[v]
		if !ok {
			i = len(counts)
			pos[v] = i
			counts = append(counts, ValueCount{Value: v})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// Mode returns the most frequent present value of s. Ties go to the value
// that sorts first in category order. ok is false when s has no values.
func Mode(s series.Series) (mode string, ok bool) {
	counts := ValueCounts(s)
	if len(counts) == 0 {
		return "", false
	}
	top := counts[0].Count
	var tied []string
	for _, c := range counts {
		if c.Count < top {
			break
		}
		tied = append(tied, c.Value)
	}
	return SortCategories(tied, table.IsNumericType(s.Type()))[0], true
}

// Distinct drops repeated values, keeping first appearances.
func Distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// SortCategories orders values ascending: by number when numeric is set and
// every value parses, by text otherwise. The input slice is not modified.
func SortCategories(values []string, numeric bool) []string {
	out := make([]string, len(values))
	copy(out, values)

	if numeric {
		keys := make(map[string]float64, len(out))
		for _, v := range out {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				numeric = false
				break
			}
			keys[v] = f
		}
		if numeric {
			sort.SliceStable(out, func(a, b int) bool { return keys[out[a]] < keys[out[b]] })
			return out
		}
	}
	sort.Strings(out)
	return out
}
