package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"prepkit/domain/table"
	"prepkit/internal"
	"prepkit/internal/profiling"
)

// DefaultHeadRows is how many rows the summary shows when not configured
const DefaultHeadRows = 5

// SummaryService prints read-only overviews of the working table
type SummaryService struct {
	headRows int
	analyzer *profiling.DistributionAnalyzer
	logger   *internal.Logger
}

// NewSummaryService creates a summarizer showing headRows rows of data
func NewSummaryService(headRows int, logger *internal.Logger) *SummaryService {
	if headRows < 0 {
		headRows = DefaultHeadRows
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SummaryService{
		headRows: headRows,
		analyzer: profiling.NewDistributionAnalyzer(),
		logger:   logger.With("summary"),
	}
}

// Summarize writes the info block, the first rows, the numeric describe table
// and the categorical summaries of t to w.
func (s *SummaryService) Summarize(t *table.Table, w io.Writer) error {
	if err := requireTable(t); err != nil {
		return err
	}

	s.writeInfo(t, w)

	fmt.Fprintln(w, "\nHead of data:")
	writeBlock(w, t.Head(s.headRows).String())

	fmt.Fprintln(w, "\nKey statistical summaries:")
	summaries, _ := s.Describe(t)
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No numeric columns.")
	} else {
		writeBlock(w, DescribeFrame(summaries).String())
	}

	fmt.Fprintln(w, "\nCategorical summaries")
	fmt.Fprintln(w)
	profiles, _ := s.CategoricalProfiles(t)
	for _, p := range profiles {
		writeProfile(w, p)
	}

	s.logger.Debug("summarized %d numeric and %d categorical columns", len(summaries), len(profiles))
	return nil
}

// writeBlock writes text ending in exactly one newline. gota leaves the
// newline off some renderings, such as an empty frame.
func writeBlock(w io.Writer, text string) {
	fmt.Fprintln(w, strings.TrimRight(text, "\n"))
}

// Describe returns the numeric summary of every numeric column.
func (s *SummaryService) Describe(t *table.Table) ([]profiling.NumericSummary, error) {
	if err := requireTable(t); err != nil {
		return nil, err
	}
	var out []profiling.NumericSummary
	for _, col := range t.Columns() {
		if table.IsNumericType(col.Type()) {
			out = append(out, s.analyzer.DescribeColumn(col))
		}
	}
	return out, nil
}

// CategoricalProfiles returns mode and value counts of every categorical column.
func (s *SummaryService) CategoricalProfiles(t *table.Table) ([]profiling.CategoricalProfile, error) {
	if err := requireTable(t); err != nil {
		return nil, err
	}
	var out []profiling.CategoricalProfile
	for _, col := range t.Columns() {
		if !table.IsNumericType(col.Type()) {
			out = append(out, profiling.ProfileCategorical(col))
		}
	}
	return out, nil
}

// DescribeFrame lays numeric summaries out as a gota DataFrame with one row
// per statistic and one column per summarized column.
func DescribeFrame(summaries []profiling.NumericSummary) dataframe.DataFrame {
	stats := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	columns := []series.Series{series.New(stats, series.String, "stat")}
	for _, sm := range summaries {
		values := []float64{float64(sm.Count), sm.Mean, sm.Std, sm.Min, sm.Q25, sm.Q50, sm.Q75, sm.Max}
		columns = append(columns, series.New(values, series.Float, sm.Column))
	}
	return dataframe.New(columns...)
}

func (s *SummaryService) writeInfo(t *table.Table, w io.Writer) {
	index := t.Index()
	if len(index) == 0 {
		fmt.Fprintln(w, "Index: 0 entries")
	} else {
		fmt.Fprintf(w, "Index: %d entries, %d to %d\n", len(index), index[0], index[len(index)-1])
	}
	fmt.Fprintf(w, "Data columns (total %d columns):\n", t.Ncol())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " #\tColumn\tNon-Null Count\tDtype")
	fmt.Fprintln(tw, "---\t------\t--------------\t-----")
	for i, col := range t.Columns() {
		fmt.Fprintf(tw, " %d\t%s\t%d non-null\t%s\n", i, col.Name, table.PresentCount(col), col.Type())
	}
	tw.Flush()
	fmt.Fprintf(w, "dtypes: %s\n", dtypeCounts(t.Types()))
}

func writeProfile(w io.Writer, p profiling.CategoricalProfile) {
	fmt.Fprintf(w, "Column: %s\n", p.Column)
	fmt.Fprintf(w, "Most Frequent Value: %s\n", p.ModeString())
	fmt.Fprintln(w, "Value Counts:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, vc := range p.Counts {
		fmt.Fprintf(tw, "  %s\t%d\n", vc.Value, vc.Count)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// dtypeCounts renders "float(1), int(2)" in first-seen type order.
func dtypeCounts(types []series.Type) string {
	var order []series.Type
	counts := make(map[series.Type]int)
	for _, tp := range types {
		if counts[tp] == 0 {
			order = append(order, tp)
		}
		counts[tp]++
	}
	parts := make([]string, len(order))
	for i, tp := range order {
		parts[i] = fmt.Sprintf("%s(%d)", tp, counts[tp])
	}
	return strings.Join(parts, ", ")
}
