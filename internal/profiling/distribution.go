package profiling

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"
	gstat "gonum.org/v1/gonum/stat"

	"prepkit/domain/table"
)

// NumericSummary is one row of the describe table
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// DistributionAnalyzer computes the summary statistics of numeric columns
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// DescribeColumn summarizes the present values of a numeric series.
func (da *DistributionAnalyzer) DescribeColumn(s series.Series) NumericSummary {
	return da.Describe(s.Name, table.PresentFloats(s))
}

// Describe computes count, mean, sample standard deviation, min, quartiles and
// max. Every statistic is NaN for empty data; the standard deviation is NaN
// below two values.
func (da *DistributionAnalyzer) Describe(name string, data []float64) NumericSummary {
	nan := math.NaN()
	summary := NumericSummary{
		Column: name,
		Count:  len(data),
		Mean:   nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan,
	}
	if len(data) == 0 {
		return summary
	}

	// montanaflynn only fails on empty input, which is handled above
	summary.Mean, _ = stats.Mean(data)
	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)

	if len(data) > 1 {
		summary.Std = gstat.StdDev(data, nil)
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	summary.Q25 = quantile(sorted, 0.25)
	summary.Q50 = quantile(sorted, 0.50)
	summary.Q75 = quantile(sorted, 0.75)
	return summary
}

// quantile interpolates linearly between the closest ranks of sorted data,
// the way pandas and numpy do by default.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
