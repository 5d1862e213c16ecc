package profiling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepkit/internal/testkit"
)

func TestDescribe(t *testing.T) {
	da := NewDistributionAnalyzer()

	s := da.Describe("x", []float64{4, 1, 3, 2})
	assert.Equal(t, "x", s.Column)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.2909944487, s.Std, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.InDelta(t, 1.75, s.Q25, 1e-12)
	assert.InDelta(t, 2.5, s.Q50, 1e-12)
	assert.InDelta(t, 3.25, s.Q75, 1e-12)
	assert.Equal(t, 4.0, s.Max)
}

func TestDescribeSmallSamples(t *testing.T) {
	da := NewDistributionAnalyzer()

	one := da.Describe("x", []float64{7})
	assert.Equal(t, 1, one.Count)
	assert.Equal(t, 7.0, one.Mean)
	assert.True(t, math.IsNaN(one.Std))
	assert.Equal(t, 7.0, one.Q25)
	assert.Equal(t, 7.0, one.Q75)

	empty := da.Describe("x", nil)
	assert.Equal(t, 0, empty.Count)
	for _, v := range []float64{empty.Mean, empty.Std, empty.Min, empty.Q50, empty.Max} {
		assert.True(t, math.IsNaN(v))
	}
}

func TestDescribeColumnSkipsMissing(t *testing.T) {
	tbl := testkit.NewTable(t, testkit.Ints("n", "10", "", "20"))
	col, err := tbl.Col("n")
	require.NoError(t, err)

	s := NewDistributionAnalyzer().DescribeColumn(col)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 15.0, s.Mean)
	assert.Equal(t, 15.0, s.Q50)
}
