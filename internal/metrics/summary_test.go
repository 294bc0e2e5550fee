package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/dealerrank/internal/models"
)

func TestSummarize(t *testing.T) {
	ws := models.WeightSet{
		{Name: "a", Weight: 0.6},
		{Name: "b", Weight: 0.4},
	}
	ranked := models.RankedList{
		{ID: "x", Normalized: map[string]float64{"a": 1, "b": 1}, Score: 1},
		{ID: "y", Normalized: map[string]float64{"a": 1, "b": 0}, Score: 0.6},
		{ID: "z", Normalized: map[string]float64{"a": 0, "b": 0.5}, Score: 0.2},
	}

	s := Summarize(ranked, ws)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 0.6, s.Mean, epsilon)
	assert.InDelta(t, 0.4, s.StdDev, epsilon)
	assert.Equal(t, 0.6, s.Median)
	assert.Equal(t, 0.2, s.Min)
	assert.Equal(t, 1.0, s.Max)
	assert.Less(t, s.CI95Low, s.Mean)
	assert.Greater(t, s.CI95High, s.Mean)

	require.Len(t, s.Contributions, 2)
	assert.Equal(t, "a", s.Contributions[0].Metric)
	assert.InDelta(t, 0.4, s.Contributions[0].Mean, epsilon)
	assert.InDelta(t, 2.0/3.0, s.Contributions[0].Share, epsilon)
	assert.Equal(t, "b", s.Contributions[1].Metric)
	assert.InDelta(t, 0.2, s.Contributions[1].Mean, epsilon)
	assert.InDelta(t, 1.0/3.0, s.Contributions[1].Share, epsilon)
}

func TestSummarize_AllZero(t *testing.T) {
	ws := models.WeightSet{{Name: "a", Weight: 1}}
	ranked := models.RankedList{
		{ID: "x", Normalized: map[string]float64{"a": 0}},
		{ID: "y", Normalized: map[string]float64{"a": 0}},
	}
	s := Summarize(ranked, ws)
	assert.Equal(t, 0.0, s.Mean)
	assert.Equal(t, 0.0, s.Contributions[0].Share)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, models.WeightSet{{Name: "a", Weight: 1}})
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.Max)
	require.Len(t, s.Contributions, 1)
}
