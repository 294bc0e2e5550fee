package normalize

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/dealerrank/internal/models"
)

func TestMinMax(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"empty", []float64{}, []float64{}},
		{"single value is flat", []float64{7}, []float64{0}},
		{"flat column", []float64{3, 3, 3}, []float64{0, 0, 0}},
		{"flat negative column has no negative zero", []float64{-2, -2}, []float64{0, 0}},
		{"ascending", []float64{1, 2, 3}, []float64{0, 0.5, 1}},
		{"unordered", []float64{10, 0, 5}, []float64{1, 0, 0.5}},
		{"negative range", []float64{-4, 0, -2}, []float64{0, 1, 0.5}},
		{"span beyond float range", []float64{-1e308, 1e308, 0}, []float64{0, 1, 0.5}},
		{"span beyond float range at extremes", []float64{math.MaxFloat64, -math.MaxFloat64}, []float64{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinMax(tt.in)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
				assert.False(t, math.Signbit(got[i]), "cell %d is negative", i)
			}
		})
	}
}

func TestMinMax_DoesNotModifyInput(t *testing.T) {
	in := []float64{5, 1, 3}
	_ = MinMax(in)
	assert.Equal(t, []float64{5, 1, 3}, in)
}

func TestMinMax_BoundsAreExact(t *testing.T) {
	columns := [][]float64{
		{4.3, 3.9, 4.7, 3.5, 4.9},
		{41000, 37000, 45000, 32000, 50000},
		{6.2, 4.8, 8.5, 3.2, 10.0},
		{0.1, 0.2, 0.3},
	}
	for _, col := range columns {
		got := MinMax(col)
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range got {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		assert.Equal(t, 0.0, lo)
		assert.Equal(t, 1.0, hi)
	}
}

func TestCanonicalLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Yes", "yes"},
		{"  YES ", "yes"},
		{"ＹＥＳ", "yes"},
		{"No", "no"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalLabel(tt.in))
		})
	}
}

func TestNewLabelMap(t *testing.T) {
	t.Run("valid mapping", func(t *testing.T) {
		m, err := NewLabelMap("social", map[string]float64{"Yes": 1, "No": 0})
		require.NoError(t, err)

		v, ok := m.Lookup("yes")
		assert.True(t, ok)
		assert.Equal(t, 1.0, v)

		v, ok = m.Lookup("NO")
		assert.True(t, ok)
		assert.Equal(t, 0.0, v)
	})

	t.Run("unrecognized labels map to zero", func(t *testing.T) {
		m, err := NewLabelMap("social", map[string]float64{"Yes": 1, "No": 0})
		require.NoError(t, err)
		for _, label := range []string{"Maybe", "", "Y", "1", "true"} {
			v, ok := m.Lookup(label)
			assert.False(t, ok, label)
			assert.Equal(t, 0.0, v, label)
			assert.Equal(t, 0.0, m.Value(label), label)
		}
	})

	tests := []struct {
		name   string
		labels map[string]float64
	}{
		{"empty", map[string]float64{}},
		{"non-binary value", map[string]float64{"Yes": 0.5}},
		{"negative value", map[string]float64{"No": -1}},
		{"conflicting folds", map[string]float64{"Yes": 1, "yes": 0}},
		{"blank label", map[string]float64{"": 1, "No": 0}},
		{"whitespace label", map[string]float64{" \t": 1, "No": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLabelMap("social", tt.labels)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrConfiguration))

			var cfgErr *models.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "social", cfgErr.Metric)
		})
	}
}

func testWeights() models.WeightSet {
	return models.WeightSet{
		{Name: "a", Kind: models.MetricKindNumeric, Weight: 0.5},
		{Name: "flag", Kind: models.MetricKindCategorical, Weight: 0.5, Labels: map[string]float64{"Yes": 1, "No": 0}},
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	entities := []models.Entity{
		{ID: "e1", Values: map[string]float64{"a": 10}, Labels: map[string]string{"flag": "Yes"}},
		{ID: "e2", Values: map[string]float64{"a": 20}, Labels: map[string]string{"flag": "No"}},
		{ID: "e3", Values: map[string]float64{"a": 15}, Labels: map[string]string{"flag": "Unknown"}},
	}

	records, err := New(nil).Normalize(entities, testWeights())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "e1", records[0].ID)
	assert.Equal(t, 0.0, records[0].Values["a"])
	assert.Equal(t, 1.0, records[0].Values["flag"])

	assert.Equal(t, 1.0, records[1].Values["a"])
	assert.Equal(t, 0.0, records[1].Values["flag"])

	assert.Equal(t, 0.5, records[2].Values["a"])
	assert.Equal(t, 0.0, records[2].Values["flag"])
}

func TestNormalizer_FlatMetric(t *testing.T) {
	entities := []models.Entity{
		{ID: "e1", Values: map[string]float64{"a": 2}, Labels: map[string]string{"flag": "Yes"}},
		{ID: "e2", Values: map[string]float64{"a": 2}, Labels: map[string]string{"flag": "Yes"}},
	}
	records, err := New(nil).Normalize(entities, testWeights())
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, 0.0, r.Values["a"])
		assert.False(t, math.IsNaN(r.Values["a"]))
	}
}

func TestNormalizer_Deterministic(t *testing.T) {
	entities := []models.Entity{
		{ID: "e1", Values: map[string]float64{"a": 1.1}, Labels: map[string]string{"flag": "Yes"}},
		{ID: "e2", Values: map[string]float64{"a": 7.3}, Labels: map[string]string{"flag": "No"}},
	}
	n := New(nil)
	first, err := n.Normalize(entities, testWeights())
	require.NoError(t, err)
	second, err := n.Normalize(entities, testWeights())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizer_Errors(t *testing.T) {
	tests := []struct {
		name       string
		entities   []models.Entity
		wantEntity string
		wantMetric string
	}{
		{
			name: "no entities",
		},
		{
			name: "missing numeric value",
			entities: []models.Entity{
				{ID: "e1", Values: map[string]float64{}, Labels: map[string]string{"flag": "Yes"}},
			},
			wantEntity: "e1",
			wantMetric: "a",
		},
		{
			name: "NaN counts as missing",
			entities: []models.Entity{
				{ID: "e1", Values: map[string]float64{"a": math.NaN()}, Labels: map[string]string{"flag": "Yes"}},
			},
			wantEntity: "e1",
			wantMetric: "a",
		},
		{
			name: "infinite value",
			entities: []models.Entity{
				{ID: "e1", Values: map[string]float64{"a": math.Inf(1)}, Labels: map[string]string{"flag": "Yes"}},
			},
			wantEntity: "e1",
			wantMetric: "a",
		},
		{
			name: "missing label",
			entities: []models.Entity{
				{ID: "e1", Values: map[string]float64{"a": 1}},
			},
			wantEntity: "e1",
			wantMetric: "flag",
		},
		{
			name: "duplicate identifier",
			entities: []models.Entity{
				{ID: "dup", Values: map[string]float64{"a": 1}, Labels: map[string]string{"flag": "Yes"}},
				{ID: "dup", Values: map[string]float64{"a": 2}, Labels: map[string]string{"flag": "No"}},
			},
			wantEntity: "dup",
		},
		{
			name: "empty identifier",
			entities: []models.Entity{
				{ID: "", Values: map[string]float64{"a": 1}, Labels: map[string]string{"flag": "Yes"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := New(nil).Normalize(tt.entities, testWeights())
			require.Error(t, err)
			assert.Nil(t, records)

			var vErr *models.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantEntity, vErr.EntityID)
			assert.Equal(t, tt.wantMetric, vErr.Metric)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestNormalizer_Column(t *testing.T) {
	entities := []models.Entity{
		{ID: "a", Values: map[string]float64{"x": 4}},
		{ID: "b", Values: map[string]float64{"x": 8}},
	}
	col, err := New(nil).Column(entities, "x")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, col)

	_, err = New(nil).Column(nil, "x")
	assert.ErrorIs(t, err, models.ErrValidation)
}
