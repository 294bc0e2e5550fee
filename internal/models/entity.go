package models

import "math"

// MetricKind identifies how a metric's raw value is read from an entity.
type MetricKind string

const (
	MetricKindNumeric     MetricKind = "numeric"
	MetricKindCategorical MetricKind = "categorical"
)

// Policy names the rescaling applied to a metric column.
type Policy string

// PolicyMinMax rescales a column linearly onto [0,1] using its observed bounds.
const PolicyMinMax Policy = "minmax"

// Entity is one ranked subject (a dealer in the bundled sample).
//
// A metric is missing when its key is absent from Values/Labels or when a
// numeric value is NaN.
type Entity struct {
	ID     string             `json:"id"`
	Values map[string]float64 `json:"values,omitempty"`
	Labels map[string]string  `json:"labels,omitempty"`
}

// Value returns the numeric metric and whether it is present.
func (e Entity) Value(metric string) (float64, bool) {
	v, ok := e.Values[metric]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Label returns the categorical metric and whether it is present.
func (e Entity) Label(metric string) (string, bool) {
	l, ok := e.Labels[metric]
	return l, ok
}

// Clone returns a deep copy so policies can fill gaps without touching the caller's maps.
func (e Entity) Clone() Entity {
	out := Entity{ID: e.ID}
	if e.Values != nil {
		out.Values = make(map[string]float64, len(e.Values))
		for k, v := range e.Values {
			out.Values[k] = v
		}
	}
	if e.Labels != nil {
		out.Labels = make(map[string]string, len(e.Labels))
		for k, v := range e.Labels {
			out.Labels[k] = v
		}
	}
	return out
}

// MetricSpec declares one weighted metric.
type MetricSpec struct {
	Name   string     `json:"name" yaml:"name"`
	Kind   MetricKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Policy Policy     `json:"policy,omitempty" yaml:"policy,omitempty"`
	Weight float64    `json:"weight" yaml:"weight"`

	// Labels is the closed label→{0,1} mapping of a categorical metric.
	Labels map[string]float64 `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// IsCategorical reports whether the metric is read from Entity.Labels.
func (m MetricSpec) IsCategorical() bool {
	return m.Kind == MetricKindCategorical
}

// WeightSet is the ordered list of weighted metrics. Its order is the
// summation order and the display column order.
type WeightSet []MetricSpec

// Names returns metric names in declaration order.
func (ws WeightSet) Names() []string {
	names := make([]string, len(ws))
	for i, m := range ws {
		names[i] = m.Name
	}
	return names
}

// Sum returns the total of all weights, accumulated in declaration order.
func (ws WeightSet) Sum() float64 {
	sum := 0.0
	for _, m := range ws {
		sum += m.Weight
	}
	return sum
}

// Lookup returns the metric with the given name.
func (ws WeightSet) Lookup(name string) (MetricSpec, bool) {
	for _, m := range ws {
		if m.Name == name {
			return m, true
		}
	}
	return MetricSpec{}, false
}

// Metric names used by the bundled dealer sample.
const (
	MetricRating         = "Rating"
	MetricMedianPrice    = "MedianPrice"
	MetricAnnualTurnover = "AnnualTurnover"
	MetricBranches       = "Branches"
	MetricSocialNetworks = "SocialNetworks"
)

// DefaultDealerWeights returns the dealer weighting: social presence 0.35,
// median price 0.20, turnover 0.20, rating 0.15, branch count 0.10.
func DefaultDealerWeights() WeightSet {
	return WeightSet{
		{Name: MetricRating, Kind: MetricKindNumeric, Policy: PolicyMinMax, Weight: 0.15},
		{Name: MetricMedianPrice, Kind: MetricKindNumeric, Policy: PolicyMinMax, Weight: 0.20},
		{Name: MetricAnnualTurnover, Kind: MetricKindNumeric, Policy: PolicyMinMax, Weight: 0.20},
		{Name: MetricBranches, Kind: MetricKindNumeric, Policy: PolicyMinMax, Weight: 0.10},
		{
			Name:   MetricSocialNetworks,
			Kind:   MetricKindCategorical,
			Policy: PolicyMinMax,
			Weight: 0.35,
			Labels: map[string]float64{"Yes": 1, "No": 0},
		},
	}
}
