package scoring

import (
	"fmt"
	"math"

	"github.com/spboyer/dealerrank/internal/models"
	"github.com/spboyer/dealerrank/internal/normalize"
)

// WeightTolerance bounds how far a weight set's sum may drift from 1.
const WeightTolerance = 1e-9

// ValidateWeights checks ws for use by the engine. When expected is non-empty
// the set must name exactly those metrics.
func ValidateWeights(ws models.WeightSet, expected ...string) error {
	if len(ws) == 0 {
		return &ConfigurationError{Reason: "weight set is empty"}
	}

	seen := make(map[string]bool, len(ws))
	for _, m := range ws {
		if m.Name == "" {
			return &ConfigurationError{Reason: "metric with empty name"}
		}
		if seen[m.Name] {
			return &ConfigurationError{Metric: m.Name, Reason: "declared more than once"}
		}
		seen[m.Name] = true

		if err := validateMetric(m); err != nil {
			return err
		}
	}

	if len(expected) > 0 {
		if err := validateExpected(ws, seen, expected); err != nil {
			return err
		}
	}

	sum := ws.Sum()
	if math.Abs(sum-1) > WeightTolerance {
		return &ConfigurationError{Reason: fmt.Sprintf("weights sum to %.12g, must sum to 1 (±%g)", sum, WeightTolerance)}
	}
	return nil
}

func validateMetric(m models.MetricSpec) error {
	switch {
	case math.IsNaN(m.Weight):
		return &ConfigurationError{Metric: m.Name, Reason: "weight is NaN"}
	case m.Weight < 0:
		return &ConfigurationError{Metric: m.Name, Reason: fmt.Sprintf("negative weight %v", m.Weight)}
	case m.Weight > 1:
		return &ConfigurationError{Metric: m.Name, Reason: fmt.Sprintf("weight %v exceeds 1", m.Weight)}
	}

	switch m.Policy {
	case "", models.PolicyMinMax:
	default:
		return &ConfigurationError{Metric: m.Name, Reason: fmt.Sprintf("unknown normalization policy %q", m.Policy)}
	}

	switch m.Kind {
	case "", models.MetricKindNumeric:
		if len(m.Labels) > 0 {
			return &ConfigurationError{Metric: m.Name, Reason: "label mapping given for a numeric metric"}
		}
	case models.MetricKindCategorical:
		if _, err := normalize.NewLabelMap(m.Name, m.Labels); err != nil {
			return err
		}
	default:
		return &ConfigurationError{Metric: m.Name, Reason: fmt.Sprintf("unknown metric kind %q", m.Kind)}
	}
	return nil
}

func validateExpected(ws models.WeightSet, declared map[string]bool, expected []string) error {
	want := make(map[string]bool, len(expected))
	for _, name := range expected {
		want[name] = true
	}
	for _, m := range ws {
		if !want[m.Name] {
			return &ConfigurationError{Metric: m.Name, Reason: "unknown metric"}
		}
	}
	for _, name := range expected {
		if !declared[name] {
			return &ConfigurationError{Metric: name, Reason: "no weight declared"}
		}
	}
	if len(ws) != len(want) {
		return &ConfigurationError{Reason: fmt.Sprintf("expected %d weights, got %d", len(want), len(ws))}
	}
	return nil
}

func cloneWeights(ws models.WeightSet) models.WeightSet {
	out := make(models.WeightSet, len(ws))
	for i, m := range ws {
		out[i] = m
		if m.Labels != nil {
			out[i].Labels = make(map[string]float64, len(m.Labels))
			for k, v := range m.Labels {
				out[i].Labels[k] = v
			}
		}
	}
	return out
}
