package scoring

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spboyer/dealerrank/internal/models"
)

// MissingPolicy decides what happens to an entity lacking a declared metric.
type MissingPolicy string

const (
	// MissingZero fills numeric gaps with 0 and absent labels with "" (which maps to 0).
	MissingZero MissingPolicy = "zero"
	// MissingExclude drops the entity from the pass and reports it in Result.Excluded.
	MissingExclude MissingPolicy = "exclude"
	// MissingFail rejects the whole pass with a ValidationError.
	MissingFail MissingPolicy = "fail"
)

// DefaultMissingPolicy keeps the behaviour of the dealer sheet this engine replaced.
const DefaultMissingPolicy = MissingZero

func (p MissingPolicy) String() string {
	return string(p)
}

// ParseMissingPolicy converts a flag or config value to a MissingPolicy.
// An empty string selects DefaultMissingPolicy.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMissingPolicy, nil
	case "zero":
		return MissingZero, nil
	case "exclude":
		return MissingExclude, nil
	case "fail":
		return MissingFail, nil
	default:
		return DefaultMissingPolicy, fmt.Errorf("invalid missing-value policy %q: must be zero, exclude, or fail", s)
	}
}

// Imputation records one metric value the zero policy filled in.
type Imputation struct {
	EntityID string `json:"entity_id"`
	Metric   string `json:"metric"`
}

// applyMissing returns the entities that take part in the pass. The input
// slice and its maps are never modified.
func applyMissing(entities []models.Entity, ws models.WeightSet, policy MissingPolicy, logger *slog.Logger) ([]models.Entity, []string, []Imputation, error) {
	if policy == "" {
		policy = DefaultMissingPolicy
	}

	kept := make([]models.Entity, 0, len(entities))
	var excluded []string
	var imputed []Imputation

	for _, e := range entities {
		gaps := missingMetrics(e, ws)
		if len(gaps) == 0 {
			kept = append(kept, e)
			continue
		}

		switch policy {
		case MissingFail:
			return nil, nil, nil, &ValidationError{EntityID: e.ID, Metric: gaps[0].Name, Reason: "value is missing"}
		case MissingExclude:
			logger.Warn("excluding entity with missing metrics", "entity", e.ID, "missing", len(gaps))
			excluded = append(excluded, e.ID)
		case MissingZero:
			filled := e.Clone()
			for _, m := range gaps {
				if m.IsCategorical() {
					if filled.Labels == nil {
						filled.Labels = make(map[string]string)
					}
					filled.Labels[m.Name] = ""
				} else {
					if filled.Values == nil {
						filled.Values = make(map[string]float64)
					}
					filled.Values[m.Name] = 0
				}
				logger.Debug("imputed missing metric as zero", "entity", e.ID, "metric", m.Name)
				imputed = append(imputed, Imputation{EntityID: e.ID, Metric: m.Name})
			}
			kept = append(kept, filled)
		default:
			return nil, nil, nil, &ConfigurationError{Reason: fmt.Sprintf("unknown missing-value policy %q", policy)}
		}
	}
	return kept, excluded, imputed, nil
}

func missingMetrics(e models.Entity, ws models.WeightSet) []models.MetricSpec {
	var gaps []models.MetricSpec
	for _, m := range ws {
		var ok bool
		if m.IsCategorical() {
			_, ok = e.Label(m.Name)
		} else {
			_, ok = e.Value(m.Name)
		}
		if !ok {
			gaps = append(gaps, m)
		}
	}
	return gaps
}
