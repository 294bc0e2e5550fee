package normalize

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/spboyer/dealerrank/internal/models"
)

// Normalizer turns entities into NormalizedRecords. It keeps no state
// between calls; the logger only reports unrecognized labels.
type Normalizer struct {
	logger *slog.Logger
}

// New returns a Normalizer. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Column min-max normalizes one numeric metric across entities, in input order.
func (n *Normalizer) Column(entities []models.Entity, metric string) ([]float64, error) {
	if len(entities) == 0 {
		return nil, &models.ValidationError{Metric: metric, Reason: "no entities to normalize"}
	}
	raw := make([]float64, len(entities))
	for i, e := range entities {
		v, ok := e.Value(metric)
		if !ok {
			return nil, &models.ValidationError{EntityID: e.ID, Metric: metric, Reason: "value is missing"}
		}
		if math.IsInf(v, 0) {
			return nil, &models.ValidationError{EntityID: e.ID, Metric: metric, Reason: "value is not finite"}
		}
		raw[i] = v
	}
	return MinMax(raw), nil
}

// Binary maps one categorical metric across entities onto {0,1}.
func (n *Normalizer) Binary(entities []models.Entity, spec models.MetricSpec) ([]float64, error) {
	if len(entities) == 0 {
		return nil, &models.ValidationError{Metric: spec.Name, Reason: "no entities to normalize"}
	}
	labels, err := NewLabelMap(spec.Name, spec.Labels)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(entities))
	for i, e := range entities {
		label, ok := e.Label(spec.Name)
		if !ok {
			return nil, &models.ValidationError{EntityID: e.ID, Metric: spec.Name, Reason: "label is missing"}
		}
		v, known := labels.Lookup(label)
		if !known {
			n.logger.Debug("unrecognized label mapped to 0", "entity", e.ID, "metric", spec.Name, "label", label)
		}
		out[i] = v
	}
	return out, nil
}

// Normalize rescales every metric in ws. Entities must be non-empty, carry
// unique non-empty IDs and supply every declared metric.
func (n *Normalizer) Normalize(entities []models.Entity, ws models.WeightSet) ([]models.NormalizedRecord, error) {
	if len(entities) == 0 {
		return nil, &models.ValidationError{Reason: "no entities to normalize"}
	}
	if err := checkIDs(entities); err != nil {
		return nil, err
	}

	records := make([]models.NormalizedRecord, len(entities))
	for i, e := range entities {
		records[i] = models.NormalizedRecord{ID: e.ID, Values: make(map[string]float64, len(ws))}
	}

	for _, spec := range ws {
		var (
			col []float64
			err error
		)
		if spec.IsCategorical() {
			col, err = n.Binary(entities, spec)
		} else {
			col, err = n.Column(entities, spec.Name)
		}
		if err != nil {
			return nil, err
		}
		for i, v := range col {
			records[i].Values[spec.Name] = v
		}
	}
	return records, nil
}

func checkIDs(entities []models.Entity) error {
	seen := make(map[string]int, len(entities))
	for i, e := range entities {
		if e.ID == "" {
			return &models.ValidationError{Reason: fmt.Sprintf("entity at position %d has an empty identifier", i)}
		}
		if prev, dup := seen[e.ID]; dup {
			return &models.ValidationError{
				EntityID: e.ID,
				Reason:   fmt.Sprintf("duplicate identifier (positions %d and %d)", prev, i),
			}
		}
		seen[e.ID] = i
	}
	return nil
}
