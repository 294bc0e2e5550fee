// Package scoring combines normalized metrics into a weighted score, ranks
// entities by it and assembles the display matrices a renderer consumes.
package scoring

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/spboyer/dealerrank/internal/models"
	"github.com/spboyer/dealerrank/internal/normalize"
)

// DefaultPrecision is the number of decimals in the score annotation.
const DefaultPrecision = 2

// Engine scores entities under one validated weight set. It holds no
// mutable state, so a single Engine may serve concurrent callers.
type Engine struct {
	weights    models.WeightSet
	normalizer *normalize.Normalizer
	logger     *slog.Logger
	precision  int
	expected   []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for imputation and exclusion notices.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPrecision sets the decimals used for the score annotation.
func WithPrecision(decimals int) Option {
	return func(e *Engine) {
		if decimals >= 0 {
			e.precision = decimals
		}
	}
}

// WithExpectedMetrics requires the weight set to name exactly these metrics.
func WithExpectedMetrics(names ...string) Option {
	return func(e *Engine) {
		e.expected = append([]string(nil), names...)
	}
}

// NewEngine validates ws and returns an engine bound to a private copy of it.
// An invalid set yields a *ConfigurationError.
func NewEngine(ws models.WeightSet, opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:    slog.Default(),
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := ValidateWeights(ws, e.expected...); err != nil {
		return nil, err
	}
	e.weights = cloneWeights(ws)
	e.normalizer = normalize.New(e.logger)
	return e, nil
}

// Weights returns a copy of the engine's weight set.
func (e *Engine) Weights() models.WeightSet {
	return cloneWeights(e.weights)
}

// Score computes the WeightedScore of every record, in input order.
// Metrics are summed in weight-set order so the result is reproducible.
func (e *Engine) Score(records []models.NormalizedRecord) (models.RankedList, error) {
	if len(records) == 0 {
		return nil, &ValidationError{Reason: "no records to score"}
	}

	scored := make(models.RankedList, len(records))
	for i, r := range records {
		score := 0.0
		values := make(map[string]float64, len(e.weights))
		for _, m := range e.weights {
			v, ok := r.Values[m.Name]
			if !ok {
				return nil, &ConfigurationError{
					Metric: m.Name,
					Reason: fmt.Sprintf("weighted metric is absent from record %q", r.ID),
				}
			}
			if err := checkNormalized(r.ID, m, v); err != nil {
				return nil, err
			}
			values[m.Name] = v
			score += m.Weight * v
		}
		scored[i] = models.ScoredRecord{
			ID:         r.ID,
			Index:      i,
			Normalized: values,
			Score:      clamp01(score),
		}
	}
	return scored, nil
}

func checkNormalized(id string, m models.MetricSpec, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return &ValidationError{EntityID: id, Metric: m.Name, Reason: fmt.Sprintf("normalized value %v outside [0,1]", v)}
	}
	if m.IsCategorical() && v != 0 && v != 1 {
		return &ValidationError{EntityID: id, Metric: m.Name, Reason: fmt.Sprintf("categorical value %v is not 0 or 1", v)}
	}
	return nil
}

// clamp01 absorbs rounding drift from weights that sum to 1 within tolerance.
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Rank returns a copy of scored ordered by score descending. Equal scores
// keep ascending Index, so the order is total and deterministic.
func Rank(scored models.RankedList) models.RankedList {
	ranked := make(models.RankedList, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}
