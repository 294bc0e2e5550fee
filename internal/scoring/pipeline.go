package scoring

import (
	"log/slog"

	"github.com/spboyer/dealerrank/internal/models"
)

// Result is the complete output of one scoring pass. It is either fully
// populated or not returned at all.
type Result struct {
	Weights  models.WeightSet  `json:"weights"`
	Missing  MissingPolicy     `json:"missing_policy"`
	Ranked   models.RankedList `json:"ranked"`
	Display  *models.Display   `json:"display"`
	Excluded []string          `json:"excluded,omitempty"`
	Imputed  []Imputation      `json:"imputed,omitempty"`
}

// Run executes missing-value handling, normalization, scoring, ranking and
// display assembly over entities. entities is read, never modified.
func (e *Engine) Run(entities []models.Entity, policy MissingPolicy) (*Result, error) {
	if policy == "" {
		policy = DefaultMissingPolicy
	}

	kept, excluded, imputed, err := applyMissing(entities, e.weights, policy, e.logger)
	if err != nil {
		return nil, err
	}

	records, err := e.normalizer.Normalize(kept, e.weights)
	if err != nil {
		return nil, err
	}

	scored, err := e.Score(records)
	if err != nil {
		return nil, err
	}
	ranked := Rank(scored)

	display, err := BuildDisplay(ranked, kept, e.weights, e.precision)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("scoring pass complete", "entities", len(ranked), "excluded", len(excluded), "imputed", len(imputed))

	return &Result{
		Weights:  e.Weights(),
		Missing:  policy,
		Ranked:   ranked,
		Display:  display,
		Excluded: excluded,
		Imputed:  imputed,
	}, nil
}

// Config bundles everything a one-off pass needs.
type Config struct {
	Weights models.WeightSet
	Missing MissingPolicy
	// Precision of the score annotation; nil selects DefaultPrecision.
	Precision *int
	Logger    *slog.Logger
}

// Run builds an engine from cfg and scores entities with it.
func Run(entities []models.Entity, cfg Config) (*Result, error) {
	precision := DefaultPrecision
	if cfg.Precision != nil {
		precision = *cfg.Precision
	}
	engine, err := NewEngine(cfg.Weights, WithLogger(cfg.Logger), WithPrecision(precision))
	if err != nil {
		return nil, err
	}
	return engine.Run(entities, cfg.Missing)
}
