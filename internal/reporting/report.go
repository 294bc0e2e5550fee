// Package reporting renders scoring results for people and machines and
// compares rankings between runs.
package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/spboyer/dealerrank/internal/metrics"
	"github.com/spboyer/dealerrank/internal/scoring"
)

// Report is the envelope written by `dealerrank score` and returned by the
// HTTP API.
type Report struct {
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`

	Result  *scoring.Result  `json:"result"`
	Summary *metrics.Summary `json:"summary"`
}

// NewReport wraps result with a fresh run id and its score summary.
func NewReport(source string, result *scoring.Result) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Result:    result,
		Summary:   metrics.Summarize(result.Ranked, result.Weights),
	}
}

// LoadReport reads a JSON report written by RenderJSON.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	if r.Result == nil {
		return nil, fmt.Errorf("report %s has no result", path)
	}
	return &r, nil
}
