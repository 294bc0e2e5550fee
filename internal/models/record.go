package models

// NormalizedRecord holds an entity's metrics rescaled onto [0,1].
// Categorical metrics appear as 0 or 1.
type NormalizedRecord struct {
	ID     string             `json:"id"`
	Values map[string]float64 `json:"values"`
}

// ScoredRecord is a NormalizedRecord plus its WeightedScore.
type ScoredRecord struct {
	ID string `json:"id"`

	// Index is the entity's position in the scored input, used to break ties.
	Index      int                `json:"index"`
	Normalized map[string]float64 `json:"normalized"`
	Score      float64            `json:"weighted_score"`
}

// RankedList is ordered by Score descending; equal scores keep input order.
type RankedList []ScoredRecord

// IDs returns entity identifiers in ranked order.
func (rl RankedList) IDs() []string {
	ids := make([]string, len(rl))
	for i, r := range rl {
		ids[i] = r.ID
	}
	return ids
}

// Scores returns the WeightedScore column in ranked order.
func (rl RankedList) Scores() []float64 {
	out := make([]float64, len(rl))
	for i, r := range rl {
		out[i] = r.Score
	}
	return out
}

// Position returns the 1-based rank of id, or 0 when id is not ranked.
func (rl RankedList) Position(id string) int {
	for i, r := range rl {
		if r.ID == id {
			return i + 1
		}
	}
	return 0
}
