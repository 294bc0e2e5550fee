package metrics

import (
	"github.com/spboyer/dealerrank/internal/models"
)

// Contribution is the average share one metric adds to the weighted score.
type Contribution struct {
	Metric string  `json:"metric"`
	Weight float64 `json:"weight"`
	// Mean of weight x normalized value across the ranked entities.
	Mean float64 `json:"mean"`
	// Share of the mean score explained by this metric, in [0,1].
	Share float64 `json:"share"`
}

// Summary describes the distribution of scores in one ranked list.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	CI95Low  float64 `json:"ci95_low"`
	CI95High float64 `json:"ci95_high"`

	Contributions []Contribution `json:"contributions"`
}

// Summarize computes score statistics and per-metric contributions for
// ranked under ws. Contributions follow the declaration order of ws.
func Summarize(ranked models.RankedList, ws models.WeightSet) *Summary {
	scores := ranked.Scores()
	lo, hi := Range(scores)
	ciLo, ciHi := ConfidenceInterval95(scores)

	s := &Summary{
		Count:    len(scores),
		Mean:     Mean(scores),
		StdDev:   StdDev(scores),
		Median:   Median(scores),
		Min:      lo,
		Max:      hi,
		CI95Low:  ciLo,
		CI95High: ciHi,
	}

	s.Contributions = make([]Contribution, len(ws))
	for i, m := range ws {
		parts := make([]float64, len(ranked))
		for j, r := range ranked {
			parts[j] = m.Weight * r.Normalized[m.Name]
		}
		c := Contribution{Metric: m.Name, Weight: m.Weight, Mean: Mean(parts)}
		if s.Mean > 0 {
			c.Share = c.Mean / s.Mean
		}
		s.Contributions[i] = c
	}
	return s
}
