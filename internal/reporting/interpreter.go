package reporting

import (
	"fmt"
	"strings"
)

// topN is the number of leaders listed in the plain-text summary.
const topN = 5

// InterpretScore returns a plain-language label for a weighted score (0–1).
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Average (50-70%)"
	default:
		return "Weak (<50%)"
	}
}

// InterpretSpread explains how far apart the ranked entities are.
func InterpretSpread(stdDev float64) string {
	switch {
	case stdDev < 0.05:
		return "Scores are tightly clustered; small weight changes may reorder the ranking."
	case stdDev < 0.2:
		return "Scores are moderately spread."
	default:
		return "Scores are widely spread; the ranking is clear-cut."
	}
}

// FormatSummaryReport produces a plain-language summary of r.
func FormatSummaryReport(r *Report) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")

	if s := r.Summary; s != nil && s.Count > 0 {
		b.WriteString(fmt.Sprintf("Entities:      %d\n", s.Count))
		b.WriteString(fmt.Sprintf("Mean Score:    %.2f — %s\n", s.Mean, InterpretScore(s.Mean)))
		b.WriteString(fmt.Sprintf("Median Score:  %.2f\n", s.Median))
		b.WriteString(fmt.Sprintf("Spread:        %s\n", InterpretSpread(s.StdDev)))
	}
	if n := len(r.Result.Excluded); n > 0 {
		b.WriteString(fmt.Sprintf("Excluded:      %d (%s)\n", n, strings.Join(r.Result.Excluded, ", ")))
	}
	if n := len(r.Result.Imputed); n > 0 {
		b.WriteString(fmt.Sprintf("Imputed:       %d missing value(s) scored as 0\n", n))
	}

	d := r.Result.Display
	if d != nil && len(d.Annotation.Rows) > 0 {
		b.WriteString("\nLeaders:\n")
		for i, id := range d.Annotation.Rows {
			if i == topN {
				break
			}
			score := r.Result.Ranked[i].Score
			b.WriteString(fmt.Sprintf("  %d. %s: %s — %s\n", i+1, id, ScoreCell(d, i), InterpretScore(score)))
		}
	}

	return b.String()
}
