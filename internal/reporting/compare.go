package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/spboyer/dealerrank/internal/models"
)

// RankDelta is one entity's movement between two rankings. Rank 0 means
// the entity is absent from that side: its score is nil and ScoreDelta is
// NaN, written as null in JSON.
type RankDelta struct {
	ID     string   `json:"id"`
	RankA  int      `json:"rank_a"`
	RankB  int      `json:"rank_b"`
	ScoreA *float64 `json:"score_a"`
	ScoreB *float64 `json:"score_b"`
	// Moved is RankA - RankB: positive when the entity climbed in B.
	Moved      int     `json:"moved"`
	ScoreDelta float64 `json:"score_delta"`
}

// Present reports whether the entity is ranked on both sides.
func (d RankDelta) Present() bool {
	return d.RankA > 0 && d.RankB > 0
}

// Comparison is the result of CompareRankings.
type Comparison struct {
	A      string      `json:"a"`
	B      string      `json:"b"`
	Deltas []RankDelta `json:"deltas"`
}

// CompareRankings lines up a and b by entity ID. Entities follow a's order,
// then entities only b ranks, in b's order.
func CompareRankings(a, b models.RankedList) []RankDelta {
	deltas := make([]RankDelta, 0, len(a))
	seen := make(map[string]bool, len(a))

	for i, r := range a {
		seen[r.ID] = true
		d := RankDelta{ID: r.ID, RankA: i + 1, ScoreA: floatPtr(r.Score), RankB: b.Position(r.ID)}
		if d.RankB > 0 {
			d.ScoreB = floatPtr(b[d.RankB-1].Score)
			d.Moved = d.RankA - d.RankB
			d.ScoreDelta = *d.ScoreB - *d.ScoreA
		} else {
			d.ScoreDelta = math.NaN()
		}
		deltas = append(deltas, d)
	}
	for i, r := range b {
		if seen[r.ID] {
			continue
		}
		deltas = append(deltas, RankDelta{ID: r.ID, RankB: i + 1, ScoreB: floatPtr(r.Score), ScoreDelta: math.NaN()})
	}
	return deltas
}

// CompareReports compares the rankings of two reports.
func CompareReports(a, b *Report) *Comparison {
	return &Comparison{
		A:      a.Source,
		B:      b.Source,
		Deltas: CompareRankings(a.Result.Ranked, b.Result.Ranked),
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

// MarshalJSON writes a NaN ScoreDelta as null.
func (d RankDelta) MarshalJSON() ([]byte, error) {
	type plain RankDelta
	out := struct {
		plain
		ScoreDelta *float64 `json:"score_delta"`
	}{plain: plain(d)}
	if !math.IsNaN(d.ScoreDelta) {
		out.ScoreDelta = floatPtr(d.ScoreDelta)
	}
	return json.Marshal(out)
}

// RenderComparisonJSON writes c indented by two spaces.
func RenderComparisonJSON(w io.Writer, c *Comparison) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparison report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// RenderComparisonTable writes c as an aligned table.
func RenderComparisonTable(w io.Writer, c *Comparison) error {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 70) + "\n")
	b.WriteString(" RANKING COMPARISON\n")
	b.WriteString(strings.Repeat("=", 70) + "\n\n")
	fmt.Fprintf(&b, "  [A] %s\n  [B] %s\n\n", c.A, c.B)

	idWidth := idColumnWidth("Entity", c.Deltas)
	fmt.Fprintf(&b, "  %s  %-6s %-6s %-8s %-8s %s\n", padRight("Entity", idWidth), "[A]", "[B]", "Score A", "Score B", "Delta")
	for _, d := range c.Deltas {
		fmt.Fprintf(&b, "  %s  %-6s %-6s %-8s %-8s %s\n",
			padRight(d.ID, idWidth),
			rankText(d.RankA), rankText(d.RankB),
			scoreText(d.ScoreA), scoreText(d.ScoreB),
			movementText(d))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func idColumnWidth(header string, deltas []RankDelta) int {
	w := runewidth.StringWidth(header)
	for _, d := range deltas {
		if n := runewidth.StringWidth(d.ID); n > w {
			w = n
		}
	}
	return w
}

func rankText(rank int) string {
	if rank == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", rank)
}

func scoreText(score *float64) string {
	if score == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *score)
}

func movementText(d RankDelta) string {
	if !d.Present() {
		return "n/a"
	}
	icon := " "
	if d.Moved > 0 {
		icon = "↑"
	} else if d.Moved < 0 {
		icon = "↓"
	}
	return fmt.Sprintf("%s%+d (%+.4f)", icon, d.Moved, d.ScoreDelta)
}
