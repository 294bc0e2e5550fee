package scoring

import (
	"strconv"

	"github.com/spboyer/dealerrank/internal/models"
)

// BuildDisplay assembles the color and annotation matrices for ranked.
// Rows follow the ranked order; columns are the metrics of ws in declaration
// order followed by models.ScoreColumn. Color cells hold normalized values,
// annotation cells hold the raw values taken from entities.
func BuildDisplay(ranked models.RankedList, entities []models.Entity, ws models.WeightSet, precision int) (*models.Display, error) {
	byID := make(map[string]models.Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	columns := append(ws.Names(), models.ScoreColumn)
	rows := ranked.IDs()

	colorCells := make([][]float64, len(ranked))
	textCells := make([][]string, len(ranked))
	for i, r := range ranked {
		e, ok := byID[r.ID]
		if !ok {
			return nil, &ValidationError{EntityID: r.ID, Reason: "ranked entity has no raw record"}
		}

		colorRow := make([]float64, 0, len(columns))
		textRow := make([]string, 0, len(columns))
		for _, m := range ws {
			v, ok := r.Normalized[m.Name]
			if !ok {
				return nil, &ConfigurationError{Metric: m.Name, Reason: "weighted metric is absent from scored record " + strconv.Quote(r.ID)}
			}
			colorRow = append(colorRow, v)
			textRow = append(textRow, rawText(e, m))
		}
		colorRow = append(colorRow, r.Score)
		textRow = append(textRow, FormatScore(r.Score, precision))

		colorCells[i] = colorRow
		textCells[i] = textRow
	}

	color, err := models.NewColorMatrix(rows, columns, colorCells)
	if err != nil {
		return nil, err
	}
	return &models.Display{
		Color: color,
		Annotation: &models.AnnotationMatrix{
			Rows:    append([]string(nil), rows...),
			Columns: append([]string(nil), columns...),
			Cells:   textCells,
		},
	}, nil
}

// FormatScore renders a score with a fixed number of decimals ("0.70", not "0.7").
func FormatScore(score float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return strconv.FormatFloat(score, 'f', precision, 64)
}

func rawText(e models.Entity, m models.MetricSpec) string {
	if m.IsCategorical() {
		label, _ := e.Label(m.Name)
		return label
	}
	v, ok := e.Value(m.Name)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
