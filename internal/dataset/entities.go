package dataset

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/spboyer/dealerrank/internal/models"
)

// DefaultIDColumn names the identifier column of the dealer sheet.
const DefaultIDColumn = "Dealer"

// Entities converts rows into entities for the metrics declared in ws.
// Blank or absent cells are left missing so the engine's missing-value
// policy decides their fate. A cell that cannot be read as its metric's
// type is a *models.ValidationError.
func Entities(rows []Row, idColumn string, ws models.WeightSet) ([]models.Entity, error) {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}

	entities := make([]models.Entity, 0, len(rows))
	for i, row := range rows {
		line := i + 1

		id, err := coerceString(row[idColumn])
		if err != nil {
			return nil, &models.ValidationError{Metric: idColumn, Reason: fmt.Sprintf("row %d: identifier: %v", line, err)}
		}
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, &models.ValidationError{Metric: idColumn, Reason: fmt.Sprintf("row %d: identifier is blank", line)}
		}

		e := models.Entity{ID: id, Values: map[string]float64{}, Labels: map[string]string{}}
		for _, m := range ws {
			cell, present := row[m.Name]
			if !present || isBlank(cell) {
				continue
			}
			if m.IsCategorical() {
				label, err := coerceString(cell)
				if err != nil {
					return nil, &models.ValidationError{EntityID: id, Metric: m.Name, Reason: fmt.Sprintf("row %d: %v", line, err)}
				}
				e.Labels[m.Name] = strings.TrimSpace(label)
				continue
			}
			v, err := coerceFloat(cell)
			if err != nil {
				return nil, &models.ValidationError{EntityID: id, Metric: m.Name, Reason: fmt.Sprintf("row %d: %v", line, err)}
			}
			e.Values[m.Name] = v
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func isBlank(cell any) bool {
	if cell == nil {
		return true
	}
	s, ok := cell.(string)
	return ok && strings.TrimSpace(s) == ""
}

// coerceFloat reads strings, json.Number, bools and numbers as float64.
func coerceFloat(cell any) (float64, error) {
	if s, ok := cell.(string); ok {
		cell = strings.TrimSpace(s)
	}
	var out float64
	if err := weakDecode(cell, &out); err != nil {
		return 0, fmt.Errorf("cannot read %v (%T) as a number", cell, cell)
	}
	return out, nil
}

func coerceString(cell any) (string, error) {
	if cell == nil {
		return "", nil
	}
	var out string
	if err := weakDecode(cell, &out); err != nil {
		return "", fmt.Errorf("cannot read %v (%T) as text", cell, cell)
	}
	return out, nil
}

func weakDecode(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
