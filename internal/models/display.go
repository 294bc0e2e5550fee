package models

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ScoreColumn is the trailing column of both display matrices.
const ScoreColumn = "WeightedScore"

// ColorMatrix carries the [0,1] intensities a renderer maps onto its color scale.
type ColorMatrix struct {
	Rows    []string
	Columns []string
	data    *mat.Dense
}

// NewColorMatrix wraps values, which must be len(rows) x len(columns).
func NewColorMatrix(rows, columns []string, values [][]float64) (*ColorMatrix, error) {
	if len(values) != len(rows) {
		return nil, fmt.Errorf("color matrix: %d value rows for %d row labels", len(values), len(rows))
	}
	m := &ColorMatrix{Rows: rows, Columns: columns}
	if len(rows) == 0 || len(columns) == 0 {
		return m, nil
	}
	flat := make([]float64, 0, len(rows)*len(columns))
	for i, row := range values {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("color matrix: row %q has %d cells, expected %d", rows[i], len(row), len(columns))
		}
		flat = append(flat, row...)
	}
	m.data = mat.NewDense(len(rows), len(columns), flat)
	return m, nil
}

// Dims returns the number of rows and columns.
func (m *ColorMatrix) Dims() (int, int) {
	return len(m.Rows), len(m.Columns)
}

// At returns the cell at row i, column j.
func (m *ColorMatrix) At(i, j int) float64 {
	return m.data.At(i, j)
}

// Row returns a copy of row i.
func (m *ColorMatrix) Row(i int) []float64 {
	if m.data == nil {
		return nil
	}
	return mat.Row(nil, i, m.data)
}

// Column returns a copy of column j.
func (m *ColorMatrix) Column(j int) []float64 {
	if m.data == nil {
		return nil
	}
	return mat.Col(nil, j, m.data)
}

// Cells returns the matrix as nested slices.
func (m *ColorMatrix) Cells() [][]float64 {
	out := make([][]float64, len(m.Rows))
	for i := range m.Rows {
		out[i] = m.Row(i)
	}
	return out
}

type colorMatrixJSON struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

func (m *ColorMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(colorMatrixJSON{Rows: m.Rows, Columns: m.Columns, Values: m.Cells()})
}

func (m *ColorMatrix) UnmarshalJSON(data []byte) error {
	var raw colorMatrixJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := NewColorMatrix(raw.Rows, raw.Columns, raw.Values)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// AnnotationMatrix carries the human-readable text drawn over each cell.
type AnnotationMatrix struct {
	Rows    []string   `json:"rows"`
	Columns []string   `json:"columns"`
	Cells   [][]string `json:"cells"`
}

// At returns the annotation at row i, column j.
func (a *AnnotationMatrix) At(i, j int) string {
	return a.Cells[i][j]
}

// Display pairs the color and annotation matrices. Both share row order
// (the ranked order) and column order.
type Display struct {
	Color      *ColorMatrix      `json:"color"`
	Annotation *AnnotationMatrix `json:"annotation"`
}
