package dataset

import (
	"encoding/json"
	"fmt"
)

// LoadJSON reads a JSON array of objects, one object per entity.
func LoadJSON(path string) ([]Row, error) {
	f, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("json: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var rows []Row
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("json: parse %s: %w", path, err)
	}
	return rows, nil
}

// Load reads path as CSV or JSON depending on its extension.
func Load(path string) ([]Row, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return LoadJSON(path)
	default:
		return LoadCSV(path)
	}
}
