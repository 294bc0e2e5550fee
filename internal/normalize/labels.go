package normalize

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/spboyer/dealerrank/internal/models"
)

// CanonicalLabel folds a categorical label to its lookup key: NFKC, trimmed,
// case-folded. "Yes", " yes" and "ＹＥＳ" share one key.
func CanonicalLabel(label string) string {
	s := strings.TrimSpace(norm.NFKC.String(label))
	return cases.Fold().String(s)
}

// LabelMap is a closed mapping from categorical labels to {0,1}.
// Labels outside the mapping resolve to 0.
type LabelMap struct {
	metric string
	values map[string]float64
}

// NewLabelMap builds the mapping for metric. Every value must be exactly 0
// or 1, two labels that fold to the same key must agree, and no label may
// fold to "": that key is reserved for an absent label, which is always 0.
func NewLabelMap(metric string, labels map[string]float64) (LabelMap, error) {
	if len(labels) == 0 {
		return LabelMap{}, &models.ConfigurationError{Metric: metric, Reason: "categorical metric has no label mapping"}
	}

	// Sorted so the reported conflict doesn't depend on map iteration order.
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := LabelMap{metric: metric, values: make(map[string]float64, len(labels))}
	for _, label := range keys {
		v := labels[label]
		if v != 0 && v != 1 {
			return LabelMap{}, &models.ConfigurationError{
				Metric: metric,
				Reason: fmt.Sprintf("label %q maps to %v, must be 0 or 1", label, v),
			}
		}
		key := CanonicalLabel(label)
		if key == "" {
			return LabelMap{}, &models.ConfigurationError{
				Metric: metric,
				Reason: fmt.Sprintf("label %q is blank", label),
			}
		}
		if prev, ok := m.values[key]; ok && prev != v {
			return LabelMap{}, &models.ConfigurationError{
				Metric: metric,
				Reason: fmt.Sprintf("labels folding to %q map to both %v and %v", key, prev, v),
			}
		}
		m.values[key] = v
	}
	return m, nil
}

// Lookup returns the binary value for label and whether label is recognized.
func (m LabelMap) Lookup(label string) (float64, bool) {
	v, ok := m.values[CanonicalLabel(label)]
	return v, ok
}

// Value returns the binary value for label, 0 when unrecognized.
func (m LabelMap) Value(label string) float64 {
	v, _ := m.Lookup(label)
	return v
}
