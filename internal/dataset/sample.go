package dataset

import (
	"fmt"

	"github.com/spboyer/dealerrank/internal/models"
)

var (
	sampleRating = []float64{
		4.3, 3.9, 4.7, 3.5, 4.1, 4.6, 4.0, 3.8, 4.4, 3.7,
		4.2, 4.5, 3.6, 4.8, 3.9, 4.1, 4.3, 3.8, 4.6, 4.0,
		4.9, 3.7, 4.2, 3.9, 4.4,
	}
	sampleMedianPrice = []float64{
		41000, 37000, 45000, 32000, 39000, 43000, 36000, 35000, 42000, 33000,
		40000, 44000, 34000, 48000, 37000, 39000, 41000, 36000, 45000, 38000,
		50000, 34000, 40000, 37000, 43000,
	}
	sampleTurnover = []float64{
		6.2, 4.8, 8.5, 3.2, 5.0, 7.4, 4.5, 3.8, 6.0, 3.5,
		5.6, 7.0, 3.3, 9.0, 5.2, 5.4, 6.3, 3.7, 8.0, 5.0,
		10.0, 3.6, 5.8, 5.1, 6.7,
	}
	sampleBranches = []float64{
		3, 2, 4, 1, 2, 3, 2, 1, 3, 1,
		2, 3, 1, 4, 2, 2, 3, 1, 4, 2,
		5, 1, 2, 2, 3,
	}
	sampleSocial = []string{
		"Yes", "Yes", "Yes", "No", "Yes", "Yes", "Yes", "No", "Yes", "No",
		"Yes", "Yes", "No", "Yes", "Yes", "Yes", "Yes", "No", "Yes", "Yes",
		"Yes", "No", "Yes", "Yes", "Yes",
	}
)

// SampleName labels reports produced from Sample.
const SampleName = "built-in sample (25 dealers)"

// Sample returns the 25-dealer reference dataset, "Dealer 1" .. "Dealer 25".
// Every call returns fresh maps.
func Sample() []models.Entity {
	out := make([]models.Entity, len(sampleRating))
	for i := range out {
		out[i] = models.Entity{
			ID: fmt.Sprintf("Dealer %d", i+1),
			Values: map[string]float64{
				models.MetricRating:         sampleRating[i],
				models.MetricMedianPrice:    sampleMedianPrice[i],
				models.MetricAnnualTurnover: sampleTurnover[i],
				models.MetricBranches:       sampleBranches[i],
			},
			Labels: map[string]string{
				models.MetricSocialNetworks: sampleSocial[i],
			},
		}
	}
	return out
}
