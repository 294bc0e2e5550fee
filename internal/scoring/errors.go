package scoring

import "github.com/spboyer/dealerrank/internal/models"

// The error taxonomy lives in models so the normalizer can raise it too.
type (
	ConfigurationError = models.ConfigurationError
	ValidationError    = models.ValidationError
)

var (
	ErrConfiguration = models.ErrConfiguration
	ErrValidation    = models.ErrValidation
)
