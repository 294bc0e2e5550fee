package models

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid record")
)

// ConfigurationError reports an unusable weight set. It is raised before
// any scoring starts.
type ConfigurationError struct {
	Metric string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Metric == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: metric %q: %s", e.Metric, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ValidationError reports a malformed entity or record. A single
// ValidationError fails the whole batch.
type ValidationError struct {
	EntityID string
	Metric   string
	Reason   string
}

func (e *ValidationError) Error() string {
	switch {
	case e.EntityID != "" && e.Metric != "":
		return fmt.Sprintf("validation error: entity %q: metric %q: %s", e.EntityID, e.Metric, e.Reason)
	case e.EntityID != "":
		return fmt.Sprintf("validation error: entity %q: %s", e.EntityID, e.Reason)
	case e.Metric != "":
		return fmt.Sprintf("validation error: metric %q: %s", e.Metric, e.Reason)
	default:
		return fmt.Sprintf("validation error: %s", e.Reason)
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
