package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Every input was scored
	ExitInvalidInput = 1 // An input dataset was rejected
	ExitError        = 2 // Configuration or runtime error
)

// InvalidInputError indicates that scoring ran but rejected a dataset:
// a missing, non-finite or uncoercible value, or a duplicate identifier.
type InvalidInputError struct {
	Source string
	Err    error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return ExitInvalidInput
	}
	return ExitError
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
