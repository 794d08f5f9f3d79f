package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrReportNotFound = fmt.Errorf("%w: audit report", ErrNotFound)
	ErrGroupNotFound  = fmt.Errorf("%w: sensitive group", ErrNotFound)

	// Configuration errors
	ErrAttributeMissing = errors.New("sensitive attribute not present in dataset")
	ErrLabelMissing     = errors.New("label missing for sensitive value")
	ErrLabelCardinality = errors.New("label map does not match distinct sensitive values")
	ErrPredictionLength = errors.New("predictions do not align one-to-one with dataset rows")
	ErrNonBinaryLabel   = errors.New("target and predicted labels must be 0 or 1")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Attribution errors
	ErrEmptyCohort = errors.New("misclassified cohort is empty")
)

// NewConfigError wraps a configuration sentinel with context
func NewConfigError(err error, detail string) error {
	return fmt.Errorf("%w: %s", err, detail)
}
