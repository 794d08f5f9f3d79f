package ports

import (
	"fairdetect/domain/fairness"
)

// StatsTester is the statistics collaborator: chi-square test of
// independence over a contingency count matrix, and chi-square goodness of
// fit of an observed vector against a uniform expectation. Degenerate inputs
// (zero expected frequencies) yield a NaN-valued test, not an error.
type StatsTester interface {
	Independence(counts [][]float64) (fairness.HypothesisTest, error)
	GoodnessOfFit(observed []float64) (fairness.HypothesisTest, error)
}
