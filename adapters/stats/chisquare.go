// Package stats implements the statistics collaborator on gonum's
// chi-squared distribution.
package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"fairdetect/domain/core"
	"fairdetect/domain/fairness"
)

// ChiSquareTester runs chi-square tests of independence and goodness of fit
type ChiSquareTester struct{}

// NewChiSquareTester creates the gonum-backed tester
func NewChiSquareTester() *ChiSquareTester {
	return &ChiSquareTester{}
}

// Independence performs a chi-square test of independence on a raw-count
// contingency matrix. A 2x2 table gets the Yates continuity correction,
// matching the behavior the audit's formulas were calibrated against.
// A zero expected frequency yields a NaN statistic and p-value rather than
// an error; the verdict layer reports it as undefined.
func (t *ChiSquareTester) Independence(counts [][]float64) (fairness.HypothesisTest, error) {
	rows := len(counts)
	if rows < 2 {
		return fairness.HypothesisTest{}, fmt.Errorf("%w: need at least 2 groups, got %d", core.ErrInsufficientData, rows)
	}
	cols := len(counts[0])
	if cols < 2 {
		return fairness.HypothesisTest{}, fmt.Errorf("%w: need at least 2 label columns, got %d", core.ErrInsufficientData, cols)
	}
	for i, row := range counts {
		if len(row) != cols {
			return fairness.HypothesisTest{}, fmt.Errorf("ragged contingency matrix at row %d", i)
		}
	}

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	total := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowTotals[i] += counts[i][j]
			colTotals[j] += counts[i][j]
			total += counts[i][j]
		}
	}
	df := (rows - 1) * (cols - 1)
	if total == 0 {
		return undefinedTest(df), nil
	}

	yates := rows == 2 && cols == 2
	statistic := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := rowTotals[i] * colTotals[j] / total
			if expected == 0 {
				// Degenerate cell: the test has no defined expectation here
				return undefinedTest(df), nil
			}
			deviation := math.Abs(counts[i][j] - expected)
			if yates {
				deviation = math.Max(0, deviation-0.5)
			}
			statistic += deviation * deviation / expected
		}
	}

	return fairness.HypothesisTest{
		Statistic:        statistic,
		PValue:           survival(statistic, df),
		DegreesOfFreedom: df,
	}, nil
}

// GoodnessOfFit performs a chi-square goodness-of-fit test of an observed
// vector against a uniform expectation (the mean of the observations), the
// literal formula the disparity tests use over rate vectors scaled to
// percentages. With only two or three subgroups this test has little power;
// that is a documented property of the audit, not something to correct here.
func (t *ChiSquareTester) GoodnessOfFit(observed []float64) (fairness.HypothesisTest, error) {
	k := len(observed)
	if k < 2 {
		return fairness.HypothesisTest{}, fmt.Errorf("%w: need at least 2 observations, got %d", core.ErrInsufficientData, k)
	}
	expected, err := mstats.Mean(observed)
	if err != nil {
		return fairness.HypothesisTest{}, err
	}
	df := k - 1
	if expected == 0 {
		return undefinedTest(df), nil
	}

	statistic := 0.0
	for _, o := range observed {
		d := o - expected
		statistic += d * d / expected
	}

	return fairness.HypothesisTest{
		Statistic:        statistic,
		PValue:           survival(statistic, df),
		DegreesOfFreedom: df,
	}, nil
}

func survival(statistic float64, df int) float64 {
	dist := distuv.ChiSquared{K: float64(df)}
	p := 1 - dist.CDF(statistic)
	if p < 0 {
		p = 0
	}
	return p
}

func undefinedTest(df int) fairness.HypothesisTest {
	return fairness.HypothesisTest{
		Statistic:        math.NaN(),
		PValue:           math.NaN(),
		DegreesOfFreedom: df,
	}
}
