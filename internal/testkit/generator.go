package testkit

import (
	"math"
	"math/rand"

	"fairdetect/domain/dataset"
	"fairdetect/domain/fairness"
)

// LoanOptions tune the synthetic loan dataset generator
type LoanOptions struct {
	Rows int
	Seed int64
	// TPRBias lowers group 0's chance of a correct positive prediction,
	// injecting an ability disparity detectable by the audit.
	TPRBias float64
}

// DefaultLoanOptions generates a mid-size dataset with a pronounced bias
func DefaultLoanOptions() LoanOptions {
	return LoanOptions{Rows: 1000, Seed: 42, TPRBias: 0.4}
}

// LoanDataset synthesizes a scored loan-approval dataset with two sensitive
// groups (0 and 1) and a deliberate true-positive-rate gap against group 0.
// Fully deterministic for a given seed.
func LoanDataset(opts LoanOptions) (*dataset.Dataset, []int) {
	rng := rand.New(rand.NewSource(opts.Seed))

	ds := &dataset.Dataset{
		Name:          "synthetic_loans",
		SensitiveAttr: "group",
		FeatureNames:  []string{"income", "debt_ratio", "age"},
	}
	predictions := make([]int, 0, opts.Rows)

	for i := 0; i < opts.Rows; i++ {
		group := i % 2
		income := 30 + rng.Float64()*70 // 30k-100k
		debt := math.Abs(rng.NormFloat64()*0.2 + 0.3)
		age := 20 + rng.Float64()*45

		// Approval depends on income and debt only
		target := 0
		if income/100-debt*0.5+rng.NormFloat64()*0.1 > 0.25 {
			target = 1
		}

		// The biased scorer misses deserving applicants of group 0
		pred := target
		if target == 1 && group == 0 && rng.Float64() < opts.TPRBias {
			pred = 0
		}

		ds.Sensitive = append(ds.Sensitive, group)
		ds.Target = append(ds.Target, target)
		ds.Features = append(ds.Features, []float64{income, debt, age})
		predictions = append(predictions, pred)
	}
	return ds, predictions
}

// LoanLabels names the generator's two groups
func LoanLabels() fairness.LabelMap {
	return fairness.LabelMap{0: "Group A", 1: "Group B"}
}
