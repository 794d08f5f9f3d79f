package fairness

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"fairdetect/domain/core"
	"fairdetect/domain/dataset"
)

// Cohort is the set of records misclassified into one
// (sensitive value, predicted label) pair. Computed freshly per attribution
// call from the current prediction set; never persisted.
type Cohort struct {
	Group          string `json:"group"`
	Value          int    `json:"value"`
	PredictedLabel int    `json:"predicted_label"`
	Rows           []int  `json:"rows"`
}

// Size returns the number of cohort records
func (c Cohort) Size() int {
	return len(c.Rows)
}

// Empty reports whether no such misclassifications exist
func (c Cohort) Empty() bool {
	return len(c.Rows) == 0
}

// FeatureDelta is the relative mean difference of one feature between the
// cohort and a comparison set. Defined is false when the cohort mean is zero
// (the formula's denominator) or the comparison set is empty.
type FeatureDelta struct {
	Feature string  `json:"feature"`
	Delta   float64 `json:"delta"`
	Defined bool    `json:"defined"`
}

// MisclassifiedCohort selects the rows where the prediction disagrees with
// the true label, restricted to the given sensitive value and predicted
// label. An unknown sensitive value or non-binary label is a lookup failure,
// not an empty result.
func MisclassifiedCohort(ds *dataset.Dataset, predictions []int, labels LabelMap, value, predictedLabel int) (Cohort, error) {
	if err := ds.ValidatePredictions(predictions); err != nil {
		return Cohort{}, err
	}
	name, ok := labels.Name(value)
	if !ok {
		return Cohort{}, fmt.Errorf("%w: value %d", core.ErrGroupNotFound, value)
	}
	if predictedLabel != 0 && predictedLabel != 1 {
		return Cohort{}, fmt.Errorf("%w: predicted label %d", core.ErrNonBinaryLabel, predictedLabel)
	}
	c := Cohort{Group: name, Value: value, PredictedLabel: predictedLabel}
	for i := range ds.Target {
		if predictions[i] != ds.Target[i] && ds.Sensitive[i] == value && predictions[i] == predictedLabel {
			c.Rows = append(c.Rows, i)
		}
	}
	return c, nil
}

// CompareToTrueClass computes, per feature, the relative mean difference
// between the cohort and the correctly classified members of the class the
// cohort was misplaced into: rows of the same sensitive value whose true
// label equals the cohort's predicted label.
func CompareToTrueClass(ds *dataset.Dataset, predictions []int, c Cohort) ([]FeatureDelta, error) {
	if c.Empty() {
		return nil, core.ErrEmptyCohort
	}
	var comparison []int
	for i := range ds.Target {
		if predictions[i] == ds.Target[i] && ds.Sensitive[i] == c.Value && ds.Target[i] == c.PredictedLabel {
			comparison = append(comparison, i)
		}
	}
	return relativeMeanDiff(ds, c.Rows, comparison), nil
}

// CompareToPopulation computes the same relative mean difference against the
// whole dataset instead of the true-class subset.
func CompareToPopulation(ds *dataset.Dataset, c Cohort) ([]FeatureDelta, error) {
	if c.Empty() {
		return nil, core.ErrEmptyCohort
	}
	all := make([]int, ds.RowCount())
	for i := range all {
		all[i] = i
	}
	return relativeMeanDiff(ds, c.Rows, all), nil
}

// relativeMeanDiff evaluates (mean(cohort) - mean(comparison)) / mean(cohort)
// per feature. The sensitive column lives outside Features, so it is never
// part of the comparison.
func relativeMeanDiff(ds *dataset.Dataset, cohortRows, comparisonRows []int) []FeatureDelta {
	deltas := make([]FeatureDelta, ds.FeatureCount())
	for j, name := range ds.FeatureNames {
		deltas[j] = FeatureDelta{Feature: name}
		cohortMean, okA := subsetMean(ds, cohortRows, j)
		compMean, okB := subsetMean(ds, comparisonRows, j)
		if !okA || !okB || cohortMean == 0 {
			continue
		}
		deltas[j].Delta = (cohortMean - compMean) / cohortMean
		deltas[j].Defined = true
	}
	return deltas
}

func subsetMean(ds *dataset.Dataset, rows []int, col int) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = ds.Features[r][col]
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	return mean, true
}
