package fairness

import (
	"errors"
	"math"
	"testing"

	"fairdetect/domain/core"
	"fairdetect/domain/dataset"
)

// attributionDataset has one misclassified cohort by construction: rows 0
// and 1 (Female, true label 1, predicted 0). The "flag" column is all zeros
// to exercise the zero-mean denominator.
func attributionDataset() (*dataset.Dataset, []int, LabelMap) {
	ds := &dataset.Dataset{
		Name:          "attribution_fixture",
		SensitiveAttr: "gender",
		FeatureNames:  []string{"income", "flag"},
		Features: [][]float64{
			{10, 0}, {20, 0}, {30, 0}, {40, 0}, {50, 0}, {60, 0},
		},
		Sensitive: []int{0, 0, 0, 0, 1, 1},
		Target:    []int{1, 1, 0, 0, 1, 0},
	}
	predictions := []int{0, 0, 1, 0, 1, 0}
	labels := LabelMap{0: "Female", 1: "Male"}
	return ds, predictions, labels
}

func TestMisclassifiedCohort(t *testing.T) {
	ds, predictions, labels := attributionDataset()

	c, err := MisclassifiedCohort(ds, predictions, labels, 0, 0)
	if err != nil {
		t.Fatalf("MisclassifiedCohort failed: %v", err)
	}
	if c.Group != "Female" || c.Size() != 2 {
		t.Fatalf("Cohort = %+v, want 2 Female records", c)
	}
	if c.Rows[0] != 0 || c.Rows[1] != 1 {
		t.Errorf("Cohort rows = %v, want [0 1]", c.Rows)
	}
}

func TestMisclassifiedCohort_UnknownGroup(t *testing.T) {
	ds, predictions, labels := attributionDataset()
	_, err := MisclassifiedCohort(ds, predictions, labels, 7, 0)
	if !errors.Is(err, core.ErrGroupNotFound) {
		t.Fatalf("Expected ErrGroupNotFound, got %v", err)
	}
}

func TestMisclassifiedCohort_NonBinaryLabel(t *testing.T) {
	ds, predictions, labels := attributionDataset()
	_, err := MisclassifiedCohort(ds, predictions, labels, 0, 2)
	if !errors.Is(err, core.ErrNonBinaryLabel) {
		t.Fatalf("Expected ErrNonBinaryLabel, got %v", err)
	}
}

// TestCompareToTrueClass checks the relative mean difference against hand
// computation: cohort income mean 15, true-class comparison is row 3 only
// (correctly classified Female with label 0), mean 40.
func TestCompareToTrueClass(t *testing.T) {
	ds, predictions, labels := attributionDataset()
	c, _ := MisclassifiedCohort(ds, predictions, labels, 0, 0)

	deltas, err := CompareToTrueClass(ds, predictions, c)
	if err != nil {
		t.Fatalf("CompareToTrueClass failed: %v", err)
	}

	income := deltas[0]
	if !income.Defined {
		t.Fatal("Income delta should be defined")
	}
	want := (15.0 - 40.0) / 15.0
	if math.Abs(income.Delta-want) > 1e-9 {
		t.Errorf("Income delta = %f, want %f", income.Delta, want)
	}

	// The flag column's cohort mean is zero, the formula's denominator
	if deltas[1].Defined {
		t.Error("Delta with zero cohort mean should be undefined")
	}
}

// TestCompareToPopulation compares against all six rows: income mean 35.
func TestCompareToPopulation(t *testing.T) {
	ds, predictions, labels := attributionDataset()
	c, _ := MisclassifiedCohort(ds, predictions, labels, 0, 0)

	deltas, err := CompareToPopulation(ds, c)
	if err != nil {
		t.Fatalf("CompareToPopulation failed: %v", err)
	}
	want := (15.0 - 35.0) / 15.0
	if math.Abs(deltas[0].Delta-want) > 1e-9 {
		t.Errorf("Income delta = %f, want %f", deltas[0].Delta, want)
	}
}

// TestCompareEmptyCohort verifies the comparisons refuse an empty cohort
// with the dedicated condition instead of an index fault.
func TestCompareEmptyCohort(t *testing.T) {
	ds, predictions, labels := attributionDataset()
	c, err := MisclassifiedCohort(ds, predictions, labels, 1, 1)
	if err != nil {
		t.Fatalf("MisclassifiedCohort failed: %v", err)
	}
	if !c.Empty() {
		t.Fatalf("Expected empty cohort, got %d rows", c.Size())
	}

	if _, err := CompareToTrueClass(ds, predictions, c); !errors.Is(err, core.ErrEmptyCohort) {
		t.Errorf("CompareToTrueClass: expected ErrEmptyCohort, got %v", err)
	}
	if _, err := CompareToPopulation(ds, c); !errors.Is(err, core.ErrEmptyCohort) {
		t.Errorf("CompareToPopulation: expected ErrEmptyCohort, got %v", err)
	}
}
