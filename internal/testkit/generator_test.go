package testkit

import (
	"testing"
)

// TestLoanDataset_Deterministic verifies the generator is a pure function
// of its options.
func TestLoanDataset_Deterministic(t *testing.T) {
	a, predsA := LoanDataset(DefaultLoanOptions())
	b, predsB := LoanDataset(DefaultLoanOptions())

	if a.RowCount() != b.RowCount() {
		t.Fatalf("Row counts differ: %d vs %d", a.RowCount(), b.RowCount())
	}
	for i := range predsA {
		if predsA[i] != predsB[i] {
			t.Fatalf("Predictions diverge at row %d", i)
		}
		if a.Features[i][0] != b.Features[i][0] {
			t.Fatalf("Features diverge at row %d", i)
		}
	}
}

// TestLoanDataset_BiasDirection verifies the injected gap only ever flips
// group 0 positives to negative predictions.
func TestLoanDataset_BiasDirection(t *testing.T) {
	ds, preds := LoanDataset(DefaultLoanOptions())
	if err := ds.Validate(); err != nil {
		t.Fatalf("Generated dataset invalid: %v", err)
	}
	if err := ds.ValidatePredictions(preds); err != nil {
		t.Fatalf("Generated predictions invalid: %v", err)
	}

	flips := 0
	for i := range preds {
		if preds[i] == ds.Target[i] {
			continue
		}
		if ds.Sensitive[i] != 0 || ds.Target[i] != 1 || preds[i] != 0 {
			t.Fatalf("Unexpected flip at row %d: group=%d target=%d pred=%d",
				i, ds.Sensitive[i], ds.Target[i], preds[i])
		}
		flips++
	}
	if flips == 0 {
		t.Error("Default options should inject at least one flipped prediction")
	}
}
