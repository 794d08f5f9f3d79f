package stats

import (
	"errors"
	"math"
	"testing"

	"fairdetect/domain/core"
	"fairdetect/domain/fairness"
)

// TestGoodnessOfFit checks the statistic and p-value against hand
// computation: observed [90 50], expected mean 70, statistic 800/70.
func TestGoodnessOfFit(t *testing.T) {
	tester := NewChiSquareTester()

	test, err := tester.GoodnessOfFit([]float64{90, 50})
	if err != nil {
		t.Fatalf("GoodnessOfFit failed: %v", err)
	}
	if test.DegreesOfFreedom != 1 {
		t.Errorf("df = %d, want 1", test.DegreesOfFreedom)
	}
	if math.Abs(test.Statistic-800.0/70) > 1e-9 {
		t.Errorf("Statistic = %f, want %f", test.Statistic, 800.0/70)
	}
	// chi2 sf(11.4286, 1) ~= 0.000724
	if test.PValue > 0.001 || test.PValue <= 0 {
		t.Errorf("PValue = %f, want ~0.0007", test.PValue)
	}
	if fairness.VerdictFromP(test.PValue) != fairness.VerdictRejectAt99 {
		t.Errorf("Expected rejection at 99%%, got %s", fairness.VerdictFromP(test.PValue))
	}
}

func TestGoodnessOfFit_Uniform(t *testing.T) {
	tester := NewChiSquareTester()
	test, err := tester.GoodnessOfFit([]float64{50, 50, 50})
	if err != nil {
		t.Fatalf("GoodnessOfFit failed: %v", err)
	}
	if test.Statistic != 0 || test.PValue != 1 {
		t.Errorf("Uniform observations: statistic=%f p=%f, want 0 and 1", test.Statistic, test.PValue)
	}
	if test.DegreesOfFreedom != 2 {
		t.Errorf("df = %d, want 2", test.DegreesOfFreedom)
	}
}

func TestGoodnessOfFit_ZeroMean(t *testing.T) {
	tester := NewChiSquareTester()
	test, err := tester.GoodnessOfFit([]float64{0, 0})
	if err != nil {
		t.Fatalf("GoodnessOfFit failed: %v", err)
	}
	if test.Defined() {
		t.Errorf("Zero expectation should be undefined, got p=%f", test.PValue)
	}
}

func TestGoodnessOfFit_TooFewObservations(t *testing.T) {
	tester := NewChiSquareTester()
	if _, err := tester.GoodnessOfFit([]float64{42}); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("Expected ErrInsufficientData, got %v", err)
	}
}

// TestIndependence_Yates checks the continuity-corrected 2x2 statistic:
// [[10 20] [20 10]] has every expected cell at 15, so the corrected
// statistic is 4 * 4.5^2 / 15 = 5.4, p ~= 0.0201.
func TestIndependence_Yates(t *testing.T) {
	tester := NewChiSquareTester()

	test, err := tester.Independence([][]float64{{10, 20}, {20, 10}})
	if err != nil {
		t.Fatalf("Independence failed: %v", err)
	}
	if test.DegreesOfFreedom != 1 {
		t.Errorf("df = %d, want 1", test.DegreesOfFreedom)
	}
	if math.Abs(test.Statistic-5.4) > 1e-9 {
		t.Errorf("Statistic = %f, want 5.4", test.Statistic)
	}
	if test.PValue <= 0.01 || test.PValue > 0.05 {
		t.Errorf("PValue = %f, want ~0.0201", test.PValue)
	}
	if fairness.VerdictFromP(test.PValue) != fairness.VerdictRejectAt95 {
		t.Errorf("Expected rejection at 95%%, got %s", fairness.VerdictFromP(test.PValue))
	}
}

func TestIndependence_UniformTable(t *testing.T) {
	tester := NewChiSquareTester()
	test, err := tester.Independence([][]float64{{25, 25}, {25, 25}})
	if err != nil {
		t.Fatalf("Independence failed: %v", err)
	}
	if test.Statistic != 0 || test.PValue != 1 {
		t.Errorf("Uniform table: statistic=%f p=%f, want 0 and 1", test.Statistic, test.PValue)
	}
}

// TestIndependence_LargerTable verifies the plain (uncorrected) statistic on
// a 3x2 table, where the Yates correction must not apply.
func TestIndependence_LargerTable(t *testing.T) {
	tester := NewChiSquareTester()

	test, err := tester.Independence([][]float64{{20, 10}, {15, 15}, {10, 20}})
	if err != nil {
		t.Fatalf("Independence failed: %v", err)
	}
	if test.DegreesOfFreedom != 2 {
		t.Errorf("df = %d, want 2", test.DegreesOfFreedom)
	}
	// Every expected cell is 15; statistic = 2*(25/15) + 0 + 2*(25/15)
	want := 100.0 / 15
	if math.Abs(test.Statistic-want) > 1e-9 {
		t.Errorf("Statistic = %f, want %f", test.Statistic, want)
	}
}

// TestIndependence_ZeroExpected verifies a zero marginal yields an undefined
// test rather than an error or a fault.
func TestIndependence_ZeroExpected(t *testing.T) {
	tester := NewChiSquareTester()
	test, err := tester.Independence([][]float64{{0, 10}, {0, 20}})
	if err != nil {
		t.Fatalf("Independence failed: %v", err)
	}
	if test.Defined() {
		t.Errorf("Zero expected cell should be undefined, got p=%f", test.PValue)
	}
	if fairness.VerdictFromP(test.PValue) != fairness.VerdictUndefined {
		t.Error("Undefined test should map to the undefined verdict")
	}
}

func TestIndependence_BadShape(t *testing.T) {
	tester := NewChiSquareTester()
	if _, err := tester.Independence([][]float64{{1, 2}}); !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("Single row: expected ErrInsufficientData, got %v", err)
	}
	if _, err := tester.Independence([][]float64{{1}, {2}}); !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("Single column: expected ErrInsufficientData, got %v", err)
	}
	if _, err := tester.Independence([][]float64{{1, 2}, {3}}); err == nil {
		t.Error("Ragged matrix should be rejected")
	}
}
