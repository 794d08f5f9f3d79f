package fairness

import (
	"math"
	"testing"
)

func TestComputePrecision(t *testing.T) {
	ds, predictions, labels := scoredDataset()
	precision := ComputePrecision(mustPartition(ds, predictions, labels))

	if math.Abs(precision[0].Precision.Value-2.0/3) > 1e-9 {
		t.Errorf("Female precision = %f, want 2/3", precision[0].Precision.Value)
	}
	if precision[1].Precision.Value != 1 {
		t.Errorf("Male precision = %f, want 1", precision[1].Precision.Value)
	}

	values, ok := PrecisionVector(precision)
	if !ok {
		t.Fatal("Precision vector should be defined")
	}
	if math.Abs(values[0]-200.0/3) > 1e-9 || values[1] != 100 {
		t.Errorf("Precision vector = %v", values)
	}
}

// TestComputePrecision_NoPositivePredictions verifies that a subgroup with
// no positive predictions reports an undefined precision.
func TestComputePrecision_NoPositivePredictions(t *testing.T) {
	ds, predictions, labels := scoredDataset()
	for i := 6; i < 12; i++ {
		predictions[i] = 0
	}
	precision := ComputePrecision(mustPartition(ds, predictions, labels))

	if precision[1].Precision.Defined {
		t.Error("Precision should be undefined with no positive predictions")
	}
	if _, ok := PrecisionVector(precision); ok {
		t.Error("PrecisionVector should report the undefined group")
	}
}
