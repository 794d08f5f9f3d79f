package excel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fairdetect/domain/core"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

// TestReadDataset_CSV loads a small CSV and checks the special columns are
// routed to their vectors while the rest become features.
func TestReadDataset_CSV(t *testing.T) {
	path := writeCSV(t, `income,gender,approved,predicted,age
50.5,0,1,1,30
60.0,1,0,0,40
70.5,0,1,0,50
`)

	reader := NewDatasetReader(path)
	ds, predictions, err := reader.ReadDataset(ReadOptions{
		Sensitive:   "gender",
		Target:      "approved",
		Predictions: "predicted",
	})
	if err != nil {
		t.Fatalf("ReadDataset failed: %v", err)
	}

	if ds.RowCount() != 3 {
		t.Fatalf("RowCount = %d, want 3", ds.RowCount())
	}
	if ds.SensitiveAttr != "gender" {
		t.Errorf("SensitiveAttr = %s", ds.SensitiveAttr)
	}
	if len(ds.FeatureNames) != 2 || ds.FeatureNames[0] != "income" || ds.FeatureNames[1] != "age" {
		t.Errorf("FeatureNames = %v, want [income age]", ds.FeatureNames)
	}
	if ds.Features[0][0] != 50.5 || ds.Features[2][1] != 50 {
		t.Errorf("Features misrouted: %v", ds.Features)
	}
	if ds.Sensitive[1] != 1 || ds.Target[1] != 0 {
		t.Errorf("Special columns misrouted: sensitive=%v target=%v", ds.Sensitive, ds.Target)
	}
	if len(predictions) != 3 || predictions[2] != 0 {
		t.Errorf("Predictions = %v", predictions)
	}
}

// TestReadDataset_NoPredictionColumn leaves predictions nil for callers that
// score through a model instead.
func TestReadDataset_NoPredictionColumn(t *testing.T) {
	path := writeCSV(t, `income,gender,approved
50,0,1
60,1,0
`)

	ds, predictions, err := NewDatasetReader(path).ReadDataset(ReadOptions{
		Sensitive: "gender",
		Target:    "approved",
	})
	if err != nil {
		t.Fatalf("ReadDataset failed: %v", err)
	}
	if predictions != nil {
		t.Errorf("Predictions = %v, want nil", predictions)
	}
	if ds.FeatureCount() != 1 {
		t.Errorf("FeatureCount = %d, want 1", ds.FeatureCount())
	}
}

func TestReadDataset_MissingColumn(t *testing.T) {
	path := writeCSV(t, `income,gender,approved
50,0,1
60,1,0
`)

	_, _, err := NewDatasetReader(path).ReadDataset(ReadOptions{
		Sensitive: "race",
		Target:    "approved",
	})
	if !errors.Is(err, core.ErrAttributeMissing) {
		t.Fatalf("Expected ErrAttributeMissing, got %v", err)
	}
}

func TestReadDataset_BadValue(t *testing.T) {
	path := writeCSV(t, `income,gender,approved
fifty,0,1
60,1,0
`)

	_, _, err := NewDatasetReader(path).ReadDataset(ReadOptions{
		Sensitive: "gender",
		Target:    "approved",
	})
	if err == nil {
		t.Fatal("Non-numeric feature value should be rejected")
	}
}

func TestReadDataset_FileNotFound(t *testing.T) {
	_, _, err := NewDatasetReader("/nonexistent/data.csv").ReadDataset(ReadOptions{
		Sensitive: "gender",
		Target:    "approved",
	})
	if err == nil {
		t.Fatal("Missing file should be reported")
	}
}

func TestReadDataset_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "income,gender,approved\n")
	_, _, err := NewDatasetReader(path).ReadDataset(ReadOptions{
		Sensitive: "gender",
		Target:    "approved",
	})
	if err == nil {
		t.Fatal("Header-only file should be rejected")
	}
}
