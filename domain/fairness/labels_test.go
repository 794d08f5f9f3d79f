package fairness

import (
	"errors"
	"fmt"
	"testing"

	"fairdetect/domain/core"
)

func TestBuildLabels(t *testing.T) {
	labels, err := BuildLabels([]int{0, 1}, func(v int) (string, error) {
		return []string{"Female", "Male"}[v], nil
	})
	if err != nil {
		t.Fatalf("BuildLabels failed: %v", err)
	}
	if labels[0] != "Female" || labels[1] != "Male" {
		t.Errorf("Unexpected labels: %v", labels)
	}
}

// TestBuildLabels_EmptyName verifies an empty display name is a
// configuration error, never a silent default.
func TestBuildLabels_EmptyName(t *testing.T) {
	_, err := BuildLabels([]int{0}, func(v int) (string, error) {
		return "", nil
	})
	if !errors.Is(err, core.ErrLabelMissing) {
		t.Fatalf("Expected ErrLabelMissing, got %v", err)
	}
}

func TestBuildLabels_SourceError(t *testing.T) {
	_, err := BuildLabels([]int{0, 1}, func(v int) (string, error) {
		if v == 1 {
			return "", fmt.Errorf("no name for %d", v)
		}
		return "Female", nil
	})
	if !errors.Is(err, core.ErrLabelMissing) {
		t.Fatalf("Expected ErrLabelMissing, got %v", err)
	}
}

// TestLabelMap_Validate checks the exact-cover rule: the map must name every
// distinct value and nothing else.
func TestLabelMap_Validate(t *testing.T) {
	m := LabelMap{0: "Female", 1: "Male"}

	if err := m.Validate([]int{0, 1}); err != nil {
		t.Errorf("Exact cover should validate: %v", err)
	}
	if err := m.Validate([]int{0, 1, 2}); !errors.Is(err, core.ErrLabelCardinality) {
		t.Errorf("Missing value should fail with ErrLabelCardinality, got %v", err)
	}
	if err := m.Validate([]int{0}); !errors.Is(err, core.ErrLabelCardinality) {
		t.Errorf("Extra label should fail with ErrLabelCardinality, got %v", err)
	}
	if err := m.Validate([]int{0, 2}); !errors.Is(err, core.ErrLabelMissing) {
		t.Errorf("Mismatched value should fail with ErrLabelMissing, got %v", err)
	}
}

func TestLabelMap_SortedValues(t *testing.T) {
	m := LabelMap{3: "c", 1: "a", 2: "b"}
	got := m.SortedValues()
	want := []int{1, 2, 3}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("SortedValues = %v, want %v", got, want)
		}
	}
}
