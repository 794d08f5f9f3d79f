package dataset

import (
	"fmt"
	"sort"

	"fairdetect/domain/core"
)

// Dataset is a column-oriented view of a scored test set. Features hold the
// model inputs, Sensitive the raw value of the attribute under scrutiny, and
// Target the true binary label, all aligned by row index. The sensitive
// column is kept out of Features so attribution comparisons never include it.
type Dataset struct {
	Name          string      `json:"name,omitempty"`
	SensitiveAttr string      `json:"sensitive_attr"`
	FeatureNames  []string    `json:"feature_names"`
	Features      [][]float64 `json:"features"` // Features[i][j] = feature j of row i
	Sensitive     []int       `json:"sensitive"`
	Target        []int       `json:"target"`
}

// RowCount returns the number of records
func (d *Dataset) RowCount() int {
	return len(d.Target)
}

// FeatureCount returns the number of feature columns
func (d *Dataset) FeatureCount() int {
	return len(d.FeatureNames)
}

// Validate checks the structural invariants: every row carries a sensitive
// value and a binary target, and feature rows match the declared columns.
func (d *Dataset) Validate() error {
	n := d.RowCount()
	if n == 0 {
		return core.ErrInsufficientData
	}
	if d.SensitiveAttr == "" {
		return core.NewConfigError(core.ErrAttributeMissing, "no sensitive attribute name set")
	}
	if len(d.Sensitive) != n {
		return core.NewConfigError(core.ErrAttributeMissing,
			fmt.Sprintf("sensitive column has %d values for %d rows", len(d.Sensitive), n))
	}
	if len(d.Features) != n {
		return fmt.Errorf("feature rows (%d) do not match target rows (%d)", len(d.Features), n)
	}
	for i, row := range d.Features {
		if len(row) != len(d.FeatureNames) {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(row), len(d.FeatureNames))
		}
	}
	for i, t := range d.Target {
		if t != 0 && t != 1 {
			return fmt.Errorf("%w: target[%d]=%d", core.ErrNonBinaryLabel, i, t)
		}
	}
	return nil
}

// ValidatePredictions checks that a prediction vector aligns with the dataset
func (d *Dataset) ValidatePredictions(predictions []int) error {
	if len(predictions) != d.RowCount() {
		return fmt.Errorf("%w: %d predictions for %d rows",
			core.ErrPredictionLength, len(predictions), d.RowCount())
	}
	for i, p := range predictions {
		if p != 0 && p != 1 {
			return fmt.Errorf("%w: prediction[%d]=%d", core.ErrNonBinaryLabel, i, p)
		}
	}
	return nil
}

// DistinctSensitiveValues returns the sorted set of raw sensitive values
func (d *Dataset) DistinctSensitiveValues() []int {
	seen := make(map[int]bool)
	for _, v := range d.Sensitive {
		seen[v] = true
	}
	values := make([]int, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// FeatureColumn extracts one feature column by index
func (d *Dataset) FeatureColumn(j int) []float64 {
	col := make([]float64, d.RowCount())
	for i, row := range d.Features {
		col[i] = row[j]
	}
	return col
}

// FeatureIndex returns the column index of a named feature
func (d *Dataset) FeatureIndex(name string) (int, bool) {
	for j, n := range d.FeatureNames {
		if n == name {
			return j, true
		}
	}
	return 0, false
}
