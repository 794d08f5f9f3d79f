package fairness

import (
	"fmt"
	"sort"

	"fairdetect/domain/core"
)

// LabelMap maps each raw sensitive-attribute value to a display name.
// Built once and treated as immutable afterward.
type LabelMap map[int]string

// BuildLabels constructs a label map for the distinct sensitive values,
// obtaining each display name from nameFor. An empty name or an error from
// nameFor is a configuration error, never a silent default.
func BuildLabels(values []int, nameFor func(value int) (string, error)) (LabelMap, error) {
	labels := make(LabelMap, len(values))
	for _, v := range values {
		name, err := nameFor(v)
		if err != nil {
			return nil, core.NewConfigError(core.ErrLabelMissing, fmt.Sprintf("value %d: %v", v, err))
		}
		if name == "" {
			return nil, core.NewConfigError(core.ErrLabelMissing, fmt.Sprintf("empty label for value %d", v))
		}
		labels[v] = name
	}
	return labels, nil
}

// Validate checks that the map covers exactly the distinct values present in
// the data: no missing entry, no extra entry.
func (m LabelMap) Validate(distinct []int) error {
	if len(m) != len(distinct) {
		return core.NewConfigError(core.ErrLabelCardinality,
			fmt.Sprintf("%d labels for %d distinct values", len(m), len(distinct)))
	}
	for _, v := range distinct {
		if _, ok := m[v]; !ok {
			return core.NewConfigError(core.ErrLabelMissing, fmt.Sprintf("no label for value %d", v))
		}
	}
	return nil
}

// SortedValues returns the mapped raw values in ascending order
func (m LabelMap) SortedValues() []int {
	values := make([]int, 0, len(m))
	for v := range m {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// Name returns the display name for a raw value
func (m LabelMap) Name(value int) (string, bool) {
	name, ok := m[value]
	return name, ok
}
