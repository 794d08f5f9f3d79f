package fairness

import (
	"fmt"

	"fairdetect/domain/core"
	"fairdetect/domain/dataset"
)

// ContingencyRow holds the target-label counts for one sensitive group.
// Shares is the row-normalized view; its two entries sum to 1 for any
// non-empty group.
type ContingencyRow struct {
	Value  int        `json:"value"`
	Group  string     `json:"group"`
	Counts [2]int     `json:"counts"` // indexed by target label 0/1
	Shares [2]float64 `json:"shares"`
}

// ContingencyTable is the sensitive-group x target-label count table,
// rows ordered by raw sensitive value.
type ContingencyTable struct {
	Rows []ContingencyRow `json:"rows"`
}

// Subgroup is one partition cell: the rows of the dataset carrying a single
// sensitive value, with their true and predicted labels attached.
type Subgroup struct {
	Value     int    `json:"value"`
	Name      string `json:"name"`
	Rows      []int  `json:"rows"`
	Target    []int  `json:"target"`
	Predicted []int  `json:"predicted"`
}

// Size returns the number of records in the subgroup
func (g *Subgroup) Size() int {
	return len(g.Rows)
}

// Partition is a disjoint cover of the dataset by sensitive group,
// ordered by raw sensitive value.
type Partition struct {
	Groups []Subgroup `json:"groups"`
}

// Group looks up a subgroup by its raw sensitive value
func (p *Partition) Group(value int) (*Subgroup, bool) {
	for i := range p.Groups {
		if p.Groups[i].Value == value {
			return &p.Groups[i], true
		}
	}
	return nil, false
}

// Size returns the total number of records across all groups
func (p *Partition) Size() int {
	total := 0
	for i := range p.Groups {
		total += p.Groups[i].Size()
	}
	return total
}

// PartitionBySensitive splits the dataset rows by sensitive value into the
// labeled groups, attaching predicted and true labels to each row. The label
// map must cover exactly the distinct values present; a mismatch is a
// configuration error raised before any statistic is computed.
func PartitionBySensitive(ds *dataset.Dataset, predictions []int, labels LabelMap) (*Partition, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if err := ds.ValidatePredictions(predictions); err != nil {
		return nil, err
	}
	if err := labels.Validate(ds.DistinctSensitiveValues()); err != nil {
		return nil, err
	}

	byValue := make(map[int]*Subgroup, len(labels))
	ordered := labels.SortedValues()
	groups := make([]Subgroup, len(ordered))
	for i, v := range ordered {
		groups[i] = Subgroup{Value: v, Name: labels[v]}
		byValue[v] = &groups[i]
	}
	for i, v := range ds.Sensitive {
		g := byValue[v]
		g.Rows = append(g.Rows, i)
		g.Target = append(g.Target, ds.Target[i])
		g.Predicted = append(g.Predicted, predictions[i])
	}
	return &Partition{Groups: groups}, nil
}

// BuildContingencyTable crosses the sensitive groups with the true target
// labels. Zero-count cells are valid; the independence test downstream may
// report an undefined p-value for them rather than fail.
func BuildContingencyTable(p *Partition) (ContingencyTable, error) {
	if len(p.Groups) == 0 {
		return ContingencyTable{}, core.ErrInsufficientData
	}
	rows := make([]ContingencyRow, len(p.Groups))
	for i := range p.Groups {
		g := &p.Groups[i]
		row := ContingencyRow{Value: g.Value, Group: g.Name}
		for _, t := range g.Target {
			row.Counts[t]++
		}
		if n := g.Size(); n > 0 {
			row.Shares[0] = float64(row.Counts[0]) / float64(n)
			row.Shares[1] = float64(row.Counts[1]) / float64(n)
		}
		rows[i] = row
	}
	return ContingencyTable{Rows: rows}, nil
}

// CountMatrix returns the raw counts as a float matrix for the
// independence test
func (t ContingencyTable) CountMatrix() [][]float64 {
	m := make([][]float64, len(t.Rows))
	for i, row := range t.Rows {
		m[i] = []float64{float64(row.Counts[0]), float64(row.Counts[1])}
	}
	return m
}

// Total returns the grand total count
func (t ContingencyTable) Total() int {
	total := 0
	for _, row := range t.Rows {
		total += row.Counts[0] + row.Counts[1]
	}
	return total
}

// Series is a labeled numeric vector handed to the presentation collaborator
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// GroupShareSeries returns each group's share of the dataset
func (t ContingencyTable) GroupShareSeries() Series {
	total := t.Total()
	s := Series{}
	for _, row := range t.Rows {
		s.Labels = append(s.Labels, row.Group)
		share := 0.0
		if total > 0 {
			share = float64(row.Counts[0]+row.Counts[1]) / float64(total)
		}
		s.Values = append(s.Values, share)
	}
	return s
}

// TargetShareSeries returns each target label's share of the dataset
func (t ContingencyTable) TargetShareSeries() Series {
	total := t.Total()
	s := Series{Labels: []string{"0", "1"}, Values: []float64{0, 0}}
	if total == 0 {
		return s
	}
	for _, row := range t.Rows {
		s.Values[0] += float64(row.Counts[0])
		s.Values[1] += float64(row.Counts[1])
	}
	s.Values[0] /= float64(total)
	s.Values[1] /= float64(total)
	return s
}

// String renders a compact textual form, useful in logs
func (t ContingencyTable) String() string {
	out := ""
	for _, row := range t.Rows {
		out += fmt.Sprintf("%s: 0=%d 1=%d\n", row.Group, row.Counts[0], row.Counts[1])
	}
	return out
}
