package fairness

import (
	"fairdetect/domain/dataset"
)

// scoredDataset builds a 12-row dataset with two sensitive groups and a
// known confusion structure:
//
//	Female (0): TP=2 FN=1 FP=1 TN=2
//	Male   (1): TP=2 FN=0 FP=0 TN=4
func scoredDataset() (*dataset.Dataset, []int, LabelMap) {
	ds := &dataset.Dataset{
		Name:          "test_loans",
		SensitiveAttr: "gender",
		FeatureNames:  []string{"income"},
		Features: [][]float64{
			{10}, {20}, {30}, {40}, {50}, {60},
			{15}, {25}, {35}, {45}, {55}, {65},
		},
		Sensitive: []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1},
		Target:    []int{1, 1, 1, 0, 0, 0, 1, 1, 0, 0, 0, 0},
	}
	predictions := []int{1, 0, 1, 0, 1, 0, 1, 1, 0, 0, 0, 0}
	labels := LabelMap{0: "Female", 1: "Male"}
	return ds, predictions, labels
}

func mustPartition(ds *dataset.Dataset, predictions []int, labels LabelMap) *Partition {
	p, err := PartitionBySensitive(ds, predictions, labels)
	if err != nil {
		panic(err)
	}
	return p
}
