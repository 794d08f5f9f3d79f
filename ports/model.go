package ports

import (
	"context"
)

// Model is the pre-trained binary classifier under audit. Predictions are
// 0/1 labels aligned one-to-one with the input rows; non-binary outputs are
// out of scope.
type Model interface {
	Predict(ctx context.Context, rows [][]float64) ([]int, error)
}
