package ports

import (
	"context"
)

// Explainer attributes a model's decision to input features. For each input
// row it returns one numeric contribution per feature, in the order of
// featureNames. The audit only selects rows and forwards contributions; the
// attribution computation itself belongs to the collaborator.
type Explainer interface {
	Contributions(ctx context.Context, featureNames []string, rows [][]float64) ([][]float64, error)
}
