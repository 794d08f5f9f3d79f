// Package model provides in-process reference implementations of the model
// and explainer ports for callers that do not bring their own classifier.
package model

import (
	"context"
	"fmt"
	"math"
)

// LinearModel scores rows with a logistic function over fixed weights and
// thresholds the probability into a binary label. It is a scoring-only
// collaborator; training happens elsewhere.
type LinearModel struct {
	Weights   []float64
	Bias      float64
	Threshold float64 // label 1 when probability >= Threshold
}

// NewLinearModel creates a logistic scorer with a 0.5 decision threshold
func NewLinearModel(weights []float64, bias float64) *LinearModel {
	return &LinearModel{Weights: weights, Bias: bias, Threshold: 0.5}
}

// Predict implements ports.Model
func (m *LinearModel) Predict(ctx context.Context, rows [][]float64) ([]int, error) {
	labels := make([]int, len(rows))
	for i, row := range rows {
		if len(row) != len(m.Weights) {
			return nil, fmt.Errorf("row %d has %d features, model expects %d", i, len(row), len(m.Weights))
		}
		if m.Probability(row) >= m.Threshold {
			labels[i] = 1
		}
	}
	return labels, nil
}

// Probability returns the logistic score for one row
func (m *LinearModel) Probability(row []float64) float64 {
	z := m.Bias
	for j, w := range m.Weights {
		z += w * row[j]
	}
	return 1 / (1 + math.Exp(-z))
}

// LinearExplainer attributes a linear model's decision to features as
// weight * (value - baseline), the exact additive decomposition of the
// model's logit around the baseline row.
type LinearExplainer struct {
	model    *LinearModel
	baseline []float64
}

// NewLinearExplainer creates an explainer around a baseline row, typically
// the feature means of the reference population.
func NewLinearExplainer(m *LinearModel, baseline []float64) *LinearExplainer {
	return &LinearExplainer{model: m, baseline: baseline}
}

// Contributions implements ports.Explainer
func (e *LinearExplainer) Contributions(ctx context.Context, featureNames []string, rows [][]float64) ([][]float64, error) {
	if len(featureNames) != len(e.model.Weights) {
		return nil, fmt.Errorf("%d feature names for %d weights", len(featureNames), len(e.model.Weights))
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(e.model.Weights) {
			return nil, fmt.Errorf("row %d has %d features, model expects %d", i, len(row), len(e.model.Weights))
		}
		contrib := make([]float64, len(row))
		for j, w := range e.model.Weights {
			base := 0.0
			if j < len(e.baseline) {
				base = e.baseline[j]
			}
			contrib[j] = w * (row[j] - base)
		}
		out[i] = contrib
	}
	return out, nil
}
