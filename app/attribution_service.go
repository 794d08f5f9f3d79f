package app

import (
	"context"
	"fmt"
	"log"
	"math"

	"fairdetect/domain/dataset"
	"fairdetect/domain/fairness"
	"fairdetect/ports"
)

const sampleStreamName = "attribution.sample"

// AttributionService isolates a misclassified cohort and explains its
// disparity through feature comparisons and the explanation collaborator.
type AttributionService struct {
	explainer ports.Explainer
	rng       ports.RNG
	presenter ports.Presenter
}

// AttributionRequest selects the cohort: records of the given sensitive
// value misclassified into the given predicted label.
type AttributionRequest struct {
	Dataset        *dataset.Dataset
	Predictions    []int
	Labels         fairness.LabelMap
	GroupValue     int
	PredictedLabel int
	Seed           int64
}

// AttributionResult carries the cohort comparisons, the cohort-level mean
// absolute contributions, and the contributions of one sampled record.
type AttributionResult struct {
	Cohort               fairness.Cohort         `json:"cohort"`
	VersusTrueClass      []fairness.FeatureDelta `json:"versus_true_class"`
	VersusPopulation     []fairness.FeatureDelta `json:"versus_population"`
	CohortImportance     []float64               `json:"cohort_importance"`
	SampledRow           int                     `json:"sampled_row"`
	SampledContributions []float64               `json:"sampled_contributions"`
}

// NewAttributionService creates an attribution service over the given
// collaborators
func NewAttributionService(explainer ports.Explainer, rng ports.RNG, presenter ports.Presenter) *AttributionService {
	return &AttributionService{explainer: explainer, rng: rng, presenter: presenter}
}

// Analyze computes the cohort comparisons and the per-record explanation.
// An empty cohort is a distinct condition (core.ErrEmptyCohort), never an
// index fault.
func (s *AttributionService) Analyze(ctx context.Context, req AttributionRequest) (*AttributionResult, error) {
	cohort, err := fairness.MisclassifiedCohort(req.Dataset, req.Predictions, req.Labels, req.GroupValue, req.PredictedLabel)
	if err != nil {
		return nil, err
	}
	log.Printf("[AttributionService] Cohort %s/predicted=%d: %d records",
		cohort.Group, cohort.PredictedLabel, cohort.Size())

	versusTrue, err := fairness.CompareToTrueClass(req.Dataset, req.Predictions, cohort)
	if err != nil {
		return nil, err
	}
	versusAll, err := fairness.CompareToPopulation(req.Dataset, cohort)
	if err != nil {
		return nil, err
	}

	result := &AttributionResult{
		Cohort:           cohort,
		VersusTrueClass:  versusTrue,
		VersusPopulation: versusAll,
	}

	cohortRows := make([][]float64, cohort.Size())
	for i, r := range cohort.Rows {
		cohortRows[i] = req.Dataset.Features[r]
	}
	contributions, err := s.explainer.Contributions(ctx, req.Dataset.FeatureNames, cohortRows)
	if err != nil {
		return nil, fmt.Errorf("explainer failed: %w", err)
	}
	if len(contributions) != cohort.Size() {
		return nil, fmt.Errorf("explainer returned %d rows for %d cohort records", len(contributions), cohort.Size())
	}

	result.CohortImportance = meanAbsContributions(contributions, req.Dataset.FeatureCount())

	stream, err := s.rng.SeededStream(sampleStreamName, req.Seed)
	if err != nil {
		return nil, fmt.Errorf("rng stream failed: %w", err)
	}
	sampled := stream.Intn(cohort.Size())
	result.SampledRow = cohort.Rows[sampled]
	result.SampledContributions = contributions[sampled]

	s.present(req.Dataset, result)
	return result, nil
}

func meanAbsContributions(contributions [][]float64, featureCount int) []float64 {
	importance := make([]float64, featureCount)
	if len(contributions) == 0 {
		return importance
	}
	for _, row := range contributions {
		for j, c := range row {
			importance[j] += math.Abs(c)
		}
	}
	for j := range importance {
		importance[j] /= float64(len(contributions))
	}
	return importance
}

func (s *AttributionService) present(ds *dataset.Dataset, result *AttributionResult) {
	if s.presenter == nil {
		return
	}
	s.presenter.BarChart("Cohort mean |contribution|", ds.FeatureNames, result.CohortImportance)
	s.presenter.BarChart("Average comparison to true class members",
		deltaLabels(result.VersusTrueClass), deltaValues(result.VersusTrueClass))
	s.presenter.BarChart("Average comparison to all members",
		deltaLabels(result.VersusPopulation), deltaValues(result.VersusPopulation))
	s.presenter.BarChart(fmt.Sprintf("Decision contributions, record %d", result.SampledRow),
		ds.FeatureNames, result.SampledContributions)
}

func deltaLabels(deltas []fairness.FeatureDelta) []string {
	labels := make([]string, len(deltas))
	for i, d := range deltas {
		labels[i] = d.Feature
	}
	return labels
}

func deltaValues(deltas []fairness.FeatureDelta) []float64 {
	values := make([]float64, len(deltas))
	for i, d := range deltas {
		if d.Defined {
			values[i] = d.Delta
		} else {
			values[i] = math.NaN()
		}
	}
	return values
}
