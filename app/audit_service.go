package app

import (
	"context"
	"fmt"
	"log"
	"math"

	"golang.org/x/sync/errgroup"

	"fairdetect/domain/core"
	"fairdetect/domain/dataset"
	"fairdetect/domain/fairness"
	"fairdetect/ports"
)

// AuditService runs the disparity-detection pipeline: representation,
// predictive disparity, then ability, each concluded with the shared
// four-tier verdict. It only sequences domain computations and collaborator
// calls; it owns no state and never mutates its inputs.
type AuditService struct {
	stats     ports.StatsTester
	presenter ports.Presenter
}

// AuditRequest bundles the inputs of one audit run
type AuditRequest struct {
	Dataset     *dataset.Dataset
	Predictions []int
	Labels      fairness.LabelMap
}

// NewAuditService creates an audit service over the given collaborators
func NewAuditService(stats ports.StatsTester, presenter ports.Presenter) *AuditService {
	return &AuditService{stats: stats, presenter: presenter}
}

// Representation builds the contingency table, the marginal share series,
// and the independence test between the sensitive attribute and the target.
func (s *AuditService) Representation(req AuditRequest) (*fairness.RepresentationResult, *fairness.Partition, error) {
	partition, err := fairness.PartitionBySensitive(req.Dataset, req.Predictions, req.Labels)
	if err != nil {
		return nil, nil, err
	}
	table, err := fairness.BuildContingencyTable(partition)
	if err != nil {
		return nil, nil, err
	}
	test, err := s.stats.Independence(table.CountMatrix())
	if err != nil {
		return nil, nil, fmt.Errorf("independence test failed: %w", err)
	}
	result := &fairness.RepresentationResult{
		Table:        table,
		GroupShares:  table.GroupShareSeries(),
		TargetShares: table.TargetShareSeries(),
		Outcome: fairness.MetricOutcome{
			Metric:  "representation",
			Test:    test,
			Verdict: fairness.VerdictFromP(test.PValue),
		},
	}
	if !test.Defined() {
		result.Outcome.Note = "degenerate expected frequencies in contingency table"
	}
	return result, partition, nil
}

// Ability computes per-subgroup rates and one goodness-of-fit disparity
// test per rate metric. A metric with an undefined rate in any subgroup is
// reported as undefined and the remaining metrics still run.
func (s *AuditService) Ability(partition *fairness.Partition) (*fairness.AbilityResult, error) {
	rates := fairness.ComputeRates(partition)
	result := &fairness.AbilityResult{Rates: rates}

	for _, metric := range fairness.DisparityMetrics {
		values, ok := fairness.RateVector(rates, metric)
		if !ok {
			result.Outcomes = append(result.Outcomes, undefinedOutcome(metric,
				"rate undefined for at least one subgroup"))
			continue
		}
		test, err := s.stats.GoodnessOfFit(values)
		if err != nil {
			return nil, fmt.Errorf("disparity test for %s failed: %w", metric, err)
		}
		result.Outcomes = append(result.Outcomes, fairness.MetricOutcome{
			Metric:  metric,
			Test:    test,
			Verdict: fairness.VerdictFromP(test.PValue),
		})
	}
	return result, nil
}

// Predictive computes precision per subgroup and its disparity test
func (s *AuditService) Predictive(partition *fairness.Partition) (*fairness.PredictiveResult, error) {
	precision := fairness.ComputePrecision(partition)
	result := &fairness.PredictiveResult{Precision: precision}

	values, ok := fairness.PrecisionVector(precision)
	if !ok {
		result.Outcome = undefinedOutcome(fairness.MetricPrecision,
			"no positive predictions in at least one subgroup")
		return result, nil
	}
	test, err := s.stats.GoodnessOfFit(values)
	if err != nil {
		return nil, fmt.Errorf("precision disparity test failed: %w", err)
	}
	result.Outcome = fairness.MetricOutcome{
		Metric:  fairness.MetricPrecision,
		Test:    test,
		Verdict: fairness.VerdictFromP(test.PValue),
	}
	return result, nil
}

// RunAudit executes the full pipeline and hands the tables and charts to
// the presentation collaborator. The returned report carries every test
// outcome and verdict.
func (s *AuditService) RunAudit(ctx context.Context, req AuditRequest) (*fairness.AuditReport, error) {
	representation, partition, err := s.Representation(req)
	if err != nil {
		return nil, err
	}
	log.Printf("[AuditService] Representation: %s", representation.Outcome.Verdict)

	predictive, err := s.Predictive(partition)
	if err != nil {
		return nil, err
	}
	log.Printf("[AuditService] Predictive: %s", predictive.Outcome.Verdict)

	ability, err := s.Ability(partition)
	if err != nil {
		return nil, err
	}

	report := &fairness.AuditReport{
		ID:             core.NewID(),
		DatasetName:    req.Dataset.Name,
		SensitiveAttr:  req.Dataset.SensitiveAttr,
		SampleSize:     req.Dataset.RowCount(),
		Representation: *representation,
		Predictive:     *predictive,
		Ability:        *ability,
		CreatedAt:      core.Now(),
	}
	for _, g := range partition.Groups {
		report.Groups = append(report.Groups, g.Name)
	}

	s.present(report)
	return report, nil
}

// ScoreAndAudit obtains predictions from the model collaborator and then
// runs the audit over them.
func (s *AuditService) ScoreAndAudit(ctx context.Context, m ports.Model, ds *dataset.Dataset, labels fairness.LabelMap) (*fairness.AuditReport, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	predictions, err := m.Predict(ctx, ds.Features)
	if err != nil {
		return nil, fmt.Errorf("model prediction failed: %w", err)
	}
	return s.RunAudit(ctx, AuditRequest{Dataset: ds, Predictions: predictions, Labels: labels})
}

// RunSweep audits several scored datasets concurrently, one per sensitive
// attribute under scrutiny. Each audit is a pure computation over its own
// inputs, so the runs are independent.
func (s *AuditService) RunSweep(ctx context.Context, reqs []AuditRequest) ([]*fairness.AuditReport, error) {
	reports := make([]*fairness.AuditReport, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			report, err := s.RunAudit(ctx, req)
			if err != nil {
				return fmt.Errorf("audit of %s: %w", req.Dataset.SensitiveAttr, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *AuditService) present(r *fairness.AuditReport) {
	if s.presenter == nil {
		return
	}

	headers := []string{"Group", "Target 0", "Target 1", "Share 0", "Share 1"}
	rows := make([][]string, len(r.Representation.Table.Rows))
	for i, row := range r.Representation.Table.Rows {
		rows[i] = []string{
			row.Group,
			fmt.Sprintf("%d", row.Counts[0]),
			fmt.Sprintf("%d", row.Counts[1]),
			fmt.Sprintf("%.4f", row.Shares[0]),
			fmt.Sprintf("%.4f", row.Shares[1]),
		}
	}
	s.presenter.Table("Representation: "+r.SensitiveAttr+" vs target", headers, rows)
	s.presenter.BarChart("Group shares", r.Representation.GroupShares.Labels, r.Representation.GroupShares.Values)
	s.presenter.BarChart("Target shares", r.Representation.TargetShares.Labels, r.Representation.TargetShares.Values)

	var labels []string
	var values []float64
	for _, p := range r.Predictive.Precision {
		labels = append(labels, p.Group)
		values = append(values, rateOrNaN(p.Precision))
	}
	s.presenter.BarChart("Precision per group", labels, values)

	headers = []string{"Group", "N", "TPR", "FPR", "TNR", "FNR", "Selection", "Accuracy"}
	rows = rows[:0]
	for _, gr := range r.Ability.Rates {
		rows = append(rows, []string{
			gr.Group,
			fmt.Sprintf("%d", gr.Size),
			formatRate(gr.TPR),
			formatRate(gr.FPR),
			formatRate(gr.TNR),
			formatRate(gr.FNR),
			formatRate(gr.SelectionRate),
			formatRate(gr.Accuracy),
		})
	}
	s.presenter.Table("Ability metrics per group", headers, rows)
}

func undefinedOutcome(metric, note string) fairness.MetricOutcome {
	return fairness.MetricOutcome{
		Metric:  metric,
		Test:    fairness.HypothesisTest{Statistic: math.NaN(), PValue: math.NaN()},
		Verdict: fairness.VerdictUndefined,
		Note:    note,
	}
}

func formatRate(r fairness.Rate) string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", r.Value)
}

func rateOrNaN(r fairness.Rate) float64 {
	if !r.Defined {
		return math.NaN()
	}
	return r.Value
}
