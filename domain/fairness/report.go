package fairness

import (
	"fairdetect/domain/core"
)

// MetricOutcome pairs one hypothesis test with its verdict under a named
// metric. An undefined outcome records why the test could not run.
type MetricOutcome struct {
	Metric  string         `json:"metric"`
	Test    HypothesisTest `json:"test"`
	Verdict Verdict        `json:"verdict"`
	Note    string         `json:"note,omitempty"`
}

// RepresentationResult is the output of the representation analysis: the
// contingency table, the marginal series, and the independence test verdict.
type RepresentationResult struct {
	Table        ContingencyTable `json:"table"`
	GroupShares  Series           `json:"group_shares"`
	TargetShares Series           `json:"target_shares"`
	Outcome      MetricOutcome    `json:"outcome"`
}

// AbilityResult carries the per-subgroup rates and the per-metric
// disparity test outcomes.
type AbilityResult struct {
	Rates    []GroupRates    `json:"rates"`
	Outcomes []MetricOutcome `json:"outcomes"`
}

// PredictiveResult carries per-subgroup precision and its disparity outcome
type PredictiveResult struct {
	Precision []GroupPrecision `json:"precision"`
	Outcome   MetricOutcome    `json:"outcome"`
}

// AuditReport aggregates one full audit run over a scored dataset. It is a
// read-only derived view; the analyses never mutate caller data.
type AuditReport struct {
	ID             core.ID              `json:"id"`
	DatasetName    string               `json:"dataset_name,omitempty"`
	SensitiveAttr  string               `json:"sensitive_attr"`
	SampleSize     int                  `json:"sample_size"`
	Groups         []string             `json:"groups"`
	Representation RepresentationResult `json:"representation"`
	Predictive     PredictiveResult     `json:"predictive"`
	Ability        AbilityResult        `json:"ability"`
	CreatedAt      core.Timestamp       `json:"created_at"`
}

// RejectedOutcomes lists every outcome whose null hypothesis was rejected
func (r *AuditReport) RejectedOutcomes() []MetricOutcome {
	var rejected []MetricOutcome
	if r.Representation.Outcome.Verdict.Rejected() {
		rejected = append(rejected, r.Representation.Outcome)
	}
	if r.Predictive.Outcome.Verdict.Rejected() {
		rejected = append(rejected, r.Predictive.Outcome)
	}
	for _, o := range r.Ability.Outcomes {
		if o.Verdict.Rejected() {
			rejected = append(rejected, o)
		}
	}
	return rejected
}
