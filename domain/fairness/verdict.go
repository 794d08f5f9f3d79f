package fairness

import (
	"fmt"
	"math"
)

// HypothesisTest is the (statistic, p-value) pair returned by a chi-square
// test. It is consumed immediately to produce a verdict and is not persisted
// beyond the enclosing report.
type HypothesisTest struct {
	Statistic        float64 `json:"statistic"`
	PValue           float64 `json:"p_value"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
}

// Defined reports whether the test produced a usable p-value. Degenerate
// inputs (zero expected frequencies) yield NaN rather than a fault.
func (t HypothesisTest) Defined() bool {
	return !math.IsNaN(t.PValue)
}

// Verdict is the discrete outcome of a disparity hypothesis test
type Verdict string

const (
	VerdictRejectAt99 Verdict = "reject_h0_99"
	VerdictRejectAt95 Verdict = "reject_h0_95"
	VerdictRejectAt90 Verdict = "reject_h0_90"
	VerdictAcceptNull Verdict = "accept_h0"
	VerdictUndefined  Verdict = "undefined"
)

// VerdictFromP maps a p-value to the four-tier verdict used by every
// disparity test: reject H0 at 99% for p<=0.01, 95% for p<=0.05, 90% for
// p<=0.10, otherwise accept H0. A NaN p-value yields VerdictUndefined.
func VerdictFromP(p float64) Verdict {
	switch {
	case math.IsNaN(p):
		return VerdictUndefined
	case p <= 0.01:
		return VerdictRejectAt99
	case p <= 0.05:
		return VerdictRejectAt95
	case p <= 0.10:
		return VerdictRejectAt90
	default:
		return VerdictAcceptNull
	}
}

// Rejected reports whether the null hypothesis was rejected at any tier
func (v Verdict) Rejected() bool {
	switch v {
	case VerdictRejectAt99, VerdictRejectAt95, VerdictRejectAt90:
		return true
	}
	return false
}

// ConfidenceLevel returns the rejection confidence, or 0 when H0 stands
func (v Verdict) ConfidenceLevel() float64 {
	switch v {
	case VerdictRejectAt99:
		return 0.99
	case VerdictRejectAt95:
		return 0.95
	case VerdictRejectAt90:
		return 0.90
	}
	return 0
}

// Describe renders the verdict as the audit's textual conclusion for the
// named hypothesis subject.
func (v Verdict) Describe(subject string, p float64) string {
	switch v {
	case VerdictRejectAt99:
		return fmt.Sprintf("With 99%% confidence, reject H0: %s (p=%.6f)", subject, p)
	case VerdictRejectAt95:
		return fmt.Sprintf("With 95%% confidence, reject H0: %s (p=%.6f)", subject, p)
	case VerdictRejectAt90:
		return fmt.Sprintf("With 90%% confidence, reject H0: %s (p=%.6f)", subject, p)
	case VerdictUndefined:
		return fmt.Sprintf("Test undefined for %s: degenerate expected frequencies", subject)
	default:
		return fmt.Sprintf("Accept H0: no detected disparity for %s (p=%.6f)", subject, p)
	}
}
