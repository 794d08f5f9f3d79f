package fairness

import (
	"math"
	"strings"
	"testing"
)

// TestVerdictFromP checks the four-tier mapping at representative points and
// exactly at the tier boundaries, which are inclusive.
func TestVerdictFromP(t *testing.T) {
	cases := []struct {
		p    float64
		want Verdict
	}{
		{0.005, VerdictRejectAt99},
		{0.01, VerdictRejectAt99},
		{0.03, VerdictRejectAt95},
		{0.05, VerdictRejectAt95},
		{0.08, VerdictRejectAt90},
		{0.10, VerdictRejectAt90},
		{0.11, VerdictAcceptNull},
		{0.5, VerdictAcceptNull},
		{1.0, VerdictAcceptNull},
		{math.NaN(), VerdictUndefined},
	}
	for _, c := range cases {
		if got := VerdictFromP(c.p); got != c.want {
			t.Errorf("VerdictFromP(%f) = %s, want %s", c.p, got, c.want)
		}
	}
}

func TestVerdict_Rejected(t *testing.T) {
	for _, v := range []Verdict{VerdictRejectAt99, VerdictRejectAt95, VerdictRejectAt90} {
		if !v.Rejected() {
			t.Errorf("%s should count as rejected", v)
		}
	}
	if VerdictAcceptNull.Rejected() || VerdictUndefined.Rejected() {
		t.Error("Accept and undefined verdicts must not count as rejected")
	}
}

func TestVerdict_ConfidenceLevel(t *testing.T) {
	if VerdictRejectAt99.ConfidenceLevel() != 0.99 {
		t.Error("99 tier should report 0.99")
	}
	if VerdictAcceptNull.ConfidenceLevel() != 0 {
		t.Error("Accepted null should report 0")
	}
}

func TestVerdict_Describe(t *testing.T) {
	text := VerdictRejectAt99.Describe("disparity in true_positive_rate", 0.004)
	if !strings.Contains(text, "99%") || !strings.Contains(text, "reject H0") {
		t.Errorf("Unexpected description: %s", text)
	}

	text = VerdictAcceptNull.Describe("disparity in precision", 0.4)
	if !strings.Contains(text, "Accept H0") {
		t.Errorf("Unexpected description: %s", text)
	}

	text = VerdictUndefined.Describe("representation", math.NaN())
	if !strings.Contains(text, "undefined") {
		t.Errorf("Unexpected description: %s", text)
	}
}

func TestHypothesisTest_Defined(t *testing.T) {
	if !(HypothesisTest{Statistic: 5.4, PValue: 0.02, DegreesOfFreedom: 1}).Defined() {
		t.Error("Test with a p-value should be defined")
	}
	if (HypothesisTest{Statistic: math.NaN(), PValue: math.NaN()}).Defined() {
		t.Error("NaN p-value should be undefined")
	}
}
