// Package report renders audit reports as markdown documents.
package report

import (
	"fmt"
	"strings"

	"fairdetect/domain/fairness"
)

// Markdown renders the full audit report as a markdown document: the
// contingency table, the three analysis sections, and one verdict line per
// hypothesis test.
func Markdown(r *fairness.AuditReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fairness Audit: %s\n\n", r.SensitiveAttr)
	if r.DatasetName != "" {
		fmt.Fprintf(&b, "Dataset: %s  \n", r.DatasetName)
	}
	fmt.Fprintf(&b, "Sample size: %d  \n", r.SampleSize)
	fmt.Fprintf(&b, "Groups: %s  \n", strings.Join(r.Groups, ", "))
	fmt.Fprintf(&b, "Created: %s\n\n", r.CreatedAt)

	b.WriteString("## Representation\n\n")
	b.WriteString("| Group | Target 0 | Target 1 | Share 0 | Share 1 |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, row := range r.Representation.Table.Rows {
		fmt.Fprintf(&b, "| %s | %d | %d | %.4f | %.4f |\n",
			row.Group, row.Counts[0], row.Counts[1], row.Shares[0], row.Shares[1])
	}
	b.WriteString("\n")
	writeOutcome(&b, r.Representation.Outcome,
		fmt.Sprintf("significant relation between %s and target", r.SensitiveAttr))

	b.WriteString("\n## Predictive Disparity\n\n")
	b.WriteString("| Group | Precision |\n|---|---|\n")
	for _, p := range r.Predictive.Precision {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Group, rateCell(p.Precision))
	}
	b.WriteString("\n")
	writeOutcome(&b, r.Predictive.Outcome, "significant predictive disparity")

	b.WriteString("\n## Ability\n\n")
	b.WriteString("| Group | N | TPR | FPR | TNR | FNR | Selection | Accuracy |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, gr := range r.Ability.Rates {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s | %s |\n",
			gr.Group, gr.Size,
			rateCell(gr.TPR), rateCell(gr.FPR), rateCell(gr.TNR), rateCell(gr.FNR),
			rateCell(gr.SelectionRate), rateCell(gr.Accuracy))
	}
	b.WriteString("\n")
	for _, o := range r.Ability.Outcomes {
		writeOutcome(&b, o, fmt.Sprintf("disparity in %s", o.Metric))
	}

	return b.String()
}

func writeOutcome(b *strings.Builder, o fairness.MetricOutcome, subject string) {
	fmt.Fprintf(b, "- %s\n", o.Verdict.Describe(subject, o.Test.PValue))
	if o.Note != "" {
		fmt.Fprintf(b, "  - %s\n", o.Note)
	}
}

func rateCell(r fairness.Rate) string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", r.Value)
}
