// Package presenter renders tables and bar charts as plain text. It is the
// default presentation collaborator for the CLI; nothing in the audit
// depends on its output.
package presenter

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
)

const barWidth = 40

// TextPresenter writes tables and bar charts to w
type TextPresenter struct {
	w io.Writer
}

// NewTextPresenter creates a text presenter writing to w
func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

// Table renders an aligned text table with a title line
func (p *TextPresenter) Table(title string, headers []string, rows [][]string) {
	fmt.Fprintf(p.w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
	tw := tabwriter.NewWriter(p.w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// BarChart renders one horizontal bar per label, scaled to the largest
// absolute value. Negative values extend a marked bar so relative
// differences below zero stay visible.
func (p *TextPresenter) BarChart(title string, labels []string, values []float64) {
	fmt.Fprintf(p.w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
	maxAbs := 0.0
	width := 0
	for i, v := range values {
		if a := math.Abs(v); a > maxAbs && !math.IsNaN(v) {
			maxAbs = a
		}
		if len(labels[i]) > width {
			width = len(labels[i])
		}
	}
	for i, v := range values {
		if math.IsNaN(v) {
			fmt.Fprintf(p.w, "%-*s  (undefined)\n", width, labels[i])
			continue
		}
		n := 0
		if maxAbs > 0 {
			n = int(math.Round(math.Abs(v) / maxAbs * barWidth))
		}
		bar := strings.Repeat("#", n)
		if v < 0 {
			fmt.Fprintf(p.w, "%-*s -%s %.4f\n", width, labels[i], bar, v)
		} else {
			fmt.Fprintf(p.w, "%-*s  %s %.4f\n", width, labels[i], bar, v)
		}
	}
}
