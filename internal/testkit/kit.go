// Package testkit provides stub collaborators and synthetic fixtures for
// tests and demos.
package testkit

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fairdetect/domain/core"
	"fairdetect/domain/fairness"
	"fairdetect/ports"
)

// InMemoryLedger is a map-backed ports.AuditLedger
type InMemoryLedger struct {
	mu      sync.RWMutex
	reports map[core.ID]*fairness.AuditReport
}

// NewInMemoryLedger creates an empty in-memory ledger
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{reports: make(map[core.ID]*fairness.AuditReport)}
}

// SaveReport stores a report
func (l *InMemoryLedger) SaveReport(ctx context.Context, report *fairness.AuditReport) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reports[report.ID] = report
	return nil
}

// GetReport retrieves a report by ID
func (l *InMemoryLedger) GetReport(ctx context.Context, id core.ID) (*fairness.AuditReport, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	report, ok := l.reports[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
	}
	return report, nil
}

// ListReports returns summaries newest first
func (l *InMemoryLedger) ListReports(ctx context.Context, limit int) ([]ports.ReportSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	summaries := make([]ports.ReportSummary, 0, len(l.reports))
	for _, r := range l.reports {
		summaries = append(summaries, ports.ReportSummary{
			ID:            r.ID,
			DatasetName:   r.DatasetName,
			SensitiveAttr: r.SensitiveAttr,
			SampleSize:    r.SampleSize,
			CreatedAt:     r.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[j].CreatedAt.Before(summaries[i].CreatedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// StubModel predicts 1 when the first feature exceeds Threshold
type StubModel struct {
	Threshold float64
}

// Predict implements ports.Model
func (m *StubModel) Predict(ctx context.Context, rows [][]float64) ([]int, error) {
	labels := make([]int, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d has no features", i)
		}
		if row[0] > m.Threshold {
			labels[i] = 1
		}
	}
	return labels, nil
}

// StubExplainer attributes each feature its own value as the contribution,
// which makes expected test outputs trivial to state.
type StubExplainer struct{}

// Contributions implements ports.Explainer
func (e *StubExplainer) Contributions(ctx context.Context, featureNames []string, rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		contrib := make([]float64, len(featureNames))
		copy(contrib, row)
		out[i] = contrib
	}
	return out, nil
}

// StaticLabels adapts a fixed map to ports.LabelSource
func StaticLabels(m map[int]string) ports.LabelSource {
	return ports.LabelSourceFunc(func(value int) (string, error) {
		name, ok := m[value]
		if !ok {
			return "", fmt.Errorf("no label configured for value %d", value)
		}
		return name, nil
	})
}
