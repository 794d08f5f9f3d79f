package ports

import (
	"context"

	"fairdetect/domain/core"
	"fairdetect/domain/fairness"
)

// ReportSummary is the listing view of a stored audit report
type ReportSummary struct {
	ID            core.ID        `json:"id"`
	DatasetName   string         `json:"dataset_name,omitempty"`
	SensitiveAttr string         `json:"sensitive_attr"`
	SampleSize    int            `json:"sample_size"`
	CreatedAt     core.Timestamp `json:"created_at"`
}

// AuditLedger stores and retrieves completed audit reports
type AuditLedger interface {
	SaveReport(ctx context.Context, report *fairness.AuditReport) error
	GetReport(ctx context.Context, id core.ID) (*fairness.AuditReport, error)
	ListReports(ctx context.Context, limit int) ([]ReportSummary, error)
}
