package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fairdetect/domain/core"
	"fairdetect/domain/fairness"
	apperrors "fairdetect/internal/errors"
	"fairdetect/ports"
)

// reportRepository implements ports.AuditLedger on PostgreSQL, storing the
// full report as a JSON payload alongside the listing columns.
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a postgres-backed audit ledger
func NewReportRepository(db *sqlx.DB) ports.AuditLedger {
	return &reportRepository{db: db}
}

// SaveReport inserts a completed audit report
func (r *reportRepository) SaveReport(ctx context.Context, report *fairness.AuditReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal audit report: %w", err)
	}

	query := `INSERT INTO audit_reports (
		id, dataset_name, sensitive_attr, sample_size, payload, created_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		report.ID, report.DatasetName, report.SensitiveAttr,
		report.SampleSize, payload, report.CreatedAt.Time(),
	)
	if err != nil {
		return apperrors.StorageError("failed to save audit report", err)
	}
	return nil
}

// GetReport retrieves a report by ID
func (r *reportRepository) GetReport(ctx context.Context, id core.ID) (*fairness.AuditReport, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM audit_reports WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrReportNotFound, id)
		}
		return nil, apperrors.StorageError("failed to get audit report", err)
	}

	var report fairness.AuditReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit report: %w", err)
	}
	return &report, nil
}

// ListReports returns report summaries, newest first
func (r *reportRepository) ListReports(ctx context.Context, limit int) ([]ports.ReportSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, dataset_name, sensitive_attr, sample_size, created_at
	FROM audit_reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, apperrors.StorageError("failed to list audit reports", err)
	}
	defer rows.Close()

	var summaries []ports.ReportSummary
	for rows.Next() {
		var s ports.ReportSummary
		var createdAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.DatasetName, &s.SensitiveAttr, &s.SampleSize, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan report summary: %w", err)
		}
		if createdAt.Valid {
			s.CreatedAt = core.NewTimestamp(createdAt.Time)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
