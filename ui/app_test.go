package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fairdetect/adapters/stats"
	"fairdetect/app"
	"fairdetect/internal/testkit"
)

func storedReportApp(t *testing.T) (*App, string) {
	t.Helper()
	ledger := testkit.NewInMemoryLedger()

	service := app.NewAuditService(stats.NewChiSquareTester(), nil)
	ds, predictions := testkit.LoanDataset(testkit.LoanOptions{Rows: 200, Seed: 3, TPRBias: 0.4})
	rep, err := service.RunAudit(context.Background(), app.AuditRequest{
		Dataset:     ds,
		Predictions: predictions,
		Labels:      testkit.LoanLabels(),
	})
	if err != nil {
		t.Fatalf("RunAudit failed: %v", err)
	}
	if err := ledger.SaveReport(context.Background(), rep); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	return NewApp(ledger, Config{ReportLimit: 50}), rep.ID.String()
}

func TestApp_Index(t *testing.T) {
	a, id := storedReportApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Fairness Audits") || !strings.Contains(body, id) {
		t.Errorf("Index missing report listing:\n%s", body)
	}
}

// TestApp_Report verifies the markdown document is rendered to HTML,
// including the table extension.
func TestApp_Report(t *testing.T) {
	a, id := storedReportApp(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/"+id, nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /reports/%s = %d", id, rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<h1", "<table>", "Group A", "Group B"} {
		if !strings.Contains(body, want) {
			t.Errorf("Report page missing %q", want)
		}
	}
}

func TestApp_ReportNotFound(t *testing.T) {
	a, _ := storedReportApp(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/no-such-id", nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /reports/no-such-id = %d, want 404", rec.Code)
	}
}
