// Package ui serves stored audit reports as HTML.
package ui

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"fairdetect/domain/core"
	"fairdetect/internal/report"
	"fairdetect/ports"
)

// App represents the UI application
type App struct {
	router *chi.Mux
	ledger ports.AuditLedger
	limit  int
}

// Config holds UI application configuration
type Config struct {
	ReportLimit int
}

// NewApp creates a new UI application over the given ledger
func NewApp(ledger ports.AuditLedger, cfg Config) *App {
	app := &App{
		router: chi.NewRouter(),
		ledger: ledger,
		limit:  cfg.ReportLimit,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/reports/{id}", a.handleReport)
}

// Start starts the HTTP server on the configured port
func (a *App) Start(port string) error {
	addr := ":" + port
	log.Printf("[UI] Starting report server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.ledger.ListReports(r.Context(), a.limit)
	if err != nil {
		log.Printf("[UI] List reports failed: %v", err)
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><head><title>Fairness Audits</title></head><body>")
	fmt.Fprint(w, "<h1>Fairness Audits</h1>")
	if len(summaries) == 0 {
		fmt.Fprint(w, "<p>No reports stored yet.</p>")
	}
	fmt.Fprint(w, "<ul>")
	for _, s := range summaries {
		fmt.Fprintf(w, `<li><a href="/reports/%s">%s / %s</a> (n=%d, %s)</li>`,
			s.ID, s.DatasetName, s.SensitiveAttr, s.SampleSize, s.CreatedAt)
	}
	fmt.Fprint(w, "</ul></body></html>")
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	id := core.ID(chi.URLParam(r, "id"))
	rep, err := a.ledger.GetReport(r.Context(), id)
	if err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	md := report.Markdown(rep)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML([]byte(md), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><head><title>Audit %s</title></head><body>", rep.ID)
	w.Write(body)
	fmt.Fprint(w, `<p><a href="/">Back to all audits</a></p></body></html>`)
}
