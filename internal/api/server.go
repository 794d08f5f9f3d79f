// Package api exposes the audit pipeline over JSON.
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fairdetect/app"
	"fairdetect/domain/core"
	"fairdetect/domain/dataset"
	"fairdetect/domain/fairness"
	"fairdetect/ports"
)

// Server wires the audit services to HTTP handlers
type Server struct {
	engine      *gin.Engine
	audits      *app.AuditService
	attribution *app.AttributionService
	ledger      ports.AuditLedger
	reportLimit int
}

// Config holds API server configuration
type Config struct {
	GinMode     string
	ReportLimit int
}

// NewServer creates the JSON API server
func NewServer(audits *app.AuditService, attribution *app.AttributionService, ledger ports.AuditLedger, cfg Config) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	s := &Server{
		engine:      gin.New(),
		audits:      audits,
		attribution: attribution,
		ledger:      ledger,
		reportLimit: cfg.ReportLimit,
	}
	s.engine.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	api.POST("/audits", s.handleRunAudit)
	api.GET("/audits", s.handleListAudits)
	api.GET("/audits/:id", s.handleGetAudit)
	api.POST("/attributions", s.handleAttribution)
}

// Start starts the HTTP server on the configured port
func (s *Server) Start(port string) error {
	addr := ":" + port
	log.Printf("[API] Starting JSON API on %s", addr)
	return s.engine.Run(addr)
}

// Handler exposes the engine, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// datasetPayload is the wire form of a scored dataset
type datasetPayload struct {
	Name          string         `json:"name"`
	SensitiveAttr string         `json:"sensitive_attr" binding:"required"`
	FeatureNames  []string       `json:"feature_names"`
	Features      [][]float64    `json:"features"`
	Sensitive     []int          `json:"sensitive" binding:"required"`
	Target        []int          `json:"target" binding:"required"`
	Predictions   []int          `json:"predictions" binding:"required"`
	Labels        map[int]string `json:"labels" binding:"required"`
}

func (p *datasetPayload) toRequest() (app.AuditRequest, error) {
	ds := &dataset.Dataset{
		Name:          p.Name,
		SensitiveAttr: p.SensitiveAttr,
		FeatureNames:  p.FeatureNames,
		Features:      p.Features,
		Sensitive:     p.Sensitive,
		Target:        p.Target,
	}
	if err := ds.Validate(); err != nil {
		return app.AuditRequest{}, err
	}
	return app.AuditRequest{
		Dataset:     ds,
		Predictions: p.Predictions,
		Labels:      fairness.LabelMap(p.Labels),
	}, nil
}

func (s *Server) handleRunAudit(c *gin.Context) {
	var payload datasetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req, err := payload.toRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.audits.RunAudit(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := s.ledger.SaveReport(c.Request.Context(), report); err != nil {
		log.Printf("[API] Save report failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store report"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (s *Server) handleListAudits(c *gin.Context) {
	summaries, err := s.ledger.ListReports(c.Request.Context(), s.reportLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": summaries})
}

func (s *Server) handleGetAudit(c *gin.Context) {
	id := core.ID(c.Param("id"))
	report, err := s.ledger.GetReport(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrReportNotFound) || errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// attributionPayload selects a misclassified cohort for explanation
type attributionPayload struct {
	datasetPayload
	GroupValue     int   `json:"group_value"`
	PredictedLabel int   `json:"predicted_label"`
	Seed           int64 `json:"seed"`
}

func (s *Server) handleAttribution(c *gin.Context) {
	var payload attributionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req, err := payload.toRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.attribution.Analyze(c.Request.Context(), app.AttributionRequest{
		Dataset:        req.Dataset,
		Predictions:    req.Predictions,
		Labels:         req.Labels,
		GroupValue:     payload.GroupValue,
		PredictedLabel: payload.PredictedLabel,
		Seed:           payload.Seed,
	})
	if err != nil {
		if errors.Is(err, core.ErrEmptyCohort) || errors.Is(err, core.ErrGroupNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
