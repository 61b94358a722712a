// Package server exposes audits and the audit history over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/audit"
	dbpkg "github.com/GlobalTax/nrro-es-starter-sub005/pkg/db"
)

const maxRequestBody = 1 << 20

// History reads saved snapshots and batch runs.
type History interface {
	GetSnapshot(ctx context.Context, id string) (*models.AuditSnapshot, error)
	ListSnapshots(ctx context.Context, filter dbpkg.SnapshotFilter) ([]dbpkg.SnapshotSummary, error)
	GetBatchRun(ctx context.Context, batchID int64) (*dbpkg.BatchRun, error)
	ListBatchRuns(ctx context.Context, limit int) ([]dbpkg.BatchRun, error)
	GetBatchResults(ctx context.Context, batchID int64) ([]models.BatchSummary, error)
}

// Server serves the audit API. Every audit request gets its own session.
type Server struct {
	newSession func() *audit.Session
	history    History
	template   []models.AuditCategory
	logger     *slog.Logger
}

// New creates a server. newSession must return an independent session on
// every call.
func New(newSession func() *audit.Session, history History, template []models.AuditCategory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		newSession: newSession,
		history:    history,
		template:   template,
		logger:     logger.With("component", "server"),
	}
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/checklist", s.handleChecklist)
	r.Post("/audits", s.handleAudit)
	r.Route("/snapshots", func(r chi.Router) {
		r.Get("/", s.handleListSnapshots)
		r.Get("/{id}", s.handleGetSnapshot)
	})
	r.Route("/batches", func(r chi.Router) {
		r.Get("/", s.handleListBatches)
		r.Get("/{id}", s.handleGetBatch)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds())
	})
}
