package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/audit"
	dbpkg "github.com/GlobalTax/nrro-es-starter-sub005/pkg/db"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/report"
)

// AuditRequest is the body of POST /audits.
type AuditRequest struct {
	URL        string           `json:"url"`
	Save       bool             `json:"save"`
	IncludeRaw bool             `json:"include_raw"`
	Overrides  []audit.Override `json:"overrides"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type snapshotItem struct {
	ID          string              `json:"id"`
	URL         string              `json:"url"`
	GlobalScore int                 `json:"global_score"`
	State       models.SessionState `json:"state"`
	CreatedAt   time.Time           `json:"created_at"`
}

type batchItem struct {
	BatchID      int64     `json:"batch_id"`
	CreatedAt    time.Time `json:"created_at"`
	URLCount     int       `json:"url_count"`
	SuccessCount int       `json:"success_count"`
	FailedCount  int       `json:"failed_count"`
}

type batchDetail struct {
	batchItem
	Results []models.BatchSummary `json:"results"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.template)
}

// handleAudit runs one audit and renders it with the ?format= formatter
// (json by default). The saved snapshot id is returned in X-Snapshot-ID.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req AuditRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	formatter, err := formatterFor(r, req.IncludeRaw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	session := s.newSession()
	if err := session.RunAudit(r.Context(), req.URL); err != nil {
		s.writeError(w, err)
		return
	}
	if err := session.Apply(req.Overrides); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Save {
		id, err := session.Save(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("X-Snapshot-ID", id)
	}

	s.render(w, formatter, session.View())
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	filter := dbpkg.SnapshotFilter{URL: r.URL.Query().Get("url")}
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	filter.Limit = limit
	if since := r.URL.Query().Get("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "since must be an RFC 3339 timestamp"})
			return
		}
		filter.Since = t
	}

	snapshots, err := s.history.ListSnapshots(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	items := make([]snapshotItem, 0, len(snapshots))
	for _, snap := range snapshots {
		items = append(items, snapshotItem(snap))
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	formatter, err := formatterFor(r, r.URL.Query().Get("include_raw") == "true")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	snap, err := s.history.GetSnapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("X-Snapshot-ID", snap.ID)
	s.render(w, formatter, snap.Session)
}

func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	runs, err := s.history.ListBatchRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	items := make([]batchItem, 0, len(runs))
	for _, run := range runs {
		items = append(items, batchItem(run))
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	batchID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid batch id"})
		return
	}
	run, err := s.history.GetBatchRun(r.Context(), batchID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	results, err := s.history.GetBatchResults(r.Context(), batchID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if results == nil {
		results = []models.BatchSummary{}
	}
	writeJSON(w, http.StatusOK, batchDetail{batchItem: batchItem(*run), Results: results})
}

func (s *Server) render(w http.ResponseWriter, formatter report.Formatter, session models.AuditSession) {
	w.Header().Set("Content-Type", formatter.ContentType())
	w.WriteHeader(http.StatusOK)
	if err := formatter.Format(w, session); err != nil {
		s.logger.Error("failed to render report", "error", err)
	}
}

// writeError maps domain errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		transportErr   *audit.TransportError
		persistenceErr *audit.PersistenceError
	)
	switch {
	case errors.Is(err, audit.ErrInvalidURL),
		errors.Is(err, audit.ErrInvalidStatus),
		errors.Is(err, audit.ErrUnknownCategory),
		errors.Is(err, audit.ErrUnknownItem):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &transportErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: transportErr.Message()})
	case errors.Is(err, dbpkg.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &persistenceErr):
		s.logger.Error("persistence failure", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save audit"})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func formatterFor(r *http.Request, includeRaw bool) (report.Formatter, error) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	return report.ForFormat(format, includeRaw)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(key + " must be a non-negative integer")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
