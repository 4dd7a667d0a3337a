package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/huangsam/repograde/core"
	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/schema"
)

// Response messages shared with the web client.
const (
	msgAnalyzed       = "Repository analyzed successfully"
	msgRepoURLMissing = "repoUrl is required"
	msgInvalidURL     = "Invalid GitHub URL. Format: https://github.com/owner/repo"
	msgInvalidBody    = "Request body must be a JSON object"
	maxRequestBytes   = 1 << 20
)

type analyzeRequest struct {
	RepoURL string `json:"repoUrl"`
}

type analyzeResponse struct {
	Message   string               `json:"message"`
	Score     int                  `json:"score"`
	Level     schema.Level         `json:"level"`
	Breakdown []string             `json:"breakdown"`
	Summary   string               `json:"summary"`
	Roadmap   []string             `json:"roadmap"`
	Metrics   schema.MetricsRecord `json:"metrics"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the analysis API.
type Handler struct {
	cfg     *contract.Config
	fetcher contract.RepoFetcher
	mgr     contract.CacheManager
	logger  *slog.Logger
}

// NewHandler builds the routes for the analysis API. cfg supplies defaults such as the
// commit limit; the repository comes from each request.
func NewHandler(cfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager, logger *slog.Logger) http.Handler {
	h := &Handler{cfg: cfg, fetcher: fetcher, mgr: mgr, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", h.analyze)
	mux.HandleFunc("GET /healthz", h.healthz)
	return h.logRequests(mux)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}
	if req.RepoURL == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgRepoURLMissing})
		return
	}

	ref, err := contract.ParseRepoReference(req.RepoURL)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidURL})
		return
	}

	cfg := h.cfg.Clone()
	cfg.RepoURL = req.RepoURL
	cfg.Repo = ref

	result, _, err := core.GetAnalysisResult(core.WithSuppressHeader(r.Context()), cfg, h.fetcher, h.mgr)
	if err != nil {
		status := statusForError(err)
		h.logger.Error("Analysis failed", "component", "http", "repo", ref.String(), "status", status, "error", err)
		h.writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, analyzeResponse{
		Message:   msgAnalyzed,
		Score:     result.Score,
		Level:     result.Level,
		Breakdown: result.Breakdown,
		Summary:   result.Summary,
		Roadmap:   result.Roadmap,
		Metrics:   result.Metrics,
	})
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusForError maps fetch failure classes to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, contract.ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, contract.ErrRepositoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, contract.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, contract.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to write response", "component", "http", "error", err)
	}
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Info("HTTP request", "component", "http", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "elapsed", time.Since(start))
	})
}
