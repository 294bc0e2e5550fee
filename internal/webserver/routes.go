package webserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spboyer/dealerrank/internal/dataset"
	"github.com/spboyer/dealerrank/internal/models"
	"github.com/spboyer/dealerrank/internal/reporting"
	"github.com/spboyer/dealerrank/internal/scoring"
)

// requestSource labels reports produced from API requests without a source.
const requestSource = "api request"

// scoreRequest is the body of POST /api/score. Exactly one of Entities and
// Rows must be set; Rows are loose objects keyed by column, as in a CSV.
type scoreRequest struct {
	Source   string          `json:"source,omitempty"`
	Entities []models.Entity `json:"entities,omitempty"`
	Rows     []dataset.Row   `json:"rows,omitempty"`
	IDColumn string          `json:"id_column,omitempty"`
	Missing  string          `json:"missing,omitempty"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind,omitempty"`
	EntityID string `json:"entity_id,omitempty"`
	Metric   string `json:"metric,omitempty"`
}

func newRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Content-Length", middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	h := &handlers{cfg: cfg}
	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handleHealth)
		api.Get("/weights", h.weights)
		api.Post("/score", h.score)
	})
	return r
}

type handlers struct {
	cfg Config
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) weights(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.cfg.Scorer.Weights())
}

func (h *handlers) score(w http.ResponseWriter, r *http.Request) {
	logger := h.cfg.Logger.With("request_id", middleware.GetReqID(r.Context()))

	format, err := reporting.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "request"})
		return
	}
	if format == reporting.FormatAuto {
		format = reporting.FormatJSON
	}

	var req scoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error(), Kind: "request"})
		return
	}

	policy := h.cfg.Missing
	if req.Missing != "" {
		if policy, err = scoring.ParseMissingPolicy(req.Missing); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "request"})
			return
		}
	}

	entities, err := h.entities(req)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.cfg.Scorer.Run(entities, policy)
	if err != nil {
		logger.Debug("score request rejected", "error", err)
		writeError(w, err)
		return
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = requestSource
	}
	report := reporting.NewReport(source, result)
	logger.Info("scored request", "run_id", report.RunID, "entities", len(result.Ranked))

	if format == reporting.FormatJSON {
		writeJSON(w, http.StatusOK, report)
		return
	}
	switch format {
	case reporting.FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case reporting.FormatMarkdown:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	if err := reporting.Render(w, report, format); err != nil {
		logger.Error("rendering report", "error", err)
	}
}

func (h *handlers) entities(req scoreRequest) ([]models.Entity, error) {
	switch {
	case len(req.Entities) > 0 && len(req.Rows) > 0:
		return nil, &requestError{msg: "set either entities or rows, not both"}
	case len(req.Rows) > 0:
		idColumn := req.IDColumn
		if idColumn == "" {
			idColumn = h.cfg.IDColumn
		}
		return dataset.Entities(req.Rows, idColumn, h.cfg.Scorer.Weights())
	default:
		return req.Entities, nil
	}
}

type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

// writeError maps engine errors onto HTTP statuses: rejected input is 422,
// everything the caller configured wrongly is 400.
func writeError(w http.ResponseWriter, err error) {
	var (
		vErr   *models.ValidationError
		cfgErr *models.ConfigurationError
		reqErr *requestError
	)
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: err.Error(), Kind: "validation", EntityID: vErr.EntityID, Metric: vErr.Metric,
		})
	case errors.As(err, &cfgErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "configuration", Metric: cfgErr.Metric})
	case errors.As(err, &reqErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "request"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
