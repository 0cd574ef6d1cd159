// Package service exposes the HTTP surface of the scheduler: the two
// job-trigger endpoints, the operator token endpoint, and read-only
// views of run history and settlement records.
package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loungeap/spaceops/internal/auth"
	"github.com/loungeap/spaceops/internal/job"
	"github.com/loungeap/spaceops/internal/middleware"
	"github.com/loungeap/spaceops/internal/storage"
)

// Handler holds the dependencies of the HTTP surface.
type Handler struct {
	runner        *job.Runner
	store         storage.Store
	authenticator *auth.OperatorAuthenticator
	jwtManager    *auth.JWTManager
}

// NewHandler creates the HTTP handler set. authenticator and
// jwtManager may be nil, which disables authentication on the
// trigger endpoints.
func NewHandler(runner *job.Runner, store storage.Store, authenticator *auth.OperatorAuthenticator, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		runner:        runner,
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Routes builds the service mux with logging and CORS applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	protected := func(handler http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h.jwtManager, handler)
	}

	mux.Handle("POST /jobs/settlement-auto-close", protected(h.closeSettlements))
	mux.Handle("POST /jobs/pending-expense-reminder", protected(h.sendReminders))
	mux.Handle("GET /jobs/runs", protected(h.listRuns))
	mux.Handle("GET /spaces/{spaceID}/settlements/{periodID}", protected(h.getSettlement))
	mux.HandleFunc("POST /auth/token", h.issueToken)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return middleware.Logging(middleware.CORS(mux))
}

// closeSettlements triggers one settlement auto-close run.
func (h *Handler) closeSettlements(w http.ResponseWriter, r *http.Request) {
	summary, err := h.runner.CloseSettlements(r.Context())
	if err != nil {
		slog.Error("settlement auto-close run failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// sendReminders triggers one pending-expense reminder run.
func (h *Handler) sendReminders(w http.ResponseWriter, r *http.Request) {
	summary, err := h.runner.SendPendingReminders(r.Context())
	if err != nil {
		slog.Error("pending-expense reminder run failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// runResponse is one persisted run with its summary inlined.
type runResponse struct {
	ID         string          `json:"id"`
	Job        string          `json:"job"`
	StartedAt  int64           `json:"startedAt"`
	FinishedAt int64           `json:"finishedAt"`
	Summary    json.RawMessage `json:"summary"`
}

// listRuns returns recent persisted run reports, newest first.
func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	runs, err := h.store.ListJobRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, runResponse{
			ID:         run.ID,
			Job:        run.Job,
			StartedAt:  run.StartedAt,
			FinishedAt: run.FinishedAt,
			Summary:    json.RawMessage(run.Summary),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// getSettlement returns one settlement record for operator audit.
func (h *Handler) getSettlement(w http.ResponseWriter, r *http.Request) {
	spaceID := r.PathValue("spaceID")
	periodID := r.PathValue("periodID")

	settlement, err := h.store.GetSettlement(r.Context(), spaceID, periodID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"spaceId":           settlement.SpaceID,
		"periodId":          settlement.PeriodID,
		"status":            settlement.Status,
		"participants":      settlement.Participants,
		"totalAmount":       settlement.TotalAmount,
		"settledAt":         settlement.SettledAt,
		"autoSettled":       settlement.AutoSettled,
		"settledBySchedule": settlement.SettledBySchedule,
	})
}

// tokenRequest is the operator credential payload.
type tokenRequest struct {
	Operator string `json:"operator"`
	Password string `json:"password"`
}

// issueToken exchanges the operator credential for a bearer token.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	if h.authenticator == nil || h.jwtManager == nil {
		writeError(w, http.StatusNotFound, errors.New("authentication is not configured"))
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := h.authenticator.Authenticate(req.Operator, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.jwtManager.Generate(req.Operator)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
