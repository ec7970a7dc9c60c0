// Package httpapi is the thin HTTP wrapper spec.md's external
// interfaces section describes: it marshals JSON, calls into
// pkg/scheduler.Engine, and marshals the result back. It owns no
// scheduling logic of its own.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/weekshift/weekshift/pkg/errors"
	"github.com/weekshift/weekshift/pkg/logger"
	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler"

	"github.com/weekshift/weekshift/internal/metrics"
	"github.com/weekshift/weekshift/internal/store"
)

// Server wires the solve engine and the history store to HTTP routes.
type Server struct {
	engine  *scheduler.Engine
	store   *store.Store
	timeout time.Duration
}

// New returns a Server. store may be nil: history persistence is
// best-effort and a missing store only disables it, it never fails a
// solve request.
func New(engine *scheduler.Engine, st *store.Store, timeout time.Duration) *Server {
	return &Server{engine: engine, store: st, timeout: timeout}
}

// Routes builds the full handler chain: routing, then the
// request-id/logging/recovery middleware stack.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/schedule/solve", s.handleSolve)
	mux.HandleFunc("/api/v1/schedule/variants", s.handleSolveVariants)
	mux.HandleFunc("/api/v1/schedule/regenerate", s.handleRegenerate)
	mux.Handle("/metrics", metrics.Handler())

	return requestIDMiddleware(rateLimitMiddleware(corsMiddleware(loggingMiddleware(recoveryMiddleware(mux)))))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "weekshift"})
}

type solveRequest struct {
	Problem model.Problem `json:"problem"`
	Seed    int64         `json:"seed"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}

	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result := s.engine.Solve(req.Problem, req.Seed)
	s.persist(ctx, result)

	writeJSON(w, http.StatusOK, result)
}

type solveVariantsRequest struct {
	Problem        model.Problem `json:"problem"`
	NumCandidates  int           `json:"num_candidates"`
	NumTopVariants int           `json:"num_top_variants"`
	Seed           int64         `json:"seed"`
}

func (s *Server) handleSolveVariants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}

	var req solveVariantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid request body"))
		return
	}
	if req.NumCandidates <= 0 {
		req.NumCandidates = 15
	}
	if req.NumTopVariants <= 0 {
		req.NumTopVariants = req.Problem.Constraints.SolutionPoolSize
	}
	if req.NumTopVariants <= 0 {
		req.NumTopVariants = 3
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result := s.engine.SolveVariants(req.Problem, req.NumCandidates, req.NumTopVariants, req.Seed)
	if len(result.Variants) > 0 {
		s.persist(ctx, result.Variants[result.BestIndex])
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"solutions":  result.Variants,
		"best_index": result.BestIndex,
	})
}

type regenerateRequest struct {
	Problem        model.Problem    `json:"problem"`
	Existing       model.Schedule   `json:"existing"`
	NewConstraints model.Constraints `json:"new_constraints"`
	Seed           int64            `json:"seed"`
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, apperrors.New(apperrors.CodeInvalidInput, "method not allowed"))
		return
	}

	var req regenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result := s.engine.Regenerate(req.Problem, req.Existing, req.NewConstraints, req.Seed)
	s.persist(ctx, result)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) persist(ctx context.Context, result model.ScheduleResult) {
	if s.store == nil {
		return
	}
	if result.Schedule.ID == uuid.Nil {
		return
	}
	if err := s.store.Save(ctx, result); err != nil {
		logger.WithError(err).Msg("failed to persist schedule result")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err *apperrors.AppError) {
	writeJSON(w, err.HTTPStatus, err)
}
