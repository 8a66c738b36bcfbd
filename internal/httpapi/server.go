// Package httpapi exposes the planner over a small JSON HTTP surface:
// one-shot solves, a problem store, and per-problem allocations.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/power-planner/core"
	"github.com/signalsfoundry/power-planner/internal/logging"
	"github.com/signalsfoundry/power-planner/internal/observability"
	"github.com/signalsfoundry/power-planner/kb"
)

// Server handles the planner's HTTP API.
type Server struct {
	log       logging.Logger
	planner   *core.Planner
	store     *kb.PlanStore
	collector *observability.PlannerCollector
	tracer    trace.Tracer
}

// NewServer wires the API handlers to a planner and a plan store. The
// collector may be nil when metrics are not wanted.
func NewServer(log logging.Logger, planner *core.Planner, store *kb.PlanStore, collector *observability.PlannerCollector) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{
		log:       log,
		planner:   planner,
		store:     store,
		collector: collector,
		tracer:    otel.Tracer("power-planner/httpapi"),
	}
}

// Routes returns the API mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /v1/solve", s.route("/v1/solve", s.handleSolve))
	mux.Handle("POST /v1/problems", s.route("/v1/problems", s.handleAddProblem))
	mux.Handle("GET /v1/problems", s.route("/v1/problems", s.handleListProblems))
	mux.Handle("GET /v1/problems/{id}", s.route("/v1/problems/{id}", s.handleGetProblem))
	mux.Handle("DELETE /v1/problems/{id}", s.route("/v1/problems/{id}", s.handleDeleteProblem))
	mux.Handle("POST /v1/problems/{id}/solve", s.route("/v1/problems/{id}/solve", s.handleSolveStored))
	mux.Handle("GET /v1/problems/{id}/allocation", s.route("/v1/problems/{id}/allocation", s.handleGetAllocation))
	mux.Handle("GET /healthz", s.route("/healthz", s.handleHealth))
	return mux
}

// route wraps a handler with request-id propagation, tracing and, when a
// collector is present, per-route metrics.
func (s *Server) route(pattern string, h http.HandlerFunc) http.Handler {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := logging.EnsureRequestID(r.Context())
		ctx, span := s.tracer.Start(ctx, pattern)
		defer span.End()
		h(w, r.WithContext(ctx))
	})
	if s.collector != nil {
		handler = s.collector.Middleware(pattern, handler)
	}
	return handler
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := core.LoadProblem(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	alloc, err := s.planner.Solve(ctx, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, alloc)
}

type addProblemRequest struct {
	ID      string        `json:"id"`
	Problem *core.Problem `json:"problem"`
}

func (s *Server) handleAddProblem(w http.ResponseWriter, r *http.Request) {
	var req addProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Join(core.ErrMalformedInput, err))
		return
	}
	if req.Problem == nil {
		s.writeError(w, r, errors.Join(core.ErrMalformedInput, errors.New("missing problem")))
		return
	}
	if err := req.Problem.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.AddProblem(req.ID, req.Problem); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info(r.Context(), "stored problem",
		logging.String("problem_id", req.ID),
		logging.Int("size", req.Problem.Size()),
	)
	s.writeJSON(w, r, http.StatusCreated, map[string]string{"id": req.ID})
}

func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string][]string{"ids": s.store.ListProblemIDs()})
}

func (s *Server) handleGetProblem(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProblem(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleDeleteProblem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProblem(r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSolveStored(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := s.store.GetProblem(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	alloc, err := s.planner.Solve(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.SetAllocation(id, alloc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, alloc)
}

func (s *Server) handleGetAllocation(w http.ResponseWriter, r *http.Request) {
	alloc, err := s.store.GetAllocation(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, alloc)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps planner and store errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrMalformedInput), errors.Is(err, kb.ErrPlanBadInput):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrInfeasible):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrNumericalFailure):
		status = http.StatusBadGateway
	case errors.Is(err, kb.ErrPlanNotFound):
		status = http.StatusNotFound
	case errors.Is(err, kb.ErrPlanExists):
		status = http.StatusConflict
	}

	ctx := r.Context()
	if status >= 500 {
		s.log.Error(ctx, "request failed", logging.String("error", err.Error()), logging.Int("status", status))
	} else {
		s.log.Debug(ctx, "request rejected", logging.String("error", err.Error()), logging.Int("status", status))
	}

	s.writeJSON(w, r, status, errorResponse{
		Error:     err.Error(),
		RequestID: logging.RequestIDFromContext(ctx),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn(r.Context(), "response encode failed", logging.String("error", err.Error()))
	}
}
