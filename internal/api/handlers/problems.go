package handlers

import (
	"errors"
	"log"
	"net/http"
	"room-matching-service/internal/api/dto"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/ports"
	"room-matching-service/internal/services"
	"strconv"
	"strings"
)

// ProblemHandler exposes stored problems and their solutions.
// All endpoints answer 503 when no repository is configured.
type ProblemHandler struct {
	Repo     ports.ProblemRepository
	Cache    ports.ResultCache
	Defaults Defaults
}

func (h *ProblemHandler) available(w http.ResponseWriter, r *http.Request) bool {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "problem store is not configured")
		return false
	}
	return true
}

// Problems handles GET /problems (list) and POST /problems (create).
func (h *ProblemHandler) Problems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ProblemHandler) list(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}

	problems, err := h.Repo.ListProblems(r.Context())
	if err != nil {
		log.Printf("list problems failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListProblemsResponse{
		Problems: make([]dto.ProblemResponse, 0, len(problems)),
	}
	for _, p := range problems {
		res.Problems = append(res.Problems, dto.ProblemResponse{
			ProblemID: p.ProblemID,
			Name:      p.Name,
			People:    p.Matrix.PeopleNames(),
			Rooms:     p.Matrix.RoomNames(),
			Scores:    p.Matrix.Scores(),
			CreatedAt: p.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ProblemHandler) create(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}

	var req dto.CreateProblemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	m, err := domain.NewScoreMatrix(req.People, req.Rooms, req.Scores)
	if err != nil {
		writeServiceError(w, r, "create problem", err)
		return
	}

	id, err := h.Repo.CreateProblem(r.Context(), name, m)
	if err != nil {
		writeServiceError(w, r, "create problem", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreateProblemResponse{ProblemID: id})
}

// Solve handles POST /problems/solve: it solves a stored problem and records
// the solution.
func (h *ProblemHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.available(w, r) {
		return
	}

	var req dto.SolveStoredRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProblemID <= 0 {
		writeError(w, r, http.StatusBadRequest, "problem_id must be positive")
		return
	}

	dir, strat, err := parseOptions(req.Direction, req.Strategy, h.Defaults)
	if err != nil {
		writeServiceError(w, r, "solve stored problem", err)
		return
	}

	p, res, err := services.SolveStoredProblem(r.Context(), services.SolveStoredRequest{
		ProblemID: req.ProblemID,
		Direction: dir,
		Strategy:  strat,
		MaxLPSize: maxLPSize,
	}, h.Repo, h.Cache)
	if err != nil {
		writeServiceError(w, r, "solve stored problem", err)
		return
	}

	sr, status, err := toSolveResponse(p.Matrix, res)
	if err != nil {
		log.Printf("solve stored problem %d: build report failed: %v", p.ProblemID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, status, dto.SolutionResponse{
		ProblemID: p.ProblemID,
		Name:      p.Name,
		Result:    sr,
	})
}

// Solution handles GET /problems/solution?problem_id=N&direction=min|max and
// returns the last recorded solution.
func (h *ProblemHandler) Solution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.available(w, r) {
		return
	}

	q := r.URL.Query()
	id, err := strconv.ParseInt(q.Get("problem_id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "problem_id must be a positive integer")
		return
	}

	dir, _, err := parseOptions(q.Get("direction"), "", h.Defaults)
	if err != nil {
		writeServiceError(w, r, "get solution", err)
		return
	}

	p, err := h.Repo.GetProblem(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get solution", err)
		return
	}

	sol, err := h.Repo.GetSolution(r.Context(), id, dir)
	if errors.Is(err, ports.ErrProblemNotFound) {
		writeError(w, r, http.StatusNotFound, "problem has no solution for direction "+dir.String())
		return
	}
	if err != nil {
		writeServiceError(w, r, "get solution", err)
		return
	}

	sr, _, err := toSolveResponse(p.Matrix, sol.Result)
	if err != nil {
		log.Printf("get solution %d: build report failed: %v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	solvedAt := sol.SolvedAt
	writeJSON(w, r, http.StatusOK, dto.SolutionResponse{
		ProblemID: p.ProblemID,
		Name:      p.Name,
		SolvedAt:  &solvedAt,
		Result:    sr,
	})
}
