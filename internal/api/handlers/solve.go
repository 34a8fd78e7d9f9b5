package handlers

import (
	"fmt"
	"log"
	"net/http"
	"room-matching-service/internal/api/dto"
	"room-matching-service/internal/ports"
	"room-matching-service/internal/services"
)

// maxBatchProblems bounds the number of problems in one batch request.
const maxBatchProblems = 100

// SolveHandler solves matrices sent in the request body.
type SolveHandler struct {
	Cache    ports.ResultCache
	Defaults Defaults
}

// Solve handles POST /solve.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcReq, err := buildSolveRequest(req.People, req.Rooms, req.Scores, req.Direction, req.Strategy, h.Defaults)
	if err != nil {
		writeServiceError(w, r, "solve", err)
		return
	}

	res, err := services.SolveProblem(r.Context(), svcReq, h.Cache)
	if err != nil {
		writeServiceError(w, r, "solve", err)
		return
	}

	out, status, err := toSolveResponse(svcReq.Matrix, res)
	if err != nil {
		log.Printf("solve: build report failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, status, out)
}

// SolveBatch handles POST /solve/batch. Every problem is validated before
// any is solved; per-problem non-optimal outcomes are reported in place and
// do not fail the request.
func (h *SolveHandler) SolveBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BatchSolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Problems) == 0 {
		writeError(w, r, http.StatusBadRequest, "problems must not be empty")
		return
	}
	if len(req.Problems) > maxBatchProblems {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d problems per batch", maxBatchProblems))
		return
	}

	svcReqs := make([]services.SolveRequest, 0, len(req.Problems))
	for i, p := range req.Problems {
		svcReq, err := buildSolveRequest(p.People, p.Rooms, p.Scores, p.Direction, p.Strategy, h.Defaults)
		if err != nil {
			writeServiceError(w, r, "solve batch", fmt.Errorf("problem #%d: %w", i+1, err))
			return
		}
		svcReqs = append(svcReqs, svcReq)
	}

	results, err := services.SolveBatch(r.Context(), svcReqs, h.Cache, h.Defaults.BatchConcurrency)
	if err != nil {
		writeServiceError(w, r, "solve batch", err)
		return
	}

	out := dto.BatchSolveResponse{Results: make([]dto.SolveResponse, 0, len(results))}
	for i, res := range results {
		sr, _, err := toSolveResponse(svcReqs[i].Matrix, res)
		if err != nil {
			log.Printf("solve batch: problem #%d: build report failed: %v", i+1, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		out.Results = append(out.Results, sr)
	}

	writeJSON(w, r, http.StatusOK, out)
}
