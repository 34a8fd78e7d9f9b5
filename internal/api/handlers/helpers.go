package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"room-matching-service/internal/api/dto"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/ports"
	"room-matching-service/internal/services"
)

// maxBodyBytes bounds request bodies; a 300x300 matrix of large scores fits.
const maxBodyBytes = 4 << 20

// maxLPSize bounds the matrix size accepted for the lp strategy, whose dense
// constraint matrix grows as 2n x n^2.
const maxLPSize = 64

// Defaults fills request fields the client leaves empty.
type Defaults struct {
	Direction        domain.Direction
	Strategy         domain.Strategy
	BatchConcurrency int
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrProblemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInfeasible), errors.Is(err, domain.ErrUnbounded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError reports err with its mapped status. Client errors carry
// their message; server errors are logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s failed: %v", op, err)
		writeError(w, r, status, "internal server error")
		return
	}
	writeError(w, r, status, err.Error())
}

// buildSolveRequest validates a matrix and its options, applying defaults.
func buildSolveRequest(
	people, rooms []string,
	scores [][]int64,
	direction, strategy string,
	defaults Defaults,
) (services.SolveRequest, error) {
	m, err := domain.NewScoreMatrix(people, rooms, scores)
	if err != nil {
		return services.SolveRequest{}, err
	}

	dir, strat, err := parseOptions(direction, strategy, defaults)
	if err != nil {
		return services.SolveRequest{}, err
	}

	if strat == domain.StrategyLP && m.Size() > maxLPSize {
		return services.SolveRequest{}, domain.NewConfigurationError(
			"solve", "lp strategy accepts at most %d people, got %d", maxLPSize, m.Size(),
		)
	}

	return services.SolveRequest{Matrix: m, Direction: dir, Strategy: strat}, nil
}

func parseOptions(direction, strategy string, defaults Defaults) (domain.Direction, domain.Strategy, error) {
	dir := defaults.Direction
	if direction != "" {
		d, err := domain.ParseDirection(direction)
		if err != nil {
			return 0, "", err
		}
		dir = d
	}

	strat := defaults.Strategy
	if strat == "" {
		strat = domain.StrategyHungarian
	}
	if strategy != "" {
		s, err := domain.ParseStrategy(strategy)
		if err != nil {
			return 0, "", err
		}
		strat = s
	}

	return dir, strat, nil
}

// toSolveResponse converts a result into its wire form. The returned status
// is 200 for optimal results and the mapped error status otherwise.
func toSolveResponse(m *domain.ScoreMatrix, res domain.Result) (dto.SolveResponse, int, error) {
	rep, err := services.BuildReport(m, res)
	if err != nil {
		return dto.SolveResponse{}, 0, err
	}

	out := dto.SolveResponse{
		Status:      rep.Status.String(),
		Direction:   rep.Direction.String(),
		Strategy:    string(rep.Strategy),
		Assignments: make([]dto.AssignmentResponse, 0, len(rep.Rows)),
		Total:       rep.Total,
		Average:     rep.Average,
		Message:     rep.Message,
	}
	for _, row := range rep.Rows {
		out.Assignments = append(out.Assignments, dto.AssignmentResponse{
			Person: row.Person,
			Room:   row.Room,
			Score:  row.Score,
		})
	}

	status := http.StatusOK
	if err := res.Err(); err != nil {
		status = statusForError(err)
	}

	return out, status, nil
}
