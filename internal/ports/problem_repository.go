package ports

import (
	"context"
	"errors"
	"room-matching-service/internal/domain"
)

// ErrProblemNotFound is returned by repositories for unknown problem ids
// and for problems with no recorded solution.
var ErrProblemNotFound = errors.New("problem not found")

// Port: a boundary for storing problems and their solutions.
type ProblemRepository interface {
	// Store a new problem and return its assigned id.
	CreateProblem(ctx context.Context, name string, m *domain.ScoreMatrix) (int64, error)
	// Retrieve one problem by id.
	GetProblem(ctx context.Context, problemID int64) (*domain.Problem, error)
	// Retrieve all stored problems ordered by id.
	ListProblems(ctx context.Context) ([]*domain.Problem, error)
	// Record (or replace) the solution for a problem and direction.
	SaveSolution(ctx context.Context, s domain.Solution) error
	// Retrieve the last recorded solution for a problem and direction.
	GetSolution(ctx context.Context, problemID int64, dir domain.Direction) (*domain.Solution, error)
}
