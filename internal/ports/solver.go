package ports

import (
	"context"
	"room-matching-service/internal/domain"
)

// Contract for computing an optimal person -> room bijection.
type Solver interface {
	// Solve runs one blocking solve. Non-optimal outcomes are reported through
	// Result.Status; the error is reserved for context cancellation.
	Solve(ctx context.Context, m *domain.ScoreMatrix, dir domain.Direction) (domain.Result, error)
}
