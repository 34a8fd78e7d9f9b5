package services

import (
	"context"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/platform/obs"
	"room-matching-service/internal/ports"
)

// HungarianSolver adapts SolveHungarian to the Solver port.
type HungarianSolver struct{}

func (HungarianSolver) Solve(ctx context.Context, m *domain.ScoreMatrix, dir domain.Direction) (_ domain.Result, err error) {
	defer obs.Time(ctx, "solver.hungarian")(&err)

	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}
	return SolveHungarian(m, dir), nil
}

// LPSolver adapts SolveLP to the Solver port.
type LPSolver struct{}

func (LPSolver) Solve(ctx context.Context, m *domain.ScoreMatrix, dir domain.Direction) (_ domain.Result, err error) {
	defer obs.Time(ctx, "solver.lp")(&err)

	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}
	return SolveLP(m, dir), nil
}

// NewSolver returns the Solver implementing strategy. The zero Strategy
// selects the Hungarian algorithm; unknown values are a configuration error.
func NewSolver(strategy domain.Strategy) (ports.Solver, error) {
	switch strategy {
	case "", domain.StrategyHungarian:
		return HungarianSolver{}, nil
	case domain.StrategyLP:
		return LPSolver{}, nil
	}
	return nil, domain.NewConfigurationError("new solver", "unknown solver strategy %q", strategy)
}
