package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/platform/obs"
	"room-matching-service/internal/ports"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency caps concurrent solves in SolveBatch when the
// caller passes a non-positive limit.
const DefaultBatchConcurrency = 4

type SolveRequest struct {
	Matrix    *domain.ScoreMatrix
	Direction domain.Direction
	Strategy  domain.Strategy
}

// SolveProblem solves one matrix, consulting cache first when it is non-nil.
//
// Only optimal results are cached. Cache failures are logged and never fail
// the solve. The returned error is non-nil for cancellation, or when the
// request carries no matrix or an unknown strategy; a non-optimal outcome is
// reported via Result.Status.
func SolveProblem(
	ctx context.Context,
	req SolveRequest,
	cache ports.ResultCache,
) (_ domain.Result, err error) {
	defer obs.Time(ctx, "services.SolveProblem")(&err)

	if req.Matrix == nil {
		return domain.Result{}, domain.NewConfigurationError("solve problem", "score matrix is required")
	}

	solver, err := NewSolver(req.Strategy)
	if err != nil {
		return domain.Result{}, fmt.Errorf("solve problem: %w", err)
	}

	key := ""
	if cache != nil {
		key = Fingerprint(req.Matrix, req.Direction, req.Strategy)
		cached, ok, cerr := cache.Get(ctx, key)
		if cerr != nil {
			log.Printf("result cache read failed key=%s: %v", key, cerr)
		} else if ok {
			return cached, nil
		}
	}

	res, err := solver.Solve(ctx, req.Matrix, req.Direction)
	if err != nil {
		return domain.Result{}, fmt.Errorf("solve problem: %w", err)
	}

	if cache != nil && res.Status == domain.StatusOptimal {
		if cerr := cache.Set(ctx, key, res); cerr != nil {
			log.Printf("result cache write failed key=%s: %v", key, cerr)
		}
	}

	return res, nil
}

// SolveBatch solves independent problems concurrently with at most limit
// solves in flight. Results keep the order of reqs. The first hard error
// (cancellation, missing matrix) cancels the rest.
func SolveBatch(
	ctx context.Context,
	reqs []SolveRequest,
	cache ports.ResultCache,
	limit int,
) (_ []domain.Result, err error) {
	defer obs.Time(ctx, "services.SolveBatch")(&err)

	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	results := make([]domain.Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		g.Go(func() error {
			res, err := SolveProblem(gctx, req, cache)
			if err != nil {
				return fmt.Errorf("problem #%d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("solve batch: %w", err)
	}

	return results, nil
}

type SolveStoredRequest struct {
	ProblemID int64
	Direction domain.Direction
	Strategy  domain.Strategy
	// MaxLPSize rejects lp solves of larger problems; 0 means no limit.
	MaxLPSize int
}

// SolveStoredProblem loads a problem from repo, solves it and records the
// solution. Non-optimal outcomes are recorded too, so the store reflects the
// last attempt.
func SolveStoredProblem(
	ctx context.Context,
	req SolveStoredRequest,
	repo ports.ProblemRepository,
	cache ports.ResultCache,
) (*domain.Problem, domain.Result, error) {
	if repo == nil {
		return nil, domain.Result{}, errors.New("solve stored problem: repository is not configured")
	}

	p, err := repo.GetProblem(ctx, req.ProblemID)
	if err != nil {
		return nil, domain.Result{}, fmt.Errorf("solve stored problem: get problem %d: %w", req.ProblemID, err)
	}

	if req.Strategy == domain.StrategyLP && req.MaxLPSize > 0 && p.Matrix.Size() > req.MaxLPSize {
		return nil, domain.Result{}, domain.NewConfigurationError(
			"solve stored problem",
			"lp strategy accepts at most %d people, got %d", req.MaxLPSize, p.Matrix.Size(),
		)
	}

	res, err := SolveProblem(ctx, SolveRequest{
		Matrix:    p.Matrix,
		Direction: req.Direction,
		Strategy:  req.Strategy,
	}, cache)
	if err != nil {
		return nil, domain.Result{}, fmt.Errorf("solve stored problem %d: %w", req.ProblemID, err)
	}

	sol := domain.Solution{
		ProblemID: p.ProblemID,
		Result:    res,
		SolvedAt:  time.Now().UTC(),
	}
	if err := repo.SaveSolution(ctx, sol); err != nil {
		return nil, domain.Result{}, fmt.Errorf("solve stored problem %d: save solution: %w", req.ProblemID, err)
	}

	return p, res, nil
}
