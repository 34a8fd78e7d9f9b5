package services

import (
	"errors"
	"fmt"
	"room-matching-service/internal/domain"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	simplexTolerance     = 1e-10
	integralityTolerance = 1e-6
)

// SolveLP solves the assignment problem through its generic LP formulation.
//
// The constraint matrix of a bipartite assignment problem is totally
// unimodular, so the simplex method lands on an integral vertex without any
// branching and the 0/1 bounds can be relaxed to x ≥ 0. Solver failures are
// reported through the status rather than an error: ErrInfeasible maps to
// StatusInfeasible, ErrUnbounded to StatusUnbounded, anything else (including
// a fractional vertex) to StatusError.
func SolveLP(m *domain.ScoreMatrix, dir domain.Direction) (res domain.Result) {
	res = domain.Result{
		Direction: dir,
		Strategy:  domain.StrategyLP,
	}

	n := m.Size()
	if n == 0 {
		res.Status = domain.StatusOptimal
		res.Assignment = domain.Assignment{}
		return res
	}

	model := BuildLPModel(m, dir)
	c, A, b := model.standardForm()

	x, err := runSimplex(c, A, b)
	if status := simplexStatus(err); status != domain.StatusOptimal {
		res.Status = status
		res.Message = err.Error()
		return res
	}

	assignment, err := model.decodeAssignment(x)
	if err != nil {
		res.Status = domain.StatusError
		res.Message = err.Error()
		return res
	}

	res.Status = domain.StatusOptimal
	res.Assignment = assignment
	res.Objective = m.Objective(assignment)
	return res
}

// runSimplex solves min cᵀx s.t. Ax = b, x ≥ 0. gonum panics on malformed
// inputs rather than returning an error; such panics come back as errors.
func runSimplex(c []float64, A mat.Matrix, b []float64) (x []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			x = nil
			err = fmt.Errorf("simplex panicked: %v", r)
		}
	}()

	_, x, err = lp.Simplex(c, A, b, simplexTolerance, nil)
	return x, err
}

// simplexStatus maps a runSimplex error onto a solve status.
func simplexStatus(err error) domain.SolveStatus {
	switch {
	case err == nil:
		return domain.StatusOptimal
	case errors.Is(err, lp.ErrInfeasible):
		return domain.StatusInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return domain.StatusUnbounded
	default:
		return domain.StatusError
	}
}
