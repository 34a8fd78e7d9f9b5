package domain

import (
	"fmt"
	"strings"
)

// Direction selects whether the objective is minimized (costs, rankings)
// or maximized (happiness).
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	switch d {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts "min", "minimize", "max" and "maximize" (case-insensitive).
// An empty string means Minimize.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "min", "minimize":
		return Minimize, nil
	case "max", "maximize":
		return Maximize, nil
	}
	return Minimize, NewConfigurationError("parse direction", "unknown optimization direction %q", s)
}

// Strategy names the algorithm used to solve a problem.
type Strategy string

const (
	StrategyHungarian Strategy = "hungarian"
	StrategyLP        Strategy = "lp"
)

// ParseStrategy maps user input to a Strategy. An empty string means Hungarian.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyHungarian:
		return StrategyHungarian, nil
	case StrategyLP:
		return StrategyLP, nil
	}
	return StrategyHungarian, NewConfigurationError("parse strategy", "unknown solver strategy %q", s)
}

// SolveStatus is the outcome reported by a solver.
type SolveStatus int

const (
	StatusNotSolved SolveStatus = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusError
)

func (s SolveStatus) String() string {
	switch s {
	case StatusNotSolved:
		return "Not Solved"
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusError:
		return "Error"
	default:
		return fmt.Sprintf("SolveStatus(%d)", int(s))
	}
}

// ParseSolveStatus is the inverse of String, used when reading stored solutions.
func ParseSolveStatus(s string) (SolveStatus, error) {
	for _, st := range []SolveStatus{StatusNotSolved, StatusOptimal, StatusInfeasible, StatusUnbounded, StatusError} {
		if st.String() == s {
			return st, nil
		}
	}
	return StatusNotSolved, fmt.Errorf("parse solve status: unknown status %q", s)
}

// Assignment maps person index to room index: a[i] = j.
type Assignment []int

// Validate reports whether a is a permutation of 0..n-1.
func (a Assignment) Validate(n int) error {
	if len(a) != n {
		return fmt.Errorf("assignment covers %d people, want %d", len(a), n)
	}

	taken := make([]bool, n)
	for i, j := range a {
		if j < 0 || j >= n {
			return fmt.Errorf("person %d assigned to room %d outside [0,%d)", i, j, n)
		}
		if taken[j] {
			return fmt.Errorf("room %d assigned more than once", j)
		}
		taken[j] = true
	}

	return nil
}

// Result is the single consistent tuple a solve produces.
// Assignment is nil unless Status is StatusOptimal.
type Result struct {
	Status     SolveStatus
	Direction  Direction
	Strategy   Strategy
	Assignment Assignment
	Objective  int64
	// Message carries solver detail for non-optimal outcomes.
	Message string
}

// Err converts a non-optimal status into the matching sentinel error.
func (r Result) Err() error {
	switch r.Status {
	case StatusOptimal:
		return nil
	case StatusInfeasible:
		return fmt.Errorf("%w: %s", ErrInfeasible, r.Message)
	case StatusUnbounded:
		return fmt.Errorf("%w: %s", ErrUnbounded, r.Message)
	default:
		return fmt.Errorf("%w: status=%s: %s", ErrSolve, r.Status, r.Message)
	}
}
