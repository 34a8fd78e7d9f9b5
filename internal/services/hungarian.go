package services

import (
	"math"
	"room-matching-service/internal/domain"
)

// SolveHungarian computes an optimal person -> room bijection with the
// Kuhn-Munkres algorithm in O(n³) time.
//
// Rows are inserted one at a time; each insertion grows a shortest
// augmenting path over reduced costs c[i][j] - u[i] - v[j], then flips the
// matching along it. Potentials keep every reduced cost non-negative, so the
// final matching is globally optimal. Maximize is handled by negating costs.
//
// Ties are broken by the lowest column index, so the output is deterministic
// for a given matrix. The objective is always recomputed from the original
// scores, never from the potentials.
func SolveHungarian(m *domain.ScoreMatrix, dir domain.Direction) domain.Result {
	res := domain.Result{
		Direction: dir,
		Strategy:  domain.StrategyHungarian,
	}

	n := m.Size()
	if n == 0 {
		res.Status = domain.StatusOptimal
		res.Assignment = domain.Assignment{}
		return res
	}

	cost := minimizationCosts(m, dir)

	const inf = int64(math.MaxInt64)

	// 1-indexed; index 0 is the virtual column that roots each search.
	u := make([]int64, n+1)
	v := make([]int64, n+1)
	p := make([]int, n+1)   // p[j] = row matched to column j (0 = free)
	way := make([]int, n+1) // way[j] = previous column on the augmenting path
	minv := make([]int64, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0

		for j := range minv {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			// Every column is already on the tree: no augmenting path exists.
			if j1 < 0 {
				res.Status = domain.StatusInfeasible
				res.Message = "no augmenting path for person " + m.Person(i-1).Name
				return res
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Flip the matching along the path back to the virtual column.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make(domain.Assignment, n)
	for i := range assignment {
		assignment[i] = -1
	}
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			assignment[p[j]-1] = j - 1
		}
	}

	if err := assignment.Validate(n); err != nil {
		res.Status = domain.StatusError
		res.Message = err.Error()
		return res
	}

	res.Status = domain.StatusOptimal
	res.Assignment = assignment
	res.Objective = m.Objective(assignment)
	return res
}

// minimizationCosts copies the scores, negated when maximizing, so both
// directions share one minimization routine.
func minimizationCosts(m *domain.ScoreMatrix, dir domain.Direction) [][]int64 {
	n := m.Size()
	cost := make([][]int64, n)
	for i := 0; i < n; i++ {
		cost[i] = make([]int64, n)
		for j := 0; j < n; j++ {
			c := m.Score(i, j)
			if dir == domain.Maximize {
				c = -c
			}
			cost[i][j] = c
		}
	}
	return cost
}
