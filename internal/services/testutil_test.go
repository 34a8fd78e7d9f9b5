package services

import (
	"fmt"
	"math/rand"
	"room-matching-service/internal/domain"
	"testing"
)

// mustMatrix builds a matrix with generated labels P0.., R0...
func mustMatrix(t *testing.T, scores [][]int64) *domain.ScoreMatrix {
	t.Helper()
	n := len(scores)
	people := make([]string, n)
	rooms := make([]string, n)
	for i := 0; i < n; i++ {
		people[i] = fmt.Sprintf("P%d", i)
		rooms[i] = fmt.Sprintf("R%d", i)
	}
	m, err := domain.NewScoreMatrix(people, rooms, scores)
	if err != nil {
		t.Fatalf("build matrix: %v", err)
	}
	return m
}

func randomScores(rng *rand.Rand, n int, lo, hi int64) [][]int64 {
	scores := make([][]int64, n)
	for i := range scores {
		scores[i] = make([]int64, n)
		for j := range scores[i] {
			scores[i][j] = lo + rng.Int63n(hi-lo+1)
		}
	}
	return scores
}

// bruteForceBest enumerates all n! permutations (Heap's algorithm).
func bruteForceBest(m *domain.ScoreMatrix, dir domain.Direction) int64 {
	n := m.Size()
	if n == 0 {
		return 0
	}

	perm := make(domain.Assignment, n)
	for i := range perm {
		perm[i] = i
	}

	best := m.Objective(perm)
	consider := func() {
		v := m.Objective(perm)
		if (dir == domain.Minimize && v < best) || (dir == domain.Maximize && v > best) {
			best = v
		}
	}

	c := make([]int, n)
	for i := 0; i < n; {
		if c[i] < i {
			if i%2 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[c[i]], perm[i] = perm[i], perm[c[i]]
			}
			consider()
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}

	return best
}

func negate(scores [][]int64) [][]int64 {
	out := make([][]int64, len(scores))
	for i, row := range scores {
		out[i] = make([]int64, len(row))
		for j, v := range row {
			out[i][j] = -v
		}
	}
	return out
}

func scale(scores [][]int64, k int64) [][]int64 {
	out := make([][]int64, len(scores))
	for i, row := range scores {
		out[i] = make([]int64, len(row))
		for j, v := range row {
			out[i][j] = v * k
		}
	}
	return out
}
