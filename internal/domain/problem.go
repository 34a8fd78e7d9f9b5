package domain

import "time"

// Problem is a named score matrix persisted for later solving.
type Problem struct {
	ProblemID int64
	Name      string
	Matrix    *ScoreMatrix
	CreatedAt time.Time
}

// Solution records the outcome of solving a stored Problem in one direction.
// A Problem has at most one Solution per Direction; re-solving replaces it.
type Solution struct {
	ProblemID int64
	Result    Result
	SolvedAt  time.Time
}
