package dto

import "time"

type CreateProblemRequest struct {
	Name   string    `json:"name"`
	People []string  `json:"people"`
	Rooms  []string  `json:"rooms"`
	Scores [][]int64 `json:"scores"`
}

type CreateProblemResponse struct {
	ProblemID int64 `json:"problem_id"`
}

type ProblemResponse struct {
	ProblemID int64     `json:"problem_id"`
	Name      string    `json:"name"`
	People    []string  `json:"people"`
	Rooms     []string  `json:"rooms"`
	Scores    [][]int64 `json:"scores"`
	CreatedAt time.Time `json:"created_at"`
}

type ListProblemsResponse struct {
	Problems []ProblemResponse `json:"problems"`
}

type SolveStoredRequest struct {
	ProblemID int64  `json:"problem_id"`
	Direction string `json:"direction"`
	Strategy  string `json:"strategy"`
}

type SolutionResponse struct {
	ProblemID int64         `json:"problem_id"`
	Name      string        `json:"name"`
	SolvedAt  *time.Time    `json:"solved_at,omitempty"`
	Result    SolveResponse `json:"result"`
}
