package dto

type SolveRequest struct {
	People    []string  `json:"people"`
	Rooms     []string  `json:"rooms"`
	Scores    [][]int64 `json:"scores"`
	Direction string    `json:"direction"`
	Strategy  string    `json:"strategy"`
}

type AssignmentResponse struct {
	Person string `json:"person"`
	Room   string `json:"room"`
	Score  int64  `json:"score"`
}

type SolveResponse struct {
	Status      string               `json:"status"`
	Direction   string               `json:"direction"`
	Strategy    string               `json:"strategy"`
	Assignments []AssignmentResponse `json:"assignments"`
	Total       int64                `json:"total"`
	Average     float64              `json:"average"`
	Message     string               `json:"message,omitempty"`
}

type BatchSolveRequest struct {
	Problems []SolveRequest `json:"problems"`
}

type BatchSolveResponse struct {
	Results []SolveResponse `json:"results"`
}
