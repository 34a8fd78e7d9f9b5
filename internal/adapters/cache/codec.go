package cache

import (
	"encoding/json"
	"fmt"
	"room-matching-service/internal/domain"
)

// cachedResult is the JSON shape stored under a fingerprint key.
type cachedResult struct {
	Status     string `json:"status"`
	Direction  string `json:"direction"`
	Strategy   string `json:"strategy"`
	Assignment []int  `json:"assignment"`
	Objective  int64  `json:"objective"`
	Message    string `json:"message,omitempty"`
}

func encodeResult(r domain.Result) ([]byte, error) {
	b, err := json.Marshal(cachedResult{
		Status:     r.Status.String(),
		Direction:  r.Direction.String(),
		Strategy:   string(r.Strategy),
		Assignment: r.Assignment,
		Objective:  r.Objective,
		Message:    r.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("encode cached result: %w", err)
	}
	return b, nil
}

func decodeResult(b []byte) (domain.Result, error) {
	var c cachedResult
	if err := json.Unmarshal(b, &c); err != nil {
		return domain.Result{}, fmt.Errorf("decode cached result: %w", err)
	}

	status, err := domain.ParseSolveStatus(c.Status)
	if err != nil {
		return domain.Result{}, fmt.Errorf("decode cached result: %w", err)
	}
	dir, err := domain.ParseDirection(c.Direction)
	if err != nil {
		return domain.Result{}, fmt.Errorf("decode cached result: %w", err)
	}
	strategy, err := domain.ParseStrategy(c.Strategy)
	if err != nil {
		return domain.Result{}, fmt.Errorf("decode cached result: %w", err)
	}

	var a domain.Assignment
	if c.Assignment != nil {
		a = domain.Assignment(c.Assignment)
	}

	return domain.Result{
		Status:     status,
		Direction:  dir,
		Strategy:   strategy,
		Assignment: a,
		Objective:  c.Objective,
		Message:    c.Message,
	}, nil
}
