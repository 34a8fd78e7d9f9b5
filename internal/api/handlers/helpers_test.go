package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewConfigurationError("op", "bad"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", ports.ErrProblemNotFound), http.StatusNotFound},
		{domain.Result{Status: domain.StatusInfeasible}.Err(), http.StatusUnprocessableEntity},
		{domain.Result{Status: domain.StatusUnbounded}.Err(), http.StatusUnprocessableEntity},
		{domain.Result{Status: domain.StatusError}.Err(), http.StatusInternalServerError},
		{context.Canceled, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, statusForError(tc.err), "err=%v", tc.err)
	}
}

func TestParseOptionsDefaults(t *testing.T) {
	dir, strat, err := parseOptions("", "", Defaults{Direction: domain.Maximize, Strategy: domain.StrategyLP})
	require.NoError(t, err)
	assert.Equal(t, domain.Maximize, dir)
	assert.Equal(t, domain.StrategyLP, strat)

	dir, strat, err = parseOptions("min", "hungarian", Defaults{Direction: domain.Maximize, Strategy: domain.StrategyLP})
	require.NoError(t, err)
	assert.Equal(t, domain.Minimize, dir)
	assert.Equal(t, domain.StrategyHungarian, strat)

	_, strat, err = parseOptions("", "", Defaults{})
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyHungarian, strat)
}

func TestBuildSolveRequestLimitsLP(t *testing.T) {
	n := maxLPSize + 1
	people := make([]string, n)
	rooms := make([]string, n)
	scores := make([][]int64, n)
	for i := range n {
		people[i] = fmt.Sprintf("P%d", i)
		rooms[i] = fmt.Sprintf("R%d", i)
		scores[i] = make([]int64, n)
	}

	_, err := buildSolveRequest(people, rooms, scores, "", "lp", Defaults{})
	require.ErrorIs(t, err, domain.ErrConfiguration)

	req, err := buildSolveRequest(people, rooms, scores, "", "hungarian", Defaults{})
	require.NoError(t, err)
	assert.Equal(t, n, req.Matrix.Size())
}

func TestToSolveResponseNonOptimal(t *testing.T) {
	m, err := domain.NewScoreMatrix([]string{"A"}, []string{"X"}, [][]int64{{1}})
	require.NoError(t, err)

	out, status, err := toSolveResponse(m, domain.Result{
		Status:   domain.StatusInfeasible,
		Strategy: domain.StrategyLP,
		Message:  "no feasible point",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Infeasible", out.Status)
	assert.Empty(t, out.Assignments)
	assert.Equal(t, "no feasible point", out.Message)
}
