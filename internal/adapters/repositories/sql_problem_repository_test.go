package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/platform/db"
	"room-matching-service/internal/ports"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and resets the tables.
// Tests that need Postgres are skipped when the variable is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(url, db.Options{MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx := context.Background()
	_, err = conn.ExecContext(ctx, `DROP TABLE IF EXISTS solutions, problems`)
	require.NoError(t, err)
	require.NoError(t, InitSchema(ctx, conn))

	return conn
}

func sampleMatrix(t *testing.T) *domain.ScoreMatrix {
	t.Helper()
	m, err := domain.NewScoreMatrix(
		[]string{"A", "B", "C"},
		[]string{"X", "Y", "Z"},
		[][]int64{{3, 1, 2}, {2, 3, 1}, {1, 2, 3}},
	)
	require.NoError(t, err)
	return m
}

func TestEncodeDecodeMatrix(t *testing.T) {
	m := sampleMatrix(t)

	people, rooms, scores, err := encodeMatrix(m)
	require.NoError(t, err)
	assert.Equal(t, `["A","B","C"]`, people)
	assert.Equal(t, `["X","Y","Z"]`, rooms)
	assert.Equal(t, `[[3,1,2],[2,3,1],[1,2,3]]`, scores)

	got, err := decodeMatrix([]byte(people), []byte(rooms), []byte(scores))
	require.NoError(t, err)
	if diff := cmp.Diff(m.Scores(), got.Scores()); diff != "" {
		t.Fatalf("scores mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, m.PeopleNames(), got.PeopleNames())
	assert.Equal(t, m.RoomNames(), got.RoomNames())
}

func TestDecodeMatrixRejectsCorruptRows(t *testing.T) {
	tests := []struct {
		name                  string
		people, rooms, scores string
	}{
		{"bad json", `[`, `["X"]`, `[[1]]`},
		{"unbalanced", `["A","B"]`, `["X"]`, `[[1],[2]]`},
		{"ragged", `["A","B"]`, `["X","Y"]`, `[[1,2],[3]]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeMatrix([]byte(tc.people), []byte(tc.rooms), []byte(tc.scores))
			require.Error(t, err)
		})
	}
}

func TestNilDB(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLProblemRepository(nil)

	_, err := repo.CreateProblem(ctx, "x", sampleMatrix(t))
	assert.Error(t, err)
	_, err = repo.GetProblem(ctx, 1)
	assert.Error(t, err)
	_, err = repo.ListProblems(ctx)
	assert.Error(t, err)
	assert.Error(t, repo.SaveSolution(ctx, domain.Solution{}))
	_, err = repo.GetSolution(ctx, 1, domain.Minimize)
	assert.Error(t, err)
	assert.Error(t, InitSchema(ctx, nil))
}

func TestSQLProblemRepositoryRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()
	repo := NewSQLProblemRepository(conn)
	m := sampleMatrix(t)

	id, err := repo.CreateProblem(ctx, "dorm-a", m)
	require.NoError(t, err)
	require.Positive(t, id)

	// Re-storing the same name replaces the matrix and keeps the id.
	again, err := repo.CreateProblem(ctx, "dorm-a", m)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	p, err := repo.GetProblem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "dorm-a", p.Name)
	assert.Equal(t, m.Scores(), p.Matrix.Scores())
	assert.False(t, p.CreatedAt.IsZero())

	list, err := repo.ListProblems(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ProblemID)

	_, err = repo.GetProblem(ctx, id+100)
	assert.True(t, errors.Is(err, ports.ErrProblemNotFound))
}

func TestSQLProblemRepositorySolutions(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()
	repo := NewSQLProblemRepository(conn)

	id, err := repo.CreateProblem(ctx, "dorm-b", sampleMatrix(t))
	require.NoError(t, err)

	_, err = repo.GetSolution(ctx, id, domain.Minimize)
	require.ErrorIs(t, err, ports.ErrProblemNotFound)

	solvedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sol := domain.Solution{
		ProblemID: id,
		Result: domain.Result{
			Status:     domain.StatusOptimal,
			Direction:  domain.Minimize,
			Strategy:   domain.StrategyHungarian,
			Assignment: domain.Assignment{1, 2, 0},
			Objective:  3,
		},
		SolvedAt: solvedAt,
	}
	require.NoError(t, repo.SaveSolution(ctx, sol))

	// A second save for the same direction overwrites the first.
	sol.Result.Strategy = domain.StrategyLP
	require.NoError(t, repo.SaveSolution(ctx, sol))

	got, err := repo.GetSolution(ctx, id, domain.Minimize)
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyLP, got.Result.Strategy)
	assert.Equal(t, domain.StatusOptimal, got.Result.Status)
	assert.Equal(t, domain.Assignment{1, 2, 0}, got.Result.Assignment)
	assert.Equal(t, int64(3), got.Result.Objective)
	assert.True(t, solvedAt.Equal(got.SolvedAt))

	failed := domain.Solution{
		ProblemID: id,
		Result: domain.Result{
			Status:    domain.StatusError,
			Direction: domain.Maximize,
			Strategy:  domain.StrategyLP,
			Message:   "no integral vertex",
		},
		SolvedAt: solvedAt,
	}
	require.NoError(t, repo.SaveSolution(ctx, failed))

	got, err = repo.GetSolution(ctx, id, domain.Maximize)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, got.Result.Status)
	assert.Nil(t, got.Result.Assignment)
	assert.Equal(t, "no integral vertex", got.Result.Message)
}

func TestCreateProblemReplacesSolutions(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()
	repo := NewSQLProblemRepository(conn)

	id, err := repo.CreateProblem(ctx, "dorm-c", sampleMatrix(t))
	require.NoError(t, err)
	require.NoError(t, repo.SaveSolution(ctx, domain.Solution{
		ProblemID: id,
		Result: domain.Result{
			Status:     domain.StatusOptimal,
			Direction:  domain.Minimize,
			Strategy:   domain.StrategyHungarian,
			Assignment: domain.Assignment{1, 2, 0},
			Objective:  3,
		},
		SolvedAt: time.Now().UTC(),
	}))

	_, err = repo.CreateProblem(ctx, "dorm-c", sampleMatrix(t))
	require.NoError(t, err)

	_, err = repo.GetSolution(ctx, id, domain.Minimize)
	assert.ErrorIs(t, err, ports.ErrProblemNotFound)
}
