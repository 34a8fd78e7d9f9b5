package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/platform/obs"
	"room-matching-service/internal/ports"
	"strings"
)

// Postgres-backed implementation of the ProblemRepository port.
// Matrices are stored as JSONB columns so a problem round-trips in one row.
type SQLProblemRepository struct{ DB *sql.DB }

func NewSQLProblemRepository(db *sql.DB) *SQLProblemRepository {
	return &SQLProblemRepository{DB: db}
}

// CreateProblem stores m under name. Names are unique; storing an existing
// name replaces its matrix, keeps the id and drops recorded solutions.
func (s *SQLProblemRepository) CreateProblem(
	ctx context.Context,
	name string,
	m *domain.ScoreMatrix,
) (_ int64, err error) {
	defer obs.Time(ctx, "problems.CreateProblem")(&err)

	if s.DB == nil {
		return 0, errors.New("sql problem repository: DB is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("create problem: name must not be empty")
	}
	if m == nil {
		return 0, errors.New("create problem: matrix is nil")
	}

	people, rooms, scores, err := encodeMatrix(m)
	if err != nil {
		return 0, fmt.Errorf("create problem %q: %w", name, err)
	}

	q := `
	INSERT INTO problems (name, people, rooms, scores)
	VALUES ($1, $2::jsonb, $3::jsonb, $4::jsonb)
	ON CONFLICT (name) DO UPDATE
	SET people = EXCLUDED.people,
		rooms = EXCLUDED.rooms,
		scores = EXCLUDED.scores
	RETURNING problem_id;
	`

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("create problem %q: begin tx: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	if err := tx.QueryRowContext(ctx, q, name, people, rooms, scores).Scan(&id); err != nil {
		return 0, fmt.Errorf("create problem %q: insert: %w", name, err)
	}

	// Solutions of a replaced matrix no longer describe it.
	if _, err := tx.ExecContext(ctx, `DELETE FROM solutions WHERE problem_id = $1;`, id); err != nil {
		return 0, fmt.Errorf("create problem %q: clear solutions: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create problem %q: commit tx: %w", name, err)
	}

	return id, nil
}

// Retrieve one problem by id.
func (s *SQLProblemRepository) GetProblem(ctx context.Context, problemID int64) (_ *domain.Problem, err error) {
	defer obs.Time(ctx, "problems.GetProblem")(&err)

	if s.DB == nil {
		return nil, errors.New("sql problem repository: DB is nil")
	}

	q := `
	SELECT
		problem_id,
		name,
		people,
		rooms,
		scores,
		created_at
	FROM problems
	WHERE problem_id = $1;
	`

	p, err := scanProblem(s.DB.QueryRowContext(ctx, q, problemID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get problem %d: %w", problemID, ports.ErrProblemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get problem %d: %w", problemID, err)
	}

	return p, nil
}

// Return all problems stored in the database.
func (s *SQLProblemRepository) ListProblems(ctx context.Context) (_ []*domain.Problem, err error) {
	defer obs.Time(ctx, "problems.ListProblems")(&err)

	if s.DB == nil {
		return nil, errors.New("sql problem repository: DB is nil")
	}

	q := `
	SELECT
		problem_id,
		name,
		people,
		rooms,
		scores,
		created_at
	FROM problems
	ORDER BY problem_id;
	`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list problems: query problems table: %w", err)
	}
	defer rows.Close()

	problems := make([]*domain.Problem, 0, 16)
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("list problems: %w", err)
		}
		problems = append(problems, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list problems: row iteration: %w", err)
	}

	return problems, nil
}

// Record (or replace) the solution for a problem and direction.
func (s *SQLProblemRepository) SaveSolution(ctx context.Context, sol domain.Solution) (err error) {
	defer obs.Time(ctx, "problems.SaveSolution")(&err)

	if s.DB == nil {
		return errors.New("sql problem repository: DB is nil")
	}

	var assignment any
	if sol.Result.Assignment != nil {
		b, err := json.Marshal([]int(sol.Result.Assignment))
		if err != nil {
			return fmt.Errorf("save solution: encode assignment: %w", err)
		}
		assignment = string(b)
	}

	q := `
	INSERT INTO solutions (
		problem_id,
		direction,
		strategy,
		status,
		assignment,
		objective,
		message,
		solved_at
	)
	VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8)
	ON CONFLICT (problem_id, direction) DO UPDATE
	SET strategy = EXCLUDED.strategy,
		status = EXCLUDED.status,
		assignment = EXCLUDED.assignment,
		objective = EXCLUDED.objective,
		message = EXCLUDED.message,
		solved_at = EXCLUDED.solved_at;
	`

	_, err = s.DB.ExecContext(ctx, q,
		sol.ProblemID,
		sol.Result.Direction.String(),
		string(sol.Result.Strategy),
		sol.Result.Status.String(),
		assignment,
		sol.Result.Objective,
		sol.Result.Message,
		sol.SolvedAt,
	)
	if err != nil {
		return fmt.Errorf("save solution problem_id=%d: %w", sol.ProblemID, err)
	}

	return nil
}

// GetSolution returns the stored solution of a problem in one direction.
func (s *SQLProblemRepository) GetSolution(
	ctx context.Context,
	problemID int64,
	dir domain.Direction,
) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "problems.GetSolution")(&err)

	if s.DB == nil {
		return nil, errors.New("sql problem repository: DB is nil")
	}

	q := `
	SELECT
		strategy,
		status,
		assignment,
		objective,
		message,
		solved_at
	FROM solutions
	WHERE problem_id = $1 AND direction = $2;
	`

	var (
		strategy, status, message string
		assignment                []byte
		sol                       = domain.Solution{ProblemID: problemID}
	)
	err = s.DB.QueryRowContext(ctx, q, problemID, dir.String()).
		Scan(&strategy, &status, &assignment, &sol.Result.Objective, &message, &sol.SolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get solution %d/%s: %w", problemID, dir, ports.ErrProblemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get solution %d/%s: %w", problemID, dir, err)
	}

	sol.Result.Direction = dir
	sol.Result.Message = message
	if sol.Result.Strategy, err = domain.ParseStrategy(strategy); err != nil {
		return nil, fmt.Errorf("get solution %d/%s: %w", problemID, dir, err)
	}
	if sol.Result.Status, err = domain.ParseSolveStatus(status); err != nil {
		return nil, fmt.Errorf("get solution %d/%s: %w", problemID, dir, err)
	}
	if len(assignment) > 0 && string(assignment) != "null" {
		var a []int
		if err := json.Unmarshal(assignment, &a); err != nil {
			return nil, fmt.Errorf("get solution %d/%s: decode assignment: %w", problemID, dir, err)
		}
		sol.Result.Assignment = domain.Assignment(a)
	}

	return &sol, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProblem(row rowScanner) (*domain.Problem, error) {
	var (
		p                     domain.Problem
		people, rooms, scores []byte
	)
	if err := row.Scan(&p.ProblemID, &p.Name, &people, &rooms, &scores, &p.CreatedAt); err != nil {
		return nil, err
	}

	m, err := decodeMatrix(people, rooms, scores)
	if err != nil {
		return nil, fmt.Errorf("problem_id=%d: %w", p.ProblemID, err)
	}
	p.Matrix = m

	return &p, nil
}

func encodeMatrix(m *domain.ScoreMatrix) (people, rooms, scores string, err error) {
	pb, err := json.Marshal(m.PeopleNames())
	if err != nil {
		return "", "", "", fmt.Errorf("encode people: %w", err)
	}
	rb, err := json.Marshal(m.RoomNames())
	if err != nil {
		return "", "", "", fmt.Errorf("encode rooms: %w", err)
	}
	sb, err := json.Marshal(m.Scores())
	if err != nil {
		return "", "", "", fmt.Errorf("encode scores: %w", err)
	}
	return string(pb), string(rb), string(sb), nil
}

func decodeMatrix(people, rooms, scores []byte) (*domain.ScoreMatrix, error) {
	var (
		p, r []string
		s    [][]int64
	)
	if err := json.Unmarshal(people, &p); err != nil {
		return nil, fmt.Errorf("decode people: %w", err)
	}
	if err := json.Unmarshal(rooms, &r); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	if err := json.Unmarshal(scores, &s); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}

	m, err := domain.NewScoreMatrix(p, r, s)
	if err != nil {
		return nil, fmt.Errorf("decode matrix: %w", err)
	}
	return m, nil
}
