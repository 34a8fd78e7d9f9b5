package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the problem and solution tables when missing.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createProblemsQuery := `
	CREATE TABLE IF NOT EXISTS problems (
		problem_id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		people JSONB NOT NULL,
		rooms JSONB NOT NULL,
		scores JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createSolutionsQuery := `
	CREATE TABLE IF NOT EXISTS solutions (
		problem_id BIGINT NOT NULL REFERENCES problems(problem_id) ON DELETE CASCADE,
		direction TEXT NOT NULL,
		strategy TEXT NOT NULL,
		status TEXT NOT NULL,
		assignment JSONB,
		objective BIGINT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		solved_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (problem_id, direction)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solutions_status
	ON solutions(status);
	`

	statements := []string{
		createProblemsQuery,
		createSolutionsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
