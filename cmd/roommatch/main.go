// Command roommatch assigns people to rooms from a CSV rankings table and
// prints the optimal matching.
//
//	roommatch [-direction min|max] [-strategy hungarian|lp] [-lp out.lp] [-json] [rankings.csv]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"room-matching-service/internal/adapters/loader"
	"room-matching-service/internal/config"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/ports"
	"room-matching-service/internal/services"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, loader.NewCSVMatrixLoader()))
}

type jsonRow struct {
	Person string `json:"person"`
	Room   string `json:"room"`
	Score  int64  `json:"score"`
}

type jsonReport struct {
	Status      string    `json:"status"`
	Direction   string    `json:"direction"`
	Strategy    string    `json:"strategy"`
	Assignments []jsonRow `json:"assignments"`
	Total       int64     `json:"total"`
	Average     float64   `json:"average"`
	Message     string    `json:"message,omitempty"`
}

// run executes the command and returns the process exit code: 0 for an
// optimal solve, 1 for bad input or a non-optimal status, 2 for usage errors.
// A .env file in the working directory may supply ROOMMATCH_INPUT.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, src ports.MatrixLoader) int {
	fs := flag.NewFlagSet("roommatch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	direction := fs.String("direction", "min", "optimization direction: min (rankings) or max (happiness)")
	strategy := fs.String("strategy", string(domain.StrategyHungarian), "solver: hungarian or lp")
	lpPath := fs.String("lp", "", "write the LP formulation to this file")
	asJSON := fs.Bool("json", false, "print the result as JSON")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "roommatch: at most one input file")
		return 2
	}

	if _, err := config.LoadDotEnv(); err != nil {
		return fail(stderr, err)
	}

	path := config.Get("ROOMMATCH_INPUT", "rankings.csv")
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}

	dir, err := domain.ParseDirection(*direction)
	if err != nil {
		return fail(stderr, err)
	}
	strat, err := domain.ParseStrategy(*strategy)
	if err != nil {
		return fail(stderr, err)
	}

	m, err := src.Load(ctx, path)
	if err != nil {
		return fail(stderr, err)
	}

	if *lpPath != "" {
		if err := writeLPFile(*lpPath, services.BuildLPModel(m, dir)); err != nil {
			return fail(stderr, err)
		}
	}

	solver, err := services.NewSolver(strat)
	if err != nil {
		return fail(stderr, err)
	}

	res, err := solver.Solve(ctx, m, dir)
	if err != nil {
		return fail(stderr, err)
	}

	rep, err := services.BuildReport(m, res)
	if err != nil {
		return fail(stderr, err)
	}

	if *asJSON {
		err = writeJSONReport(stdout, rep)
	} else {
		err = rep.WriteText(stdout)
	}
	if err != nil {
		return fail(stderr, err)
	}

	if res.Status != domain.StatusOptimal {
		return 1
	}
	return 0
}

func fail(stderr io.Writer, err error) int {
	if errors.Is(err, domain.ErrConfiguration) {
		fmt.Fprintf(stderr, "roommatch: invalid input: %v\n", err)
	} else {
		fmt.Fprintf(stderr, "roommatch: %v\n", err)
	}
	return 1
}

func writeLPFile(path string, model *services.LPModel) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write lp: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write lp: close %s: %w", path, cerr)
		}
	}()

	if err := model.WriteLP(f); err != nil {
		return fmt.Errorf("write lp %s: %w", path, err)
	}
	return nil
}

func writeJSONReport(w io.Writer, rep services.Report) error {
	out := jsonReport{
		Status:      rep.Status.String(),
		Direction:   rep.Direction.String(),
		Strategy:    string(rep.Strategy),
		Assignments: make([]jsonRow, 0, len(rep.Rows)),
		Total:       rep.Total,
		Average:     rep.Average,
		Message:     rep.Message,
	}
	for _, row := range rep.Rows {
		out.Assignments = append(out.Assignments, jsonRow(row))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
