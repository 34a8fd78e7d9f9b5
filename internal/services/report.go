package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"room-matching-service/internal/domain"
	"strconv"
)

// ReportRow is one person's line in a Report.
type ReportRow struct {
	Person string
	Room   string
	Score  int64
}

// Report is the derived, read-only view of a solved problem.
type Report struct {
	Status    domain.SolveStatus
	Direction domain.Direction
	Strategy  domain.Strategy
	Rows      []ReportRow
	Total     int64
	Average   float64
	Message   string
}

// BuildReport pairs each person with their room and score, and computes the
// total and average (0 for an empty problem). A non-optimal result yields a
// report with no rows.
func BuildReport(m *domain.ScoreMatrix, r domain.Result) (Report, error) {
	rep := Report{
		Status:    r.Status,
		Direction: r.Direction,
		Strategy:  r.Strategy,
		Message:   r.Message,
	}

	if r.Status != domain.StatusOptimal {
		return rep, nil
	}

	n := m.Size()
	if err := r.Assignment.Validate(n); err != nil {
		return Report{}, fmt.Errorf("build report: %w", err)
	}

	rep.Rows = make([]ReportRow, 0, n)
	for i, j := range r.Assignment {
		rep.Rows = append(rep.Rows, ReportRow{
			Person: m.Person(i).Name,
			Room:   m.Room(j).Name,
			Score:  m.Score(i, j),
		})
	}

	rep.Total = m.Objective(r.Assignment)
	if rep.Total != r.Objective {
		return Report{}, errors.New("build report: result objective does not match the matrix")
	}
	if n > 0 {
		rep.Average = float64(rep.Total) / float64(n)
	}

	return rep, nil
}

// WriteText prints the report in the plain layout of the command-line tool:
//
//	Status: Optimal
//	A -> X (1)
//	Average ranking = 1
func (rep Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Status: %s\n", rep.Status)
	if rep.Status != domain.StatusOptimal {
		if rep.Message != "" {
			fmt.Fprintf(bw, "Reason: %s\n", rep.Message)
		}
		return bw.Flush()
	}

	for _, row := range rep.Rows {
		fmt.Fprintf(bw, "%s -> %s (%d)\n", row.Person, row.Room, row.Score)
	}
	fmt.Fprintf(bw, "Total = %d\n", rep.Total)
	fmt.Fprintf(bw, "Average ranking = %s\n", strconv.FormatFloat(rep.Average, 'f', -1, 64))

	return bw.Flush()
}
