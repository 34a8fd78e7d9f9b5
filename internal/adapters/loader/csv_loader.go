package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"room-matching-service/internal/domain"
	"room-matching-service/internal/platform/obs"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVMatrixLoader reads a ranking table from a file on disk.
//
// Layout: row 0 lists rooms after an ignored corner cell, column 0 lists
// people, and the remaining n×n cells are integer scores.
//
//	,X,Y
//	A,1,2
//	B,2,1
type CSVMatrixLoader struct {
	// Comma defaults to ','.
	Comma rune
}

func NewCSVMatrixLoader() *CSVMatrixLoader {
	return &CSVMatrixLoader{Comma: ','}
}

// Load opens path and parses it with ParseCSV.
// A missing or unreadable file is a configuration error.
func (l *CSVMatrixLoader) Load(ctx context.Context, path string) (_ *domain.ScoreMatrix, err error) {
	defer obs.Time(ctx, "loader.csv.Load")(&err)

	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.ConfigurationError{
			Op:     "load score matrix",
			Reason: fmt.Sprintf("open %q", path),
			Err:    err,
		}
	}
	defer f.Close()

	m, err := ParseCSV(f, l.Comma)
	if err != nil {
		return nil, fmt.Errorf("load score matrix %q: %w", path, err)
	}

	return m, nil
}

// ParseCSV parses a ranking table from r. A leading UTF-8 byte order mark
// (common in spreadsheet exports) is stripped. A table with only the header
// corner cell yields an empty matrix.
func ParseCSV(r io.Reader, comma rune) (*domain.ScoreMatrix, error) {
	const op = "parse csv"

	if comma == 0 {
		comma = ','
	}

	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(dec)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &domain.ConfigurationError{
				Op:     op,
				Reason: fmt.Sprintf("malformed csv at line %d", pe.Line),
				Err:    err,
			}
		}
		return nil, &domain.ConfigurationError{Op: op, Reason: "read input", Err: err}
	}

	if len(records) == 0 {
		return nil, domain.NewConfigurationError(op, "input is empty: expected a header row of rooms")
	}

	header := records[0]
	rooms := make([]string, 0, len(header)-1)
	for _, cell := range header[1:] {
		rooms = append(rooms, strings.TrimSpace(cell))
	}

	people := make([]string, 0, len(records)-1)
	scores := make([][]int64, 0, len(records)-1)
	for ri, rec := range records[1:] {
		line := ri + 2
		if len(rec) != len(header) {
			return nil, domain.NewConfigurationError(op, "line %d has %d cells, want %d", line, len(rec), len(header))
		}

		people = append(people, strings.TrimSpace(rec[0]))

		row := make([]int64, 0, len(rec)-1)
		for ci, cell := range rec[1:] {
			v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
			if err != nil {
				return nil, &domain.ConfigurationError{
					Op:     op,
					Reason: fmt.Sprintf("line %d column %d: %q is not an integer", line, ci+2, cell),
					Err:    err,
				}
			}
			row = append(row, v)
		}
		scores = append(scores, row)
	}

	m, err := domain.NewScoreMatrix(people, rooms, scores)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}
