package domain

import (
	"strings"
)

// MaxAbsScore bounds every score so that sums over any permutation and the
// solver's potentials stay well inside int64.
const MaxAbsScore int64 = 1_000_000_000_000

// ScoreMatrix holds the n×n preference table: Score(i, j) is the score person i
// gives room j. It is immutable once built; accessors never expose internal slices.
type ScoreMatrix struct {
	people []Person
	rooms  []Room
	scores [][]int64
}

// NewScoreMatrix validates and copies the loader output into a ScoreMatrix.
//
// An empty problem (no people, no rooms, no scores) is valid and solves to an
// empty assignment.
func NewScoreMatrix(people, rooms []string, scores [][]int64) (*ScoreMatrix, error) {
	const op = "new score matrix"

	if len(people) != len(rooms) {
		return nil, NewConfigurationError(
			op,
			"unbalanced assignment: person/room count mismatch (people=%d rooms=%d)",
			len(people), len(rooms),
		)
	}

	n := len(people)
	if len(scores) != n {
		return nil, NewConfigurationError(op, "score matrix has %d rows, want %d", len(scores), n)
	}

	m := &ScoreMatrix{
		people: make([]Person, n),
		rooms:  make([]Room, n),
		scores: make([][]int64, n),
	}

	seenPeople := make(map[string]struct{}, n)
	for i, name := range people {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, NewConfigurationError(op, "person at row %d has an empty name", i+1)
		}
		if _, ok := seenPeople[name]; ok {
			return nil, NewConfigurationError(op, "duplicate person %q", name)
		}
		seenPeople[name] = struct{}{}
		m.people[i] = Person{Index: i, Name: name}
	}

	seenRooms := make(map[string]struct{}, n)
	for j, name := range rooms {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, NewConfigurationError(op, "room at column %d has an empty name", j+1)
		}
		if _, ok := seenRooms[name]; ok {
			return nil, NewConfigurationError(op, "duplicate room %q", name)
		}
		seenRooms[name] = struct{}{}
		m.rooms[j] = Room{Index: j, Name: name}
	}

	for i, row := range scores {
		if len(row) != n {
			return nil, NewConfigurationError(op, "row %d has %d scores, want %d (matrix must be square)", i+1, len(row), n)
		}
		for j, s := range row {
			if s > MaxAbsScore || s < -MaxAbsScore {
				return nil, NewConfigurationError(op, "score at (%d,%d) = %d exceeds ±%d", i+1, j+1, s, MaxAbsScore)
			}
		}
		m.scores[i] = append([]int64(nil), row...)
	}

	return m, nil
}

// Size returns n, the number of people (and rooms).
func (m *ScoreMatrix) Size() int { return len(m.people) }

// Score returns the score person i assigns to room j.
func (m *ScoreMatrix) Score(i, j int) int64 { return m.scores[i][j] }

func (m *ScoreMatrix) Person(i int) Person { return m.people[i] }

func (m *ScoreMatrix) Room(j int) Room { return m.rooms[j] }

// PeopleNames returns a copy of the row labels in order.
func (m *ScoreMatrix) PeopleNames() []string {
	out := make([]string, len(m.people))
	for i, p := range m.people {
		out[i] = p.Name
	}
	return out
}

// RoomNames returns a copy of the column labels in order.
func (m *ScoreMatrix) RoomNames() []string {
	out := make([]string, len(m.rooms))
	for j, r := range m.rooms {
		out[j] = r.Name
	}
	return out
}

// Scores returns a deep copy of the score grid.
func (m *ScoreMatrix) Scores() [][]int64 {
	out := make([][]int64, len(m.scores))
	for i, row := range m.scores {
		out[i] = append([]int64(nil), row...)
	}
	return out
}

// Objective sums the chosen score for every person under a.
// The caller is expected to have validated a against Size().
func (m *ScoreMatrix) Objective(a Assignment) int64 {
	var total int64
	for i, j := range a {
		total += m.scores[i][j]
	}
	return total
}
