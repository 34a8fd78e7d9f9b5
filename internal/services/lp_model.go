package services

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"room-matching-service/internal/domain"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// LPConstraint is one equality row of the assignment program: the listed
// variables (all with coefficient 1) must sum to RHS.
type LPConstraint struct {
	Name string
	Vars []int
	RHS  float64
}

// LPModel is the generic 0/1 formulation of the assignment problem:
// n² variables x_ij ∈ {0,1}, objective Σ score[i][j]·x_ij, one "exactly one
// person" row per room and one "exactly one room" row per person.
//
// Variable index i*n+j is x_ij. The model is built once per solve and
// discarded with it.
type LPModel struct {
	Name        string
	Direction   domain.Direction
	n           int
	varNames    []string
	objective   []float64
	constraints []LPConstraint
}

// BuildLPModel formulates m in the given direction.
func BuildLPModel(m *domain.ScoreMatrix, dir domain.Direction) *LPModel {
	n := m.Size()
	model := &LPModel{
		Name:        "Room Matching",
		Direction:   dir,
		n:           n,
		varNames:    make([]string, n*n),
		objective:   make([]float64, n*n),
		constraints: make([]LPConstraint, 0, 2*n),
	}

	used := make(map[string]struct{}, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			name := lpName(m.Person(i).Name) + "_" + lpName(m.Room(j).Name)
			// Sanitizing can merge distinct labels; indices keep names unique.
			if _, ok := used[name]; ok {
				name = fmt.Sprintf("%s_%d_%d", name, i, j)
			}
			used[name] = struct{}{}

			k := model.Variable(i, j)
			model.varNames[k] = name
			model.objective[k] = float64(m.Score(i, j))
		}
	}

	for j := 0; j < n; j++ {
		vars := make([]int, n)
		for i := 0; i < n; i++ {
			vars[i] = model.Variable(i, j)
		}
		model.constraints = append(model.constraints, LPConstraint{
			Name: "1_person_per_room_" + lpName(m.Room(j).Name),
			Vars: vars,
			RHS:  1,
		})
	}

	for i := 0; i < n; i++ {
		vars := make([]int, n)
		for j := 0; j < n; j++ {
			vars[j] = model.Variable(i, j)
		}
		model.constraints = append(model.constraints, LPConstraint{
			Name: "1_room_per_person_" + lpName(m.Person(i).Name),
			Vars: vars,
			RHS:  1,
		})
	}

	return model
}

// Variable returns the column index of x_ij.
func (lp *LPModel) Variable(i, j int) int { return i*lp.n + j }

func (lp *LPModel) NumVariables() int { return len(lp.varNames) }

func (lp *LPModel) Constraints() []LPConstraint { return lp.constraints }

func (lp *LPModel) VariableName(k int) string { return lp.varNames[k] }

// standardForm returns min cᵀx s.t. Ax = b, x ≥ 0 for the simplex backend.
//
// The room and person rows both sum to n, so one row is linearly dependent
// on the others. The last room row is dropped to give A full row rank;
// x ≤ 1 follows from the remaining equalities and needs no explicit row.
func (lp *LPModel) standardForm() (c []float64, A *mat.Dense, b []float64) {
	c = make([]float64, len(lp.objective))
	for k, coef := range lp.objective {
		if lp.Direction == domain.Maximize {
			coef = -coef
		}
		c[k] = coef
	}

	rows := make([]LPConstraint, 0, len(lp.constraints))
	for idx, con := range lp.constraints {
		if idx == lp.n-1 {
			continue
		}
		rows = append(rows, con)
	}

	A = mat.NewDense(len(rows), lp.NumVariables(), nil)
	b = make([]float64, len(rows))
	for r, con := range rows {
		for _, k := range con.Vars {
			A.Set(r, k, 1)
		}
		b[r] = con.RHS
	}

	return c, A, b
}

// decodeAssignment reads the permutation off an integral vertex.
func (lp *LPModel) decodeAssignment(x []float64) (domain.Assignment, error) {
	if len(x) != lp.NumVariables() {
		return nil, fmt.Errorf("decode assignment: got %d values, want %d", len(x), lp.NumVariables())
	}

	a := make(domain.Assignment, lp.n)
	for i := 0; i < lp.n; i++ {
		a[i] = -1
		for j := 0; j < lp.n; j++ {
			v := x[lp.Variable(i, j)]
			if math.Abs(v-math.Round(v)) > integralityTolerance {
				return nil, fmt.Errorf("decode assignment: %s = %g is not integral", lp.varNames[lp.Variable(i, j)], v)
			}
			if math.Round(v) == 1 {
				if a[i] != -1 {
					return nil, fmt.Errorf("decode assignment: person %d holds more than one room", i)
				}
				a[i] = j
			}
		}
	}

	if err := a.Validate(lp.n); err != nil {
		return nil, fmt.Errorf("decode assignment: %w", err)
	}
	return a, nil
}

// WriteLP writes the model in CPLEX LP text format.
func (lp *LPModel) WriteLP(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\\* %s *\\\n", lp.Name)
	if lp.Direction == domain.Maximize {
		bw.WriteString("Maximize\n")
	} else {
		bw.WriteString("Minimize\n")
	}

	terms := make([]string, 0, len(lp.objective))
	for k, coef := range lp.objective {
		terms = append(terms, lpTerm(coef, lp.varNames[k], len(terms) == 0))
	}
	if len(terms) == 0 {
		terms = append(terms, "0")
	}
	fmt.Fprintf(bw, "OBJ: %s\n", strings.Join(terms, " "))

	bw.WriteString("Subject To\n")
	for _, con := range lp.constraints {
		names := make([]string, len(con.Vars))
		for idx, k := range con.Vars {
			names[idx] = lp.varNames[k]
		}
		fmt.Fprintf(bw, "%s: %s = %s\n", con.Name, strings.Join(names, " + "), formatCoef(con.RHS))
	}

	bw.WriteString("Bounds\n")
	for _, name := range lp.varNames {
		fmt.Fprintf(bw, " 0 <= %s <= 1\n", name)
	}

	bw.WriteString("Binaries\n")
	for _, name := range lp.varNames {
		fmt.Fprintf(bw, "%s\n", name)
	}
	bw.WriteString("End\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write lp model: %w", err)
	}
	return nil
}

var lpUnsafe = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// lpName maps a label onto the identifier alphabet LP readers accept.
func lpName(s string) string {
	name := lpUnsafe.ReplaceAllString(strings.TrimSpace(s), "_")
	if name == "" {
		return "_"
	}
	return name
}

func lpTerm(coef float64, name string, first bool) string {
	switch {
	case coef < 0:
		return "- " + formatCoef(-coef) + " " + name
	case first:
		return formatCoef(coef) + " " + name
	default:
		return "+ " + formatCoef(coef) + " " + name
	}
}

func formatCoef(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
