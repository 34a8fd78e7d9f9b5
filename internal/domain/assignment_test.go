package domain

import (
	"errors"
	"testing"
)

func TestAssignmentValidate(t *testing.T) {
	tests := []struct {
		name    string
		a       Assignment
		n       int
		wantErr bool
	}{
		{name: "empty", a: Assignment{}, n: 0},
		{name: "identity", a: Assignment{0, 1, 2}, n: 3},
		{name: "permutation", a: Assignment{2, 0, 1}, n: 3},
		{name: "short", a: Assignment{0, 1}, n: 3, wantErr: true},
		{name: "shared room", a: Assignment{0, 0, 1}, n: 3, wantErr: true},
		{name: "out of range", a: Assignment{0, 3, 1}, n: 3, wantErr: true},
		{name: "negative", a: Assignment{-1}, n: 1, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.a.Validate(tc.n)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"":         Minimize,
		"min":      Minimize,
		"Minimize": Minimize,
		"MAX":      Maximize,
		"maximize": Maximize,
	} {
		got, err := ParseDirection(in)
		if err != nil {
			t.Fatalf("ParseDirection(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseDirection(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("ParseDirection(sideways) err = %v, want ErrConfiguration", err)
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy(""); err != nil || s != StrategyHungarian {
		t.Errorf("ParseStrategy(\"\") = %v, %v", s, err)
	}
	if s, err := ParseStrategy("LP"); err != nil || s != StrategyLP {
		t.Errorf("ParseStrategy(LP) = %v, %v", s, err)
	}
	if _, err := ParseStrategy("annealing"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("ParseStrategy(annealing) err = %v, want ErrConfiguration", err)
	}
}

func TestSolveStatusRoundTrip(t *testing.T) {
	for _, st := range []SolveStatus{StatusNotSolved, StatusOptimal, StatusInfeasible, StatusUnbounded, StatusError} {
		got, err := ParseSolveStatus(st.String())
		if err != nil || got != st {
			t.Errorf("ParseSolveStatus(%q) = %v, %v", st.String(), got, err)
		}
	}
}

func TestResultErr(t *testing.T) {
	if err := (Result{Status: StatusOptimal}).Err(); err != nil {
		t.Fatalf("optimal result returned error %v", err)
	}
	if err := (Result{Status: StatusInfeasible}).Err(); !errors.Is(err, ErrInfeasible) {
		t.Errorf("infeasible err = %v", err)
	}
	if err := (Result{Status: StatusUnbounded}).Err(); !errors.Is(err, ErrUnbounded) {
		t.Errorf("unbounded err = %v", err)
	}
	if err := (Result{Status: StatusError}).Err(); !errors.Is(err, ErrSolve) {
		t.Errorf("error err = %v", err)
	}
}
