package milp

import (
	"context"
	"math"
	"testing"
)

func TestBranchBoundKnapsack(t *testing.T) {
	// Classic 0/1 knapsack whose LP relaxation is fractional, forcing at
	// least one branch: values 10/6/4, weights 5/4/3, capacity 8.
	m := NewModel("knapsack")
	x1 := m.AddBinary("x1")
	x2 := m.AddBinary("x2")
	x3 := m.AddBinary("x3")
	m.AddObjective(x1, 10)
	m.AddObjective(x2, 6)
	m.AddObjective(x3, 4)
	m.AddConstraint("capacity", LessEq, 8, T(x1, 5), T(x2, 4), T(x3, 3))

	sol, err := NewBranchBound(nil).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %s, want optimal", sol.Status)
	}
	if math.Abs(sol.Objective-14) > 1e-6 {
		t.Errorf("objective = %v, want 14", sol.Objective)
	}
	if !sol.IsOne(x1) || sol.IsOne(x2) || !sol.IsOne(x3) {
		t.Errorf("assignment = (%v, %v, %v), want (1, 0, 1)",
			sol.Value(x1), sol.Value(x2), sol.Value(x3))
	}
}

func TestBranchBoundEquality(t *testing.T) {
	m := NewModel("pick-one")
	x := m.AddBinary("x")
	y := m.AddBinary("y")
	m.AddObjective(x, 3)
	m.AddObjective(y, 2)
	m.AddConstraint("exactly_one", Equal, 1, T(x, 1), T(y, 1))

	sol, err := NewBranchBound(nil).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %s, want optimal", sol.Status)
	}
	if math.Abs(sol.Objective-3) > 1e-6 {
		t.Errorf("objective = %v, want 3", sol.Objective)
	}
	if !sol.IsOne(x) || sol.IsOne(y) {
		t.Errorf("assignment = (%v, %v), want (1, 0)", sol.Value(x), sol.Value(y))
	}
}

func TestBranchBoundIntegerVariable(t *testing.T) {
	m := NewModel("rounding-down")
	h := m.AddInteger("h", 0, 3)
	m.AddObjective(h, 3)
	m.AddConstraint("cap", LessEq, 2.5, T(h, 1))

	sol, err := NewBranchBound(nil).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %s, want optimal", sol.Status)
	}
	if got := sol.Value(h); math.Abs(got-2) > 1e-6 {
		t.Errorf("h = %v, want 2", got)
	}
}

func TestBranchBoundMixedSenses(t *testing.T) {
	// Equalities, a covering row, and a knapsack row together, so the
	// relaxation carries equality rows next to slack columns.
	m := NewModel("mixed")
	x := m.AddBinary("x")
	y := m.AddBinary("y")
	z := m.AddBinary("z")
	m.AddObjective(x, 5)
	m.AddObjective(y, 4)
	m.AddObjective(z, 3)
	m.AddConstraint("pair", Equal, 1, T(x, 1), T(y, 1))
	m.AddConstraint("cover", GreaterEq, 1, T(y, 1), T(z, 1))
	m.AddConstraint("weight", LessEq, 6, T(x, 4), T(y, 3), T(z, 2))

	sol, err := NewBranchBound(nil).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %s, want optimal", sol.Status)
	}
	// x=1 forces y=0, so z must cover: 5+3. The alternative y+z gives 7.
	if math.Abs(sol.Objective-8) > 1e-6 {
		t.Errorf("objective = %v, want 8", sol.Objective)
	}
	if !sol.IsOne(x) || sol.IsOne(y) || !sol.IsOne(z) {
		t.Errorf("assignment = (%v, %v, %v), want (1, 0, 1)",
			sol.Value(x), sol.Value(y), sol.Value(z))
	}
}

func TestBranchBoundDependentEqualityRows(t *testing.T) {
	// Duplicated equality rows leave the relaxation without full row
	// rank. The solver must report a terminal error status, not abort.
	m := NewModel("dependent")
	x := m.AddBinary("x")
	m.AddObjective(x, 1)
	m.AddConstraint("pick", Equal, 1, T(x, 1))
	m.AddConstraint("pick_again", Equal, 1, T(x, 1))

	sol, err := NewBranchBound(nil).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusError {
		t.Errorf("status = %s, want error", sol.Status)
	}
}

func TestBranchBoundInfeasible(t *testing.T) {
	m := NewModel("impossible")
	x := m.AddBinary("x")
	m.AddObjective(x, 1)
	m.AddConstraint("too_big", GreaterEq, 2, T(x, 1))

	sol, err := NewBranchBound(nil).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusInfeasible {
		t.Errorf("status = %s, want infeasible", sol.Status)
	}
	if sol.HasAssignment() {
		t.Error("infeasible solution carries an assignment")
	}
}

func TestBranchBoundCancelledContext(t *testing.T) {
	m := NewModel("cancelled")
	x := m.AddBinary("x")
	m.AddObjective(x, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sol, err := NewBranchBound(nil).Solve(ctx, m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusTimeoutNoSolution {
		t.Errorf("status = %s, want timeout-no-solution", sol.Status)
	}
}

func TestBranchBoundRespectsMaxNodes(t *testing.T) {
	m := NewModel("node-capped")
	x := m.AddBinary("x")
	y := m.AddBinary("y")
	m.AddObjective(x, 1)
	m.AddObjective(y, 1)

	solver := NewBranchBound(nil)
	solver.MaxNodes = 0

	sol, err := solver.Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if sol.Status != StatusTimeoutNoSolution {
		t.Errorf("status = %s, want timeout-no-solution", sol.Status)
	}
}

func TestBranchBoundInvalidModel(t *testing.T) {
	m := NewModel("broken")
	m.AddInteger("x", 2, 1)

	if _, err := NewBranchBound(nil).Solve(context.Background(), m); err == nil {
		t.Error("expected error for invalid model")
	}
}
