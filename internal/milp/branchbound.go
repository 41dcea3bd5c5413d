package milp

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// BranchBound is a depth-first branch-and-bound solver. Node relaxations are
// solved with gonum's simplex; integrality is restored by branching on the
// most fractional integer variable. Among equal-objective optima the first
// one reached in branch order wins, which is deterministic for a fixed model
// but not otherwise specified.
type BranchBound struct {
	logger *zap.Logger
	// IntTol is the distance from a whole number below which a relaxed
	// value counts as integral.
	IntTol float64
	// SimplexTol is passed through to lp.Simplex; zero selects gonum's
	// default.
	SimplexTol float64
	// MaxNodes caps the search; exhaustion is reported like a timeout.
	MaxNodes int
}

// NewBranchBound constructs a solver with standard tolerances.
func NewBranchBound(logger *zap.Logger) *BranchBound {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchBound{
		logger:   logger,
		IntTol:   1e-6,
		MaxNodes: 200000,
	}
}

type node struct {
	lower []float64
	upper []float64
	depth int
}

// clone returns a child node with copied bounds, one level deeper.
func (n node) clone() node {
	lower := make([]float64, len(n.lower))
	copy(lower, n.lower)
	upper := make([]float64, len(n.upper))
	copy(upper, n.upper)
	return node{lower: lower, upper: upper, depth: n.depth + 1}
}

// Solve runs branch and bound until optimality, infeasibility, or expiry of
// the context deadline. The returned solution always carries a terminal
// status; an error is returned only for malformed models or unexpected
// simplex failures.
func (b *BranchBound) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n := m.NumVars()
	root := node{lower: make([]float64, n), upper: make([]float64, n)}
	for i := 0; i < n; i++ {
		v := m.VarAt(VarID(i))
		root.lower[i] = v.Lower
		root.upper[i] = v.Upper
	}

	var incumbent []float64
	incumbentObj := math.Inf(-1)
	nodesSolved := 0
	nodeFailures := 0
	stack := []node{root}
	rootInfeasible := false

	for len(stack) > 0 {
		if ctx.Err() != nil || nodesSolved >= b.MaxNodes {
			return b.interrupted(m, incumbent, incumbentObj, nodesSolved), nil
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		values, obj, err := b.relax(m, current)
		nodesSolved++
		if err != nil {
			if errors.Is(err, lp.ErrInfeasible) {
				if current.depth == 0 {
					rootInfeasible = true
				}
				continue
			}
			// A simplex failure proves nothing about the subtree.
			// Prune it and degrade the result; any incumbent found
			// elsewhere is still feasible.
			nodeFailures++
			b.logger.Warn("pruning node after simplex failure",
				zap.String("op", "milp.BranchBound.Solve"),
				zap.String("model", m.Name),
				zap.Int("depth", current.depth),
				zap.Error(err),
			)
			continue
		}

		// The relaxation objective is an upper bound for the subtree.
		if obj <= incumbentObj+1e-9 && incumbent != nil {
			continue
		}

		branchVar, ok := b.mostFractional(m, values)
		if !ok {
			// Integral assignment; snap and record.
			candidate := b.snap(m, values)
			if obj > incumbentObj {
				incumbent = candidate
				incumbentObj = obj
			}
			continue
		}

		value := values[branchVar]
		floorNode := current.clone()
		floorNode.upper[branchVar] = math.Floor(value)
		ceilNode := current.clone()
		ceilNode.lower[branchVar] = math.Ceil(value)

		// Depth-first: push the less likely child first so the child
		// nearest the relaxed value is explored next.
		if value-math.Floor(value) >= 0.5 {
			stack = append(stack, floorNode, ceilNode)
		} else {
			stack = append(stack, ceilNode, floorNode)
		}
	}

	if incumbent == nil {
		if nodeFailures > 0 {
			b.logger.Error("search exhausted with simplex failures and no feasible solution",
				zap.String("op", "milp.BranchBound.Solve"),
				zap.String("model", m.Name),
				zap.Int("nodes", nodesSolved),
				zap.Int("failures", nodeFailures),
			)
			return &Solution{Status: StatusError}, nil
		}
		if rootInfeasible || nodesSolved > 0 {
			b.logger.Debug("model proven infeasible",
				zap.String("op", "milp.BranchBound.Solve"),
				zap.String("model", m.Name),
				zap.Int("nodes", nodesSolved),
			)
			return &Solution{Status: StatusInfeasible}, nil
		}
		return &Solution{Status: StatusError}, nil
	}

	if nodeFailures > 0 {
		// Some subtrees were lost to simplex failures, so the incumbent
		// cannot be certified optimal.
		b.logger.Warn("returning incumbent without optimality proof",
			zap.String("op", "milp.BranchBound.Solve"),
			zap.String("model", m.Name),
			zap.Int("nodes", nodesSolved),
			zap.Int("failures", nodeFailures),
			zap.Float64("objective", incumbentObj),
		)
		return &Solution{Status: StatusTimeoutFeasible, Objective: incumbentObj, values: incumbent}, nil
	}

	b.logger.Debug("solved to optimality",
		zap.String("op", "milp.BranchBound.Solve"),
		zap.String("model", m.Name),
		zap.Int("nodes", nodesSolved),
		zap.Float64("objective", incumbentObj),
	)
	return &Solution{Status: StatusOptimal, Objective: incumbentObj, values: incumbent}, nil
}

func (b *BranchBound) interrupted(m *Model, incumbent []float64, incumbentObj float64, nodes int) *Solution {
	if incumbent != nil {
		b.logger.Warn("search interrupted with feasible incumbent",
			zap.String("op", "milp.BranchBound.Solve"),
			zap.String("model", m.Name),
			zap.Int("nodes", nodes),
			zap.Float64("objective", incumbentObj),
		)
		return &Solution{Status: StatusTimeoutFeasible, Objective: incumbentObj, values: incumbent}
	}
	b.logger.Warn("search interrupted before any feasible solution",
		zap.String("op", "milp.BranchBound.Solve"),
		zap.String("model", m.Name),
		zap.Int("nodes", nodes),
	)
	return &Solution{Status: StatusTimeoutNoSolution}
}

// relax solves the LP relaxation of the model under the node's bounds.
// The standard form is built directly: each variable is shifted by its
// lower bound so nonnegativity coincides with the node box, each
// inequality row gets a slack column, each variable's range gets its own
// slack row, and equalities pass through unchanged. Simplex requires full
// row rank, so the model must not carry linearly dependent equality rows.
func (b *BranchBound) relax(m *Model, nd node) ([]float64, float64, error) {
	n := m.NumVars()
	for i := 0; i < n; i++ {
		if nd.lower[i] > nd.upper[i] {
			// Branching produced an empty box.
			return nil, 0, lp.ErrInfeasible
		}
	}

	type row struct {
		c   Constraint
		rhs float64
	}
	kept := make([]row, 0, m.NumConstraints())
	ineq := 0
	for i := 0; i < m.NumConstraints(); i++ {
		c := m.ConstraintAt(i)
		r := c.RHS
		for _, t := range c.Terms {
			r -= t.Coef * nd.lower[t.Var]
		}
		if len(c.Terms) == 0 {
			// A term-less row is a plain feasibility check.
			switch {
			case c.Sense == LessEq && r < 0,
				c.Sense == GreaterEq && r > 0,
				c.Sense == Equal && r != 0:
				return nil, 0, lp.ErrInfeasible
			}
			continue
		}
		if c.Sense != Equal {
			ineq++
		}
		kept = append(kept, row{c: c, rhs: r})
	}

	rows := len(kept) + n
	cols := n + ineq + n
	if rows > cols {
		// More equality rows than variables cannot be full rank.
		return nil, 0, lp.ErrSingular
	}

	a := mat.NewDense(rows, cols, nil)
	rhs := make([]float64, rows)
	slack := n
	for i, k := range kept {
		for _, t := range k.c.Terms {
			a.Set(i, int(t.Var), a.At(i, int(t.Var))+t.Coef)
		}
		switch k.c.Sense {
		case LessEq:
			a.Set(i, slack, 1)
			slack++
		case GreaterEq:
			a.Set(i, slack, -1)
			slack++
		}
		rhs[i] = k.rhs
	}
	for i := 0; i < n; i++ {
		r := len(kept) + i
		a.Set(r, i, 1)
		a.Set(r, slack, 1)
		slack++
		rhs[r] = nd.upper[i] - nd.lower[i]
	}

	// Maximize becomes minimize of the negated objective.
	cost := make([]float64, cols)
	for i := 0; i < n; i++ {
		cost[i] = -m.ObjectiveCoef(VarID(i))
	}

	_, xStd, err := lp.Simplex(cost, a, rhs, b.SimplexTol, nil)
	if err != nil {
		return nil, 0, err
	}

	values := make([]float64, n)
	obj := 0.0
	for i := 0; i < n; i++ {
		values[i] = xStd[i] + nd.lower[i]
		obj += m.ObjectiveCoef(VarID(i)) * values[i]
	}
	return values, obj, nil
}

// mostFractional picks the integer-typed variable whose relaxed value is
// farthest from a whole number. Returns false when the assignment is
// already integral within tolerance.
func (b *BranchBound) mostFractional(m *Model, values []float64) (VarID, bool) {
	best := VarID(-1)
	bestDist := b.IntTol
	for i := range values {
		if m.VarAt(VarID(i)).Type == Continuous {
			continue
		}
		dist := math.Abs(values[i] - math.Round(values[i]))
		if dist > bestDist {
			best = VarID(i)
			bestDist = dist
		}
	}
	return best, best >= 0
}

// snap rounds integral-typed values onto whole numbers, clearing simplex
// noise before the assignment is stored.
func (b *BranchBound) snap(m *Model, values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	for i := range out {
		if m.VarAt(VarID(i)).Type != Continuous {
			out[i] = math.Round(out[i])
		}
	}
	return out
}
