// Package milp provides a small mixed-integer linear programming layer: a
// model representation, a solver capability interface, and a branch-and-bound
// solver backed by gonum's simplex implementation. The transfer engine builds
// against the interface so it can be tested with a stub solver returning
// canned assignments.
package milp

import (
	"context"
	"fmt"
	"math"

	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/constants"
)

// VarType classifies a decision variable.
type VarType int

const (
	// Continuous variables may take any value inside their bounds.
	Continuous VarType = iota
	// Binary variables are integers bounded to {0, 1}.
	Binary
	// Integer variables take whole values inside their bounds.
	Integer
)

// VarID identifies a variable within one model.
type VarID int

// Var is a single decision variable.
type Var struct {
	Name  string
	Type  VarType
	Lower float64
	Upper float64
}

// Term is one coefficient-variable pair of a linear expression.
type Term struct {
	Var  VarID
	Coef float64
}

// T builds a Term; it keeps constraint construction readable.
func T(v VarID, coef float64) Term {
	return Term{Var: v, Coef: coef}
}

// Sense is the comparison direction of a constraint.
type Sense int

const (
	LessEq Sense = iota
	GreaterEq
	Equal
)

// Constraint is a named linear constraint: sum(terms) sense rhs.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a mixed-integer linear program with a maximize objective.
// Models are built fresh per solve and never shared between goroutines.
type Model struct {
	Name        string
	vars        []Var
	constraints []Constraint
	objective   map[VarID]float64
}

// NewModel creates an empty maximize model.
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		objective: make(map[VarID]float64),
	}
}

// AddBinary adds a {0,1} variable and returns its ID.
func (m *Model) AddBinary(name string) VarID {
	return m.addVar(Var{Name: name, Type: Binary, Lower: 0, Upper: 1})
}

// AddInteger adds a bounded integer variable and returns its ID.
func (m *Model) AddInteger(name string, lower, upper float64) VarID {
	return m.addVar(Var{Name: name, Type: Integer, Lower: lower, Upper: upper})
}

// AddContinuous adds a bounded continuous variable and returns its ID.
func (m *Model) AddContinuous(name string, lower, upper float64) VarID {
	return m.addVar(Var{Name: name, Type: Continuous, Lower: lower, Upper: upper})
}

func (m *Model) addVar(v Var) VarID {
	m.vars = append(m.vars, v)
	return VarID(len(m.vars) - 1)
}

// SetUpper overrides the upper bound of an existing variable. The builder
// uses this to force ineligible transfer-in variables to zero.
func (m *Model) SetUpper(v VarID, upper float64) {
	m.vars[v].Upper = upper
}

// AddObjective accumulates a coefficient onto the maximize objective.
// Repeated calls for the same variable add up.
func (m *Model) AddObjective(v VarID, coef float64) {
	m.objective[v] += coef
}

// AddConstraint appends a named linear constraint.
func (m *Model) AddConstraint(name string, sense Sense, rhs float64, terms ...Term) {
	m.constraints = append(m.constraints, Constraint{
		Name:  name,
		Terms: terms,
		Sense: sense,
		RHS:   rhs,
	})
}

// NumVars returns the variable count.
func (m *Model) NumVars() int {
	return len(m.vars)
}

// VarAt returns the variable definition for an ID.
func (m *Model) VarAt(v VarID) Var {
	return m.vars[v]
}

// NumConstraints returns the constraint count.
func (m *Model) NumConstraints() int {
	return len(m.constraints)
}

// ConstraintAt returns the i-th constraint.
func (m *Model) ConstraintAt(i int) Constraint {
	return m.constraints[i]
}

// ObjectiveCoef returns the objective coefficient of a variable (0 if unset).
func (m *Model) ObjectiveCoef(v VarID) float64 {
	return m.objective[v]
}

// Validate checks the model is well formed before solving.
func (m *Model) Validate() error {
	if len(m.vars) == 0 {
		return fmt.Errorf("model %s has no variables", m.Name)
	}
	for i, v := range m.vars {
		if v.Lower > v.Upper {
			return fmt.Errorf("model %s: variable %s has lower bound %g above upper bound %g", m.Name, v.Name, v.Lower, v.Upper)
		}
		if math.IsInf(v.Lower, 0) || math.IsInf(v.Upper, 0) {
			return fmt.Errorf("model %s: variable %s must have finite bounds", m.Name, m.vars[i].Name)
		}
	}
	for _, c := range m.constraints {
		for _, t := range c.Terms {
			if int(t.Var) < 0 || int(t.Var) >= len(m.vars) {
				return fmt.Errorf("model %s: constraint %s references unknown variable %d", m.Name, c.Name, t.Var)
			}
		}
	}
	return nil
}

// Status is the terminal state of a solve attempt.
type Status int

const (
	// StatusOptimal means a proven-optimal integral assignment was found.
	StatusOptimal Status = iota
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
	// StatusTimeoutFeasible means the time budget expired with a feasible
	// incumbent that may not be optimal.
	StatusTimeoutFeasible
	// StatusTimeoutNoSolution means the time budget expired before any
	// feasible assignment was found.
	StatusTimeoutNoSolution
	// StatusError means the solve failed for a reason other than
	// infeasibility or time.
	StatusError
)

// String returns a short status label.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeoutFeasible:
		return "timeout-feasible"
	case StatusTimeoutNoSolution:
		return "timeout-no-solution"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Solution carries the terminal status and, when one exists, the assignment.
type Solution struct {
	Status    Status
	Objective float64
	values    []float64
}

// NewSolution builds a solution from raw values; primarily for stub solvers
// in tests.
func NewSolution(status Status, objective float64, values []float64) *Solution {
	return &Solution{Status: status, Objective: objective, values: values}
}

// HasAssignment reports whether the solution carries variable values.
func (s *Solution) HasAssignment() bool {
	return s != nil && len(s.values) > 0
}

// Value returns the solved value of a variable.
func (s *Solution) Value(v VarID) float64 {
	return s.values[v]
}

// IsOne reports whether a solved binary variable rounds to one. The
// threshold absorbs solver numeric slack around integral values.
func (s *Solution) IsOne(v VarID) bool {
	return s.values[v] > constants.BinaryThreshold
}

// Solver is the injected capability that turns a model into an assignment.
// Implementations must respect ctx cancellation as their time budget.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}
