package framework

import "errors"

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
// All objectives follow the maximization convention: larger is better.
type ObjectiveSpacePoint []float64

// Individual is one candidate solution as the selection engine sees it:
// its objective vector plus the selection-derived fields callers may
// inspect after a selection round. Domination bookkeeping (counts and
// dominated-index lists) is rebuilt from scratch inside each ranking run
// and never lives on the Individual.
type Individual struct {
	Objectives ObjectiveSpacePoint

	// Rank is the 1-based front number assigned by non-dominated sorting;
	// 0 means the individual has not been ranked yet.
	Rank int

	// Distance is the crowding distance within the individual's front,
	// possibly +Inf for boundary points. Only meaningful for comparisons
	// between individuals of the same rank.
	Distance float64
}

// NewIndividual creates an Individual from its objective scores with all
// derived fields at their defaults.
func NewIndividual(objectives []float64) *Individual {
	return &Individual{
		Objectives: objectives,
	}
}

// Sentinel errors for input validation and defensive invariant checks.
// Callers can dispatch on them with errors.Is.
var (
	ErrEmptyPopulation    = errors.New("population is empty")
	ErrObjectiveMismatch  = errors.New("objective vector lengths differ across population")
	ErrInvalidTargetSize  = errors.New("target size out of range")
	ErrInvariantViolation = errors.New("internal invariant violation")
)

// ObjectiveFunc maps a decision vector to one objective score
// (maximization convention).
type ObjectiveFunc func([]float64) float64

// Bounds is the inclusive range of one decision variable.
type Bounds struct {
	L float64
	H float64
}

// Problem describes the contract a benchmark problem implements. The engine
// itself never evaluates objectives; problems exist so that tests and the
// benchmark suite can produce realistic populations for selection.
type Problem interface {
	Name() string

	ObjectiveFuncs() []ObjectiveFunc
	Bounds() []Bounds
	Initialize(int) [][]float64

	// TrueParetoFront is optional due to the difficulty of finding the true
	// front in some types of problems. When there isn't a way to find the
	// true front, just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}

// Evaluate maps a decision vector through all of the problem's objective
// functions, producing its objective space point.
func Evaluate(p Problem, vars []float64) ObjectiveSpacePoint {
	objFuncs := p.ObjectiveFuncs()
	point := make(ObjectiveSpacePoint, len(objFuncs))
	for i, objFunc := range objFuncs {
		point[i] = objFunc(vars)
	}
	return point
}
