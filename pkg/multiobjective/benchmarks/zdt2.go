package benchmarks

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/framework"
)

// ZDT2 has a non-convex Pareto front, negated into maximization form like
// ZDT1.
type ZDT2 struct {
	numVars int
}

func NewZDT2(numVars int) *ZDT2 {
	return &ZDT2{numVars: numVars}
}

func (p *ZDT2) Name() string {
	return "ZDT2"
}

func (p *ZDT2) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT2) f1(x []float64) float64 {
	return -x[0]
}

func (p *ZDT2) f2(x []float64) float64 {
	g := 1.0
	for i := 1; i < len(x); i++ {
		g += 9.0 * x[i] / float64(len(x)-1)
	}
	// Note: ZDT2 uses (1 - (x1/g)^2) instead of sqrt
	return -g * (1.0 - math.Pow(x[0]/g, 2))
}

func (p *ZDT2) Bounds() []framework.Bounds {
	b := make([]framework.Bounds, p.numVars)
	for i := range p.numVars {
		b[i] = framework.Bounds{L: 0.0, H: 1.0}
	}
	return b
}

func (p *ZDT2) Initialize(popSize int) [][]float64 {
	population := make([][]float64, popSize)
	b := p.Bounds()
	for i := 0; i < popSize; i++ {
		vars := make([]float64, p.numVars)
		for j := 0; j < p.numVars; j++ {
			vars[j] = b[j].L + rand.Float64()*(b[j].H-b[j].L)
		}
		population[i] = vars
	}
	return population
}

func (p *ZDT2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	xs := floats.Span(make([]float64, numPoints), 0, 1)
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i, x := range xs {
		points[i] = framework.ObjectiveSpacePoint{
			-x, -(1.0 - x*x),
		}
	}
	return points
}
