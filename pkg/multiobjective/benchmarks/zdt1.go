package benchmarks

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/framework"
)

// ZDT1 has a convex Pareto front. The classic formulation minimizes; here
// both objectives are negated so that the maximizing engine sees the same
// front mirrored into the negative quadrant.
type ZDT1 struct {
	numVars int
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{numVars: numVars}
}

func (p *ZDT1) Name() string {
	return "ZDT1"
}

func (p *ZDT1) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT1) f1(x []float64) float64 {
	return -x[0]
}

func (p *ZDT1) f2(x []float64) float64 {
	g := 1.0
	for i := 1; i < len(x); i++ {
		g += 9.0 * x[i] / float64(len(x)-1)
	}
	return -g * (1.0 - math.Sqrt(x[0]/g))
}

func (p *ZDT1) Bounds() []framework.Bounds {
	b := make([]framework.Bounds, p.numVars)
	for i := range p.numVars {
		b[i] = framework.Bounds{L: 0.0, H: 1.0}
	}
	return b
}

func (p *ZDT1) Initialize(popSize int) [][]float64 {
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

func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	xs := floats.Span(make([]float64, numPoints), 0, 1)
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i, x := range xs {
		points[i] = framework.ObjectiveSpacePoint{
			-x, -(1.0 - math.Sqrt(x)),
		}
	}
	return points
}
