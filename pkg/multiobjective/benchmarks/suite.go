package benchmarks

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"

	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/algorithms"
	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/framework"
	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/util"
)

// Suite runs the environmental selection step over random populations of a
// set of benchmark problems. There is no evolution loop here; the suite
// measures how much a single selection round concentrates a random cloud
// toward each problem's Pareto front.
type Suite struct {
	problems  []framework.Problem
	popSize   int
	survivors int
	config    algorithms.Config
}

// NewSuite creates a benchmark suite that samples popSize random candidates
// per problem and keeps survivors of them.
func NewSuite(popSize, survivors int, config algorithms.Config) *Suite {
	return &Suite{
		popSize:   popSize,
		survivors: survivors,
		config:    config,
	}
}

// AddProblem adds a problem to the suite.
func (s *Suite) AddProblem(p framework.Problem) {
	s.problems = append(s.problems, p)
}

// AddStandardProblems adds common benchmark problems.
func (s *Suite) AddStandardProblems() {
	// ZDT problems with 30 variables (standard)
	s.AddProblem(NewZDT1(30))
	s.AddProblem(NewZDT2(30))

	// DTLZ2: 2 objectives with 12 variables, 3 objectives with 13
	// (M + k - 1, where k=10)
	s.AddProblem(NewDTLZ2(12, 2))
	s.AddProblem(NewDTLZ2(13, 3))
}

// Result summarizes one problem's selection round.
type Result struct {
	Problem       string
	Fronts        int
	ParetoSize    int
	IGD           float64
	SurvivorRanks []int
}

// Run executes the suite and, for 2-D problems, writes scatter plots of the
// surviving rank-1 front against the true front into outputDir.
func (s *Suite) Run(outputDir string) ([]Result, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	selector := algorithms.NewSelector(s.config)
	results := make([]Result, 0, len(s.problems))

	for _, problem := range s.problems {
		klog.InfoS("Running selection round", "problem", problem.Name(),
			"population", s.popSize, "survivors", s.survivors)

		population := SamplePopulation(problem, s.popSize)
		selected, err := selector.Select(population, s.survivors)
		if err != nil {
			return nil, fmt.Errorf("selection failed for %s: %w", problem.Name(), err)
		}

		paretoFront, err := algorithms.GetParetoFront(selected)
		if err != nil {
			return nil, err
		}

		res := Result{
			Problem:    problem.Name(),
			ParetoSize: len(paretoFront),
		}
		for _, ind := range selected {
			res.SurvivorRanks = append(res.SurvivorRanks, ind.Rank)
			if ind.Rank > res.Fronts {
				res.Fronts = ind.Rank
			}
		}

		trueFront := problem.TrueParetoFront(500)
		if trueFront != nil {
			res.IGD = invertedGenerationalDistance(paretoFront, trueFront)
			klog.InfoS("Selection round complete", "problem", problem.Name(),
				"paretoSize", res.ParetoSize, "deepestRank", res.Fronts, "igd", res.IGD)
		}

		if len(problem.ObjectiveFuncs()) == 2 {
			plotFile := filepath.Join(outputDir, fmt.Sprintf("%s_%s_selection.html", problem.Name(), algorithms.Name))
			if err := util.PlotFront(paretoFront, trueFront, problem.Name(), plotFile); err != nil {
				klog.ErrorS(err, "Failed to plot results", "problem", problem.Name())
			}
		}

		results = append(results, res)
	}

	return results, nil
}

// SamplePopulation draws popSize random decision vectors from the problem
// and evaluates them into Individuals ready for selection.
func SamplePopulation(p framework.Problem, popSize int) []*framework.Individual {
	vars := p.Initialize(popSize)
	population := make([]*framework.Individual, len(vars))
	for i, v := range vars {
		population[i] = framework.NewIndividual(framework.Evaluate(p, v))
	}
	return population
}

// invertedGenerationalDistance is the average distance from each true-front
// point to its nearest obtained point. Lower is better.
func invertedGenerationalDistance(obtained, trueFront []framework.ObjectiveSpacePoint) float64 {
	if len(obtained) == 0 || len(trueFront) == 0 {
		return math.NaN()
	}
	igd := 0.0
	for _, truePoint := range trueFront {
		minDist := math.Inf(1)
		for _, obtPoint := range obtained {
			dist := floats.Distance(truePoint, obtPoint, 2)
			if dist < minDist {
				minDist = dist
			}
		}
		igd += minDist
	}
	return igd / float64(len(trueFront))
}
