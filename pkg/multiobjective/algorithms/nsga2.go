package algorithms

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/framework"
)

const (
	Name = "NSGA-II"
)

// Config holds the selection engine options.
type Config struct {
	// ParallelExecution runs the O(M*N^2) pairwise dominance pass on a
	// worker pool. Each worker writes only its own outer-index row, so the
	// result is identical to the sequential pass.
	ParallelExecution bool
}

// Selector implements the NSGA-II environmental selection step: given a
// population scored on several objectives, it keeps an exact-size subset
// biased toward non-dominated solutions and, within equal rank, toward
// solutions that are spread out in objective space.
type Selector struct {
	parallel bool
}

func NewSelector(config Config) *Selector {
	return &Selector{
		parallel: config.ParallelExecution,
	}
}

// Select runs one environmental selection round over the population and
// returns exactly targetSize survivors. Survivors keep the Rank and
// Distance computed during the round for caller diagnostics.
func Select(population []*framework.Individual, targetSize int) ([]*framework.Individual, error) {
	return NewSelector(Config{}).Select(population, targetSize)
}

func (s *Selector) Select(population []*framework.Individual, targetSize int) ([]*framework.Individual, error) {
	if err := validatePopulation(population); err != nil {
		return nil, err
	}
	if targetSize <= 0 || targetSize > len(population) {
		return nil, fmt.Errorf("target size %d not in [1, %d]: %w",
			targetSize, len(population), framework.ErrInvalidTargetSize)
	}

	fronts, err := s.sortPopulation(population)
	if err != nil {
		return nil, err
	}

	next := make([]*framework.Individual, 0, targetSize)
	frontIndex := 0

	// Include complete fronts while they fit.
	for frontIndex < len(fronts) && len(next)+len(fronts[frontIndex]) <= targetSize {
		if err := CrowdingDistance(population, fronts[frontIndex]); err != nil {
			return nil, err
		}
		for _, idx := range fronts[frontIndex] {
			next = append(next, population[idx])
		}
		frontIndex++
	}

	// Truncate the boundary front by crowding distance.
	if len(next) < targetSize {
		if frontIndex >= len(fronts) {
			return nil, fmt.Errorf("fronts exhausted with %d of %d selected: %w",
				len(next), targetSize, framework.ErrInvariantViolation)
		}
		boundary := fronts[frontIndex]
		if err := CrowdingDistance(population, boundary); err != nil {
			return nil, err
		}
		ordered := append([]int(nil), boundary...)
		// Stable sort keeps the original index order for equal
		// (rank, distance) pairs, so truncation is reproducible.
		sort.SliceStable(ordered, func(i, j int) bool {
			return Prefer(population[ordered[i]], population[ordered[j]])
		})
		for _, idx := range ordered[:targetSize-len(next)] {
			next = append(next, population[idx])
		}
	}

	klog.V(4).InfoS("Environmental selection complete",
		"algorithm", Name, "population", len(population), "fronts", len(fronts),
		"survivors", len(next), "completeFronts", frontIndex)
	return next, nil
}

// Dominates checks if individual a dominates individual b. Objectives follow
// the maximization convention: a dominates b when it is at least as good on
// every objective and strictly better on at least one.
func Dominates(a, b *framework.Individual) bool {
	better := false
	for i := 0; i < len(a.Objectives); i++ {
		if a.Objectives[i] < b.Objectives[i] {
			return false
		}
		if a.Objectives[i] > b.Objectives[i] {
			better = true
		}
	}
	return better
}

// NonDominatedSort partitions the population into non-domination fronts.
// Each front is a slice of population indices; front k holds the
// individuals of rank k+1. Every individual lands in exactly one front.
func NonDominatedSort(population []*framework.Individual) ([][]int, error) {
	return NewSelector(Config{}).sortPopulation(population)
}

func (s *Selector) sortPopulation(population []*framework.Individual) ([][]int, error) {
	if err := validatePopulation(population); err != nil {
		return nil, err
	}

	// Rank and distance are re-derived from scratch each run.
	for _, ind := range population {
		ind.Rank = 0
		ind.Distance = 0
	}

	// Domination bookkeeping is scratch state, rebuilt per call: counts of
	// dominating individuals and adjacency lists of dominated indices.
	dominated := make([][]int, len(population))
	domCount := make([]int, len(population))

	if s.parallel {
		numWorkers := runtime.NumCPU()
		workChan := make(chan int, len(population))
		wg := &sync.WaitGroup{}

		for w := 0; w < numWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range workChan {
					dominated[i], domCount[i] = dominationRow(population, i)
				}
			}()
		}

		for i := range population {
			workChan <- i
		}
		close(workChan)
		wg.Wait()
	} else {
		for i := range population {
			dominated[i], domCount[i] = dominationRow(population, i)
		}
	}

	// First front: individuals dominated by nobody.
	var fronts [][]int
	currentFront := []int{}
	for i := range population {
		if domCount[i] == 0 {
			population[i].Rank = 1
			currentFront = append(currentFront, i)
		}
	}
	fronts = append(fronts, currentFront)

	// Peel subsequent fronts.
	frontIndex := 0
	for len(currentFront) > 0 {
		nextFront := []int{}
		for _, idx := range currentFront {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] < 0 {
					return nil, fmt.Errorf("domination count of individual %d went negative: %w",
						dominatedIdx, framework.ErrInvariantViolation)
				}
				if domCount[dominatedIdx] == 0 {
					population[dominatedIdx].Rank = frontIndex + 2
					nextFront = append(nextFront, dominatedIdx)
				}
			}
		}
		frontIndex++
		if len(nextFront) > 0 {
			fronts = append(fronts, nextFront)
		}
		currentFront = nextFront
	}

	return fronts, nil
}

// dominationRow computes one outer-loop row of the pairwise dominance pass:
// the indices individual i dominates and the number of individuals that
// dominate i. It only reads the population, which keeps the parallel pass
// race free.
func dominationRow(population []*framework.Individual, i int) ([]int, int) {
	var dominated []int
	count := 0
	for j := range population {
		if i == j {
			continue
		}
		if Dominates(population[i], population[j]) {
			dominated = append(dominated, j)
		} else if Dominates(population[j], population[i]) {
			count++
		}
	}
	return dominated, count
}

// CrowdingDistance computes the crowding distance for the members of one
// front, overwriting their Distance. Boundary members per objective get
// +Inf; interior members accumulate the normalized gap between their
// neighbors. An objective with zero range across the front contributes
// nothing. The front slice itself is left untouched.
func CrowdingDistance(population []*framework.Individual, front []int) error {
	if len(front) == 0 {
		return fmt.Errorf("crowding distance of an empty front: %w", framework.ErrInvariantViolation)
	}
	for _, idx := range front {
		if idx < 0 || idx >= len(population) {
			return fmt.Errorf("front index %d outside population of %d: %w",
				idx, len(population), framework.ErrInvariantViolation)
		}
	}

	if len(front) <= 2 {
		// Both boundaries coincide with the whole front.
		for _, idx := range front {
			population[idx].Distance = math.Inf(1)
		}
		return nil
	}

	for _, idx := range front {
		population[idx].Distance = 0
	}

	sorted := append([]int(nil), front...)
	numObjectives := len(population[front[0]].Objectives)
	for m := 0; m < numObjectives; m++ {
		// Sort by each objective
		sort.Slice(sorted, func(i, j int) bool {
			return population[sorted[i]].Objectives[m] < population[sorted[j]].Objectives[m]
		})

		// Set boundary points to infinity
		lo := population[sorted[0]]
		hi := population[sorted[len(sorted)-1]]
		lo.Distance = math.Inf(1)
		hi.Distance = math.Inf(1)

		objectiveRange := hi.Objectives[m] - lo.Objectives[m]
		if objectiveRange == 0 {
			continue
		}

		// Calculate distance for intermediate points
		for i := 1; i < len(sorted)-1; i++ {
			population[sorted[i]].Distance +=
				(population[sorted[i+1]].Objectives[m] - population[sorted[i-1]].Objectives[m]) / objectiveRange
		}
	}
	return nil
}

// Prefer reports whether a should survive ahead of b: lower rank first,
// then larger crowding distance within the same rank. Equal pairs are
// mutually non-preferred; callers needing a total order break the tie by
// original index.
func Prefer(a, b *framework.Individual) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Distance > b.Distance
}

// TournamentSelect picks one individual by running a tournament of the given
// size decided by Prefer. The population must already be ranked and crowded.
func TournamentSelect(population []*framework.Individual, tournamentSize int) *framework.Individual {
	if tournamentSize < 2 {
		tournamentSize = 2 // minimum tournament size
	}
	best := population[rand.Intn(len(population))]

	for i := 1; i < tournamentSize; i++ {
		contestant := population[rand.Intn(len(population))]
		if Prefer(contestant, best) {
			best = contestant
		}
	}

	return best
}

func validatePopulation(population []*framework.Individual) error {
	if len(population) == 0 {
		return framework.ErrEmptyPopulation
	}
	numObjectives := len(population[0].Objectives)
	if numObjectives == 0 {
		return fmt.Errorf("individual 0 has an empty objective vector: %w", framework.ErrObjectiveMismatch)
	}
	for i, ind := range population {
		if len(ind.Objectives) != numObjectives {
			return fmt.Errorf("individual %d has %d objectives, individual 0 has %d: %w",
				i, len(ind.Objectives), numObjectives, framework.ErrObjectiveMismatch)
		}
	}
	return nil
}
