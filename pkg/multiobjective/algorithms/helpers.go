package algorithms

import (
	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/framework"
)

// GetParetoFront extracts the objective points of the first non-dominated
// front of the population.
func GetParetoFront(population []*framework.Individual) ([]framework.ObjectiveSpacePoint, error) {
	fronts, err := NonDominatedSort(population)
	if err != nil {
		return nil, err
	}

	paretoFront := make([]framework.ObjectiveSpacePoint, len(fronts[0]))
	for i, idx := range fronts[0] {
		paretoFront[i] = population[idx].Objectives
	}
	return paretoFront, nil
}
