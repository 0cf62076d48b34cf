package main

import (
	"encoding/json"
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/algorithms"
	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/framework"
	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/util"
)

type options struct {
	input     string
	survivors int
	plot      string
	parallel  bool
}

func newCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "nsga2",
		Short: "NSGA-II environmental selection over a scored population",
		Long: `Reads a JSON array of objective vectors (maximization convention,
one vector per candidate), runs NSGA-II non-dominated sorting and
crowding-distance selection, and prints the surviving candidates with
their rank and crowding distance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
		SilenceUsage: true,
	}

	o.addFlags(cmd.Flags())
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("survivors")

	klog.InitFlags(nil)
	cmd.Flags().AddGoFlagSet(goflag.CommandLine)

	return cmd
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.input, "input", "i", "", "path to JSON file holding an array of objective vectors")
	fs.IntVarP(&o.survivors, "survivors", "n", 0, "number of candidates to keep")
	fs.StringVar(&o.plot, "plot", "", "optional HTML file to plot the selected rank-1 front (2 objectives only)")
	fs.BoolVar(&o.parallel, "parallel", false, "run the pairwise dominance pass on all CPUs")
}

func run(o *options) error {
	data, err := os.ReadFile(o.input)
	if err != nil {
		return fmt.Errorf("reading population: %w", err)
	}

	var objectives [][]float64
	if err := json.Unmarshal(data, &objectives); err != nil {
		return fmt.Errorf("parsing population: %w", err)
	}

	population := make([]*framework.Individual, len(objectives))
	for i, objs := range objectives {
		population[i] = framework.NewIndividual(objs)
	}

	selector := algorithms.NewSelector(algorithms.Config{ParallelExecution: o.parallel})
	selected, err := selector.Select(population, o.survivors)
	if err != nil {
		return err
	}

	fmt.Printf("%-6s %-6s %-12s %s\n", "#", "rank", "distance", "objectives")
	for i, ind := range selected {
		fmt.Printf("%-6d %-6d %-12.6g %v\n", i, ind.Rank, ind.Distance, []float64(ind.Objectives))
	}

	if o.plot != "" {
		front, err := algorithms.GetParetoFront(selected)
		if err != nil {
			return err
		}
		if err := util.PlotFront(front, nil, "population", o.plot); err != nil {
			return fmt.Errorf("plotting selected front: %w", err)
		}
		klog.InfoS("Wrote front plot", "path", o.plot, "points", len(front))
	}

	return nil
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
