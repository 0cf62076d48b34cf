package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/Cauch-BS/VaxPress/pkg/multiobjective/framework"
)

// PlotFront renders a scatter plot of the selected front, optionally
// against a known true Pareto front, into an HTML file. Only 2-D objective
// spaces can be plotted.
func PlotFront(selected, trueFront []framework.ObjectiveSpacePoint, title, outputPath string) error {
	if len(selected) == 0 {
		return fmt.Errorf("no points to plot for %s", title)
	}

	if len(selected[0]) != 2 {
		return fmt.Errorf("can only plot 2D objective spaces, %s has %d objectives", title, len(selected[0]))
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Selected front for %s", title),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "f1(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "f2(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	if len(trueFront) > 0 {
		trueX := make([]opts.ScatterData, len(trueFront))
		for i, p := range trueFront {
			trueX[i] = opts.ScatterData{
				Value:      p,
				Symbol:     "circle",
				SymbolSize: 3,
			}
		}
		scatter.AddSeries("True Pareto Front", trueX)
	}

	foundX := make([]opts.ScatterData, len(selected))
	for i, p := range selected {
		foundX[i] = opts.ScatterData{
			Value:      []float64{p[0], p[1]},
			Symbol:     "triangle",
			SymbolSize: 8,
		}
	}

	scatter.AddSeries("Selected Front", foundX).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}
