package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
)

// RenderLayerChart writes an HTML bar chart of the box count in each layer.
func RenderLayerChart(w io.Writer, result model.LayoutResult) error {
	layers := engine.Layers(result)

	labels := make([]string, 0, len(layers))
	items := make([]opts.BarData, 0, len(layers))
	for _, l := range layers {
		labels = append(labels, fmt.Sprintf("Layer %d", l.Number))
		items = append(items, opts.BarData{
			Name:      fmt.Sprintf("Layer %d", l.Number),
			Value:     l.Count,
			ItemStyle: &opts.ItemStyle{Color: firstColor(l.Boxes).Hex()},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Boxes per layer"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Boxes per layer",
			Subtitle: fmt.Sprintf("%d boxes, %.1f%% efficiency",
				result.TotalBoxCount, result.EfficiencyRounded()),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Layer"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Boxes"}),
	)
	bar.SetXAxis(labels).AddSeries("Boxes", items)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render layer chart: %w", err)
	}
	return nil
}

// RenderOrientationChart writes an HTML bar chart comparing the box count of
// each orientation, best first.
func RenderOrientationChart(w io.Writer, options []engine.OrientationOption) error {
	if len(options) == 0 {
		return fmt.Errorf("no orientations to chart")
	}

	labels := make([]string, 0, len(options))
	counts := make([]opts.BarData, 0, len(options))
	for _, o := range options {
		labels = append(labels, o.Orientation.String())
		col := model.DefaultPalette[1]
		if o.Selected {
			col = model.DefaultPalette[4]
		}
		counts = append(counts, opts.BarData{
			Name:      o.Orientation.String(),
			Value:     o.TotalBoxCount,
			ItemStyle: &opts.ItemStyle{Color: col.Hex()},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Orientation comparison"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Boxes per orientation",
			Subtitle: fmt.Sprintf("Best: %s with %d boxes", options[0].Orientation, options[0].TotalBoxCount),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Orientation"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Boxes"}),
	)
	bar.SetXAxis(labels).AddSeries("Boxes", counts)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render orientation chart: %w", err)
	}
	return nil
}
