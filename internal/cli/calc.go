package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/piwi3910/LoadCalc/internal/server"
)

// calcCommand creates the "calc" command.
func (c *CLI) calcCommand() *cobra.Command {
	var (
		f       layoutFlags
		cartons int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute how many cartons fit in a container",
		Example: `  loadcalc calc --container 1158x228x252 --box 60x40x30
  loadcalc calc --preset 40hc --box 60x40x30 --rotate --cartons 2000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.compute(cmd, f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				payload := struct {
					server.Summary
					Shipment *model.ShipmentEstimate `json:"shipment,omitempty"`
				}{Summary: server.NewSummary(result)}
				if cartons > 0 {
					est := model.EstimateShipment(result, cartons)
					payload.Shipment = &est
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			printSummary(out, result)
			if cartons > 0 {
				printShipment(out, model.EstimateShipment(result, cartons))
			}
			return nil
		},
	}

	addLayoutFlags(cmd, &f)
	cmd.Flags().IntVar(&cartons, "cartons", 0, "number of cartons ordered, to estimate containers needed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(w io.Writer, r model.LayoutResult) {
	fmt.Fprintln(w, styleTitle.Render("Loading plan "+r.ID))
	printField(w, "Container", formatDims(r.Container)+" cm")
	printField(w, "Container volume", fmt.Sprintf("%.2f m³", r.Container.VolumeCubicMeters()))
	printField(w, "Box", formatDims(r.Box)+" cm")
	if !r.Fits() {
		printWarning(w, "The box does not fit in the container")
		return
	}
	printField(w, "Orientation", fmt.Sprintf("%s (%s cm)", r.Orientation, formatDims(r.OrientedBox())))
	printField(w, "Fit", formatFit(r.FitCounts))
	printField(w, "Total boxes", r.TotalBoxCount)
	printField(w, "Layers", r.TotalLayers())
	printField(w, "Efficiency", fmt.Sprintf("%.1f%%", r.EfficiencyRounded()))
	printField(w, "Used volume", fmt.Sprintf("%.2f m³", r.UsedVolume()/1_000_000))
	printField(w, "Remaining", fmt.Sprintf("%.1f%%", model.RoundTo(r.WastePercent(), 1)))
	cl := r.Clearance()
	printDetail(w, "clearance %gx%gx%g cm", model.RoundTo(cl.Length, 2), model.RoundTo(cl.Width, 2), model.RoundTo(cl.Height, 2))
}

func printShipment(w io.Writer, est model.ShipmentEstimate) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleTitle.Render("Shipment"))
	printField(w, "Cartons ordered", est.CartonsOrdered)
	if est.ContainersNeeded == 0 {
		printWarning(w, "No containers can carry this carton")
		return
	}
	printField(w, "Containers needed", est.ContainersNeeded)
	printField(w, "In last container", fmt.Sprintf("%d (%.1f%%)", est.CartonsInLast, est.LastContainerPercent))
	printField(w, "Total volume", fmt.Sprintf("%.2f m³", est.TotalVolumeM3))
}

// layersCommand creates the "layers" command.
func (c *CLI) layersCommand() *cobra.Command {
	var (
		f     layoutFlags
		layer int
	)

	cmd := &cobra.Command{
		Use:   "layers",
		Short: "List the loading layers of a layout",
		Long:  `List every loading layer bottom first. With --layer, list the boxes of that layer and their positions.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.compute(cmd, f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			layers := engine.Layers(result)

			if layer > 0 {
				l, ok := engine.FindLayer(layers, layer)
				if !ok {
					return fmt.Errorf("layer %d does not exist (layout has %d layers)", layer, len(layers))
				}
				rows := make([][]string, 0, len(l.Boxes))
				for _, b := range l.Boxes {
					rows = append(rows, []string{
						strconv.Itoa(b.Index + 1),
						fmtCm(b.Position.X),
						fmtCm(b.Position.Y),
						fmtCm(b.Position.Z),
					})
				}
				fmt.Fprintln(out, styleTitle.Render(fmt.Sprintf("Layer %d: %d boxes", l.Number, l.Count)))
				fmt.Fprintln(out, renderTable([]string{"Box", "X (cm)", "Y (cm)", "Z (cm)"}, rows, nil))
				return nil
			}

			if len(layers) == 0 {
				printWarning(out, "No boxes fit, so there are no layers")
				return nil
			}
			rows := make([][]string, 0, len(layers))
			for _, l := range server.SummarizeLayers(result) {
				rows = append(rows, []string{
					strconv.Itoa(l.Layer),
					strconv.Itoa(l.Count),
					fmtCm(l.Bottom),
					fmtCm(l.Top),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Layer", "Boxes", "From (cm)", "To (cm)"}, rows, nil))
			return nil
		},
	}

	addLayoutFlags(cmd, &f)
	cmd.Flags().IntVarP(&layer, "layer", "l", 0, "show the boxes of one layer (1 = floor)")
	return cmd
}

// orientationsCommand creates the "orientations" command.
func (c *CLI) orientationsCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "orientations",
		Short: "Compare every orientation of the carton",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.resolve(cmd, f)
			if err != nil {
				return err
			}
			options, err := engine.CompareOrientations(in.Container, in.Box, in.Pattern)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(options))
			for _, o := range options {
				rows = append(rows, []string{
					o.Orientation.String(),
					formatDims(o.Box),
					formatFit(o.FitCounts),
					strconv.Itoa(o.TotalBoxCount),
					fmt.Sprintf("%.1f%%", model.RoundTo(o.EfficiencyPercent, 1)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Orientation", "Box (cm)", "Fit", "Boxes", "Efficiency"},
				rows,
				func(row int) bool { return row >= 0 && row < len(options) && options[row].Selected },
			))
			return nil
		},
	}

	addLayoutFlags(cmd, &f)
	return cmd
}

// compareCommand creates the "compare" command.
func (c *CLI) compareCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the carton across all container presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.resolve(cmd, f)
			if err != nil {
				return err
			}
			comparisons, err := c.calculator().CompareContainers(c.presets.All(), in.Box, in.Pattern, in.Rotate)
			if err != nil {
				return err
			}
			best, ok := engine.BestContainer(comparisons)

			rows := make([][]string, 0, len(comparisons))
			for _, cmp := range comparisons {
				rows = append(rows, []string{
					cmp.Preset.Name,
					formatDims(cmp.Preset.Inner),
					strconv.Itoa(cmp.Result.TotalBoxCount),
					fmt.Sprintf("%.1f%%", cmp.Result.EfficiencyRounded()),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Container", "Inner (cm)", "Boxes", "Efficiency"},
				rows,
				func(row int) bool {
					return ok && row >= 0 && row < len(comparisons) && comparisons[row].Preset.ID == best.Preset.ID
				},
			))
			if ok {
				printSuccess(out, "Best fit: %s", best.Preset.Name)
			} else {
				printWarning(out, "The box does not fit in any container")
			}
			return nil
		},
	}

	addLayoutFlags(cmd, &f)
	return cmd
}

func fmtCm(v float64) string {
	return strconv.FormatFloat(model.RoundTo(v, 2), 'f', -1, 64)
}
