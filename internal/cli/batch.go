package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/importer"
	"github.com/piwi3910/LoadCalc/internal/model"
)

// batchRow is the outcome of one imported job.
type batchRow struct {
	Job      importer.Job
	Result   model.LayoutResult
	Shipment model.ShipmentEstimate
	Err      error
}

// runBatch computes every job in order. It stops between jobs when ctx is
// cancelled and returns the rows computed so far with ctx.Err().
func runBatch(ctx context.Context, calc *engine.Calculator, jobs []importer.Job) ([]batchRow, error) {
	rows := make([]batchRow, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return rows, err
		}
		row := batchRow{Job: job}
		row.Result, row.Err = calc.Compute(job.Container, job.Box, job.Pattern, job.AllowRotation)
		if row.Err == nil && job.Cartons > 0 {
			row.Shipment = model.EstimateShipment(row.Result, job.Cartons)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// batchCommand creates the "batch" command.
func (c *CLI) batchCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Compute layouts for every row of a CSV or Excel file",
		Long: `Compute layouts for every row of a CSV or Excel file.

The file needs box length, width and height columns. Container size comes from
container length/width/height columns, a container preset column, or the
configured default. Optional columns: label, pattern, rotation, quantity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := cmd.OutOrStdout()

			imported := importer.ImportFile(args[0], importer.DefaultsFromConfig(c.config, &c.presets))
			for _, w := range imported.Warnings {
				printWarning(out, "%s", w)
			}
			for _, e := range imported.Errors {
				printError(out, "%s", e)
			}
			if len(imported.Jobs) == 0 {
				return fmt.Errorf("no jobs imported from %s", args[0])
			}
			logger.Info("imported jobs", "file", args[0], "jobs", len(imported.Jobs), "errors", len(imported.Errors))

			prog := newProgress(logger)
			rows, err := runBatch(ctx, c.calculator(), imported.Jobs)
			if err != nil {
				logger.Warn("batch interrupted", "done", len(rows), "total", len(imported.Jobs))
				return err
			}
			prog.done(fmt.Sprintf("Computed %d jobs", len(rows)))

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			failed := 0
			table := make([][]string, 0, len(rows))
			for i, r := range rows {
				label := r.Job.Label
				if label == "" {
					label = "job " + strconv.Itoa(i+1)
				}
				if r.Err != nil {
					failed++
					table = append(table, []string{label, formatDims(r.Job.Container), formatDims(r.Job.Box), "-", "-", "-", r.Err.Error()})
					continue
				}
				containers := "-"
				if r.Job.Cartons > 0 {
					containers = strconv.Itoa(r.Shipment.ContainersNeeded)
				}
				table = append(table, []string{
					label,
					formatDims(r.Job.Container),
					formatDims(r.Job.Box),
					strconv.Itoa(r.Result.TotalBoxCount),
					fmt.Sprintf("%.1f%%", r.Result.EfficiencyRounded()),
					containers,
					"",
				})

				if outDir != "" && r.Result.Fits() {
					path := filepath.Join(outDir, fmt.Sprintf("%02d-%s.pdf", i+1, r.Result.ID))
					if err := exportResult("pdf", path, r.Result); err != nil {
						return err
					}
					logger.Debug("wrote plan", "path", path)
				}
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Job", "Container", "Box", "Boxes", "Efficiency", "Containers", "Error"},
				table,
				nil,
			))
			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "write a PDF loading plan per job into this directory")
	return cmd
}
