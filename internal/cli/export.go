package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/export"
	"github.com/piwi3910/LoadCalc/internal/model"
)

// exportFormats maps a --format value to its default file extension.
var exportFormats = map[string]string{
	"pdf":          ".pdf",
	"xlsx":         ".xlsx",
	"dxf":          ".dxf",
	"labels":       "-labels.pdf",
	"chart":        "-layers.html",
	"orientations": "-orientations.html",
}

// exportCommand creates the "export" command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		f      layoutFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a loading plan as PDF, Excel, DXF, carton labels or a chart",
		Example: `  loadcalc export --format pdf -o plan.pdf --preset 40rf --box 60x40x30
  loadcalc export --format labels --box 60x40x30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			ext, ok := exportFormats[format]
			if !ok {
				return fmt.Errorf("unsupported format %q (want pdf, xlsx, dxf, labels, chart or orientations)", format)
			}
			if output == "" {
				output = "loading-plan" + ext
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			if format == "orientations" {
				in, err := c.resolve(cmd, f)
				if err != nil {
					return err
				}
				options, err := engine.CompareOrientations(in.Container, in.Box, in.Pattern)
				if err != nil {
					return err
				}
				if err := writeFile(output, func(file *os.File) error {
					return export.RenderOrientationChart(file, options)
				}); err != nil {
					return err
				}
			} else {
				result, err := c.compute(cmd, f)
				if err != nil {
					return err
				}
				if err := exportResult(format, output, result); err != nil {
					return err
				}
			}
			prog.done("Exported " + format)
			printSuccess(cmd.OutOrStdout(), "Wrote %s", output)
			return nil
		},
	}

	addLayoutFlags(cmd, &f)
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "output format: pdf, xlsx, dxf, labels, chart, orientations")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default loading-plan.<ext>)")
	return cmd
}

// exportResult writes result to path in the given format.
func exportResult(format, path string, result model.LayoutResult) error {
	switch format {
	case "pdf":
		return export.ExportPDF(path, result)
	case "xlsx":
		return export.ExportXLSX(path, result)
	case "dxf":
		return export.ExportDXF(path, result)
	case "labels":
		return export.ExportLabels(path, result)
	case "chart":
		return writeFile(path, func(file *os.File) error {
			return export.RenderLayerChart(file, result)
		})
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
