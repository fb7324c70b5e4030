package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadCalc/internal/model"
)

// layoutFlags are the inputs shared by every command that computes a layout.
type layoutFlags struct {
	container string
	preset    string
	box       string
	pattern   string
	rotate    bool
}

func addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.container, "container", "c", "", "container inner size as LxWxH in cm (default from config)")
	flags.StringVarP(&f.preset, "preset", "p", "", "container preset name or id, e.g. 40hc")
	flags.StringVarP(&f.box, "box", "b", "", "carton size as LxWxH in cm (default from config)")
	flags.StringVar(&f.pattern, "pattern", "", "layout pattern (default from config)")
	flags.BoolVarP(&f.rotate, "rotate", "r", false, "allow the carton to be rotated")
}

// layoutInput is a fully resolved calculation request.
type layoutInput struct {
	Container model.Dimensions
	Box       model.Dimensions
	Pattern   model.Pattern
	Rotate    bool
}

// resolve fills unset flags from the config. --container wins over --preset.
func (c *CLI) resolve(cmd *cobra.Command, f layoutFlags) (layoutInput, error) {
	in := layoutInput{
		Container: c.config.DefaultContainer,
		Box:       c.config.DefaultBox,
		Pattern:   c.config.DefaultPattern,
		Rotate:    c.config.DefaultAllowRotation,
	}

	switch {
	case f.container != "":
		d, err := parseDimensions(f.container)
		if err != nil {
			return layoutInput{}, fmt.Errorf("--container: %w", err)
		}
		in.Container = d
	case f.preset != "":
		p, ok := c.presets.Lookup(f.preset)
		if !ok {
			return layoutInput{}, fmt.Errorf("unknown container preset %q", f.preset)
		}
		in.Container = p.Inner
	}

	if f.box != "" {
		d, err := parseDimensions(f.box)
		if err != nil {
			return layoutInput{}, fmt.Errorf("--box: %w", err)
		}
		in.Box = d
	}
	if f.pattern != "" {
		in.Pattern = model.Pattern(f.pattern)
	}
	if cmd.Flags().Changed("rotate") {
		in.Rotate = f.rotate
	}
	return in, nil
}

// compute resolves the flags and runs the calculation.
func (c *CLI) compute(cmd *cobra.Command, f layoutFlags) (model.LayoutResult, error) {
	in, err := c.resolve(cmd, f)
	if err != nil {
		return model.LayoutResult{}, err
	}
	logger := loggerFromContext(cmd.Context())
	logger.Debug("computing layout",
		"container", formatDims(in.Container),
		"box", formatDims(in.Box),
		"pattern", in.Pattern,
		"rotate", in.Rotate,
	)
	result, err := c.calculator().Compute(in.Container, in.Box, in.Pattern, in.Rotate)
	if err != nil {
		return model.LayoutResult{}, err
	}
	logger.Debug("layout computed", "boxes", result.TotalBoxCount, "orientation", result.Orientation)
	return result, nil
}

// parseDimensions reads "LxWxH" (also "L*W*H" or "L W H") in cm.
// Sign and range checks are left to the calculator.
func parseDimensions(s string) (model.Dimensions, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == 'x' || r == 'X' || r == '*' || r == '×' || r == ' '
	})
	if len(parts) != 3 {
		return model.Dimensions{}, fmt.Errorf("expected LxWxH, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.ReplaceAll(p, ",", "."), 64)
		if err != nil {
			return model.Dimensions{}, fmt.Errorf("invalid number %q in %q", p, s)
		}
		v[i] = f
	}
	return model.NewDimensions(v[0], v[1], v[2]), nil
}

func formatDims(d model.Dimensions) string {
	return fmt.Sprintf("%gx%gx%g", d.Length, d.Width, d.Height)
}

func formatFit(f model.FitCounts) string {
	return fmt.Sprintf("%dx%dx%d", f.AlongLength, f.AlongWidth, f.AlongHeight)
}
