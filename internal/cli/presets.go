package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/piwi3910/LoadCalc/internal/project"
)

// presetsCommand creates the "presets" command and its subcommands.
func (c *CLI) presetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and manage container presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := c.presets.All()
			rows := make([][]string, 0, len(all))
			for _, p := range all {
				kind := "custom"
				if p.IsBuiltIn {
					kind = "built-in"
				}
				rows = append(rows, []string{
					p.ID,
					p.Name,
					formatDims(p.Inner),
					fmt.Sprintf("%.2f", p.Inner.VolumeCubicMeters()),
					kind,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Inner (cm)", "Volume (m³)", "Kind"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.AddCommand(c.presetsAddCommand())
	cmd.AddCommand(c.presetsRemoveCommand())
	return cmd
}

// presetsAddCommand creates the "presets add" subcommand.
func (c *CLI) presetsAddCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:     "add <name> <LxWxH>",
		Short:   "Add a custom container preset",
		Example: `  loadcalc presets add "Box truck" 700x240x240`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			inner, err := parseDimensions(args[1])
			if err != nil {
				return err
			}
			if err := inner.Validate("preset " + name); err != nil {
				return err
			}
			if _, exists := c.presets.Lookup(name); exists {
				return fmt.Errorf("a preset named %q already exists", name)
			}

			p := model.NewContainerPreset(name, description, inner)
			c.presets.Add(p)
			if err := project.SavePresets(c.presetsPath, c.presets); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Added preset %s (%s)", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "preset description")
	return cmd
}

// presetsRemoveCommand creates the "presets remove" subcommand.
func (c *CLI) presetsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a custom container preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.presets.FindByName(args[0])
			if p == nil {
				if _, builtIn := model.GetPreset(args[0]); builtIn {
					return fmt.Errorf("%q is a built-in preset and cannot be removed", args[0])
				}
				return fmt.Errorf("no custom preset named %q", args[0])
			}
			name := p.Name
			c.presets.Remove(p.ID)
			if err := project.SavePresets(c.presetsPath, c.presets); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Removed preset %s", name)
			return nil
		},
	}
}
