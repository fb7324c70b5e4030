package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/piwi3910/LoadCalc/internal/project"
)

// configCommand creates the "config" command and its subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, create, back up and restore the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(c.config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config and presets file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.configPath)
			fmt.Fprintln(cmd.OutOrStdout(), c.presetsPath)
			return nil
		},
	})

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configBackupCommand())
	cmd.AddCommand(c.configRestoreCommand())
	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := project.SaveAppConfig(c.configPath, model.DefaultAppConfig()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Wrote %s", c.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// configBackupCommand creates the "config backup" subcommand.
func (c *CLI) configBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>",
		Short: "Save the configuration and custom presets to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.ExportAllData(args[0], c.config, c.presets); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Backed up config and %d presets to %s", len(c.presets.Presets), args[0])
			return nil
		},
	}
}

// configRestoreCommand creates the "config restore" subcommand.
func (c *CLI) configRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the configuration and custom presets from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.ValidateAppConfig(backup.Config); err != nil {
				return fmt.Errorf("backup config: %w", err)
			}
			if err := project.SaveAppConfig(c.configPath, backup.Config); err != nil {
				return err
			}
			presets := backup.PresetStore()
			if err := project.SavePresets(c.presetsPath, presets); err != nil {
				return err
			}
			c.config = backup.Config
			c.presets = presets
			printSuccess(cmd.OutOrStdout(), "Restored config and %d presets from backup of %s", len(presets.Presets), backup.CreatedAt)
			return nil
		},
	}
}
