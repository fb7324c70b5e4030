// Package cli implements the loadcalc command-line interface.
//
// Commands compute container layouts, print layer and orientation tables,
// export loading plans, run batch jobs from CSV or Excel files, manage custom
// container presets and serve the JSON API. Every command accepts --verbose
// for debug logging and --config to point at a TOML config file.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/LoadCalc/internal/engine"
	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/piwi3910/LoadCalc/internal/project"
)

const appName = "loadcalc"

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds state shared by all commands. Config and presets are loaded in
// the root command's PersistentPreRunE.
type CLI struct {
	Logger *log.Logger

	verbose     bool
	configPath  string
	presetsPath string

	config  model.AppConfig
	presets model.PresetStore
}

// New creates a CLI that logs to w.
func New(w io.Writer) *CLI {
	return &CLI{
		Logger:  newLogger(w, log.InfoLevel),
		config:  model.DefaultAppConfig(),
		presets: model.NewPresetStore(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Loadcalc plans how many cartons fit in a shipping container",
		Long:          `Loadcalc computes grid layouts of identical cartons inside a container, splits them into loading layers and exports loading plans.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.load(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", project.DefaultConfigPath(), "path to the TOML config file")
	flags.StringVar(&c.presetsPath, "presets", project.DefaultPresetsPath(), "path to the custom container presets file")

	root.AddCommand(c.calcCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.orientationsCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// load reads the config and presets files and sets the log level.
func (c *CLI) load() error {
	cfg, err := project.LoadAppConfig(c.configPath)
	if err != nil {
		return err
	}
	presets, err := project.LoadPresets(c.presetsPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.presets = presets

	level := parseLevel(cfg.LogLevel)
	if c.verbose {
		level = log.DebugLevel
	}
	c.Logger.SetLevel(level)
	c.Logger.Debug("loaded config", "config", c.configPath, "presets", len(presets.Presets))
	return nil
}

// calculator returns an engine using the configured palette.
func (c *CLI) calculator() *engine.Calculator {
	return engine.New(c.config.ColorAssigner())
}
