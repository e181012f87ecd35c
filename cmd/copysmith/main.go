package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sant0-9/copysmith/internal/config"
	"github.com/sant0-9/copysmith/internal/generator"
	"github.com/sant0-9/copysmith/internal/logger"
	"github.com/sant0-9/copysmith/internal/schema"
	"github.com/sant0-9/copysmith/internal/tui"
)

var version = "dev"

// options holds the global flags and what PersistentPreRunE builds from them.
type options struct {
	configPath string
	dataDir    string
	alignMode  string
	verbose    bool

	settings *config.Config
	log      logger.Logger
	router   *generator.Router
}

func newRootCmd() *cobra.Command {
	return newRootCommand(&options{})
}

func newRootCommand(opts *options) *cobra.Command {

	root := &cobra.Command{
		Use:     "copysmith",
		Short:   "Generate structured product copy from a catalog",
		Version: version,
		Long: `copysmith writes marketing copy for catalog products.

Each client declares the fields it wants back (title, subtitle and its own
sections) in config/<client>.json. English copy goes to the primary backend,
every other language to the secondary one.

Run without arguments to start the interactive interface.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Settings file (default ~/.config/copysmith/config.yaml)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding data/, config/ and examples/ (overrides settings)")
	root.PersistentFlags().StringVar(&opts.alignMode, "align-mode", "", "Override every client's align mode: validate or truncate")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newGenerateCmd(opts),
		newPromptCmd(opts),
		newClientsCmd(opts),
		newLimitsCmd(opts),
	)
	return root
}

// setup loads settings and builds the logger. The interactive UI owns the
// terminal, so it logs to a file instead of stderr.
func (o *options) setup(cmd *cobra.Command) error {
	var (
		settings *config.Config
		err      error
	)
	if o.configPath != "" {
		settings, err = config.LoadFrom(o.configPath)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if o.dataDir != "" {
		settings.DataDir = o.dataDir
	}
	if o.alignMode != "" {
		mode, err := schema.ParseAlignMode(o.alignMode)
		if err != nil {
			return err
		}
		settings.AlignMode = string(mode)
	}
	o.settings = settings

	logOpts := logger.Options{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
		File:   settings.Log.File,
	}
	if o.verbose {
		logOpts.Level = "debug"
	}
	if cmd.Root() == cmd && logOpts.File == "" {
		path, err := config.LogPath()
		if err != nil {
			return err
		}
		logOpts.File = path
	}

	o.log, err = logger.New(logOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func runInteractive(cmd *cobra.Command, opts *options) error {
	deps := opts.deps(cmd.Context())

	app := tui.NewApp(deps)
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	app.SetProgram(p)

	_, err := p.Run()
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
