package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/dshills/modebar/internal/app"
	"github.com/dshills/modebar/internal/config"
	"github.com/dshills/modebar/internal/ui/terminal"
)

// defaultMappings is written by the init command.
//
//go:embed main.conf
var defaultMappings []byte

// options holds the command-line flags.
type options struct {
	configPath string
	mappings   string
	logLevel   string
	logFile    string
	lua        string
	noWatch    bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "modebar",
		Short:        "A modal command line for the terminal",
		Long:         longRoot,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), cfg, opts.logFile)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "settings file (default $XDG_CONFIG_HOME/modebar/config.toml)")
	flags.StringVar(&opts.mappings, "mappings", "", "mappings file (overrides the settings file)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "log file (default $XDG_STATE_HOME/modebar/modebar.log)")
	flags.StringVar(&opts.lua, "lua", "", "Lua script providing command variables")
	flags.BoolVar(&opts.noWatch, "no-watch", false, "do not reload the mappings file when it changes")

	cmd.AddCommand(newVersionCmd(), newInitCmd())
	return cmd
}

const longRoot = `modebar shows a vim-style status bar at the bottom of the terminal.

Type ":" to open the command line. Keys typed in other modes are matched
against the mappings file, whose lines look like

    nmap o :open
    nmap ZZ :quit<Enter>

Commands: open <url>, echo [text], insert, normal, reload, quit.`

// loadConfig reads the settings file and applies environment and flag
// overrides, flags last.
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("mappings") {
		cfg.Mappings = opts.mappings
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("lua") {
		cfg.Lua = opts.lua
	}
	if opts.noWatch {
		cfg.Watch = false
	}
	return cfg, nil
}

// openLog opens the log file, creating its directory.
func openLog(path string) (io.WriteCloser, error) {
	if path == "" {
		var err error
		path, err = xdg.StateFile(filepath.Join(config.AppName, "modebar.log"))
		if err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func runSession(ctx context.Context, cfg *config.Config, logPath string) error {
	logFile, err := openLog(logPath)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logFile.Close()

	logger := app.NewLogger(app.LoggerConfig{
		Level:      app.ParseLogLevel(cfg.LogLevel),
		Output:     logFile,
		Prefix:     config.AppName,
		Timestamps: true,
	})
	app.SetLogger(logger)
	logger.Info("starting", "version", version, "mappings", cfg.MappingsPath())

	term, err := terminal.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer term.Shutdown()

	s, err := newSession(cfg, term, logger)
	if err != nil {
		return err
	}
	defer s.close()

	err = s.run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "modebar %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter mappings file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultMappingsPath()
			if len(args) == 1 {
				path = config.ExpandPath(args[0])
			}
			if err := writeMappings(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// writeMappings writes the starter mappings to path.
func writeMappings(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, defaultMappings, 0o644)
}
