// Package cmd implements the eventdesk operator CLI.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server"
	"github.com/dmitrijs2005/eventdesk/internal/server/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newApp is a seam for server.NewApp.
var newApp = server.NewApp

type rootOptions struct {
	configPath string
	driver     string
	dsn        string
	logLevel   string
	logFormat  string
}

// runtime carries what the subcommands share: the parsed options, the
// App opened before the command runs and the stdin reader for prompts.
type runtime struct {
	opts   rootOptions
	app    *server.App
	prompt *prompter
}

func newRuntime() *runtime {
	return &runtime{}
}

// command builds the command tree bound to rt.
func (rt *runtime) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "eventdesk",
		Short: "eventdesk - event scheduling store administration",
		Long: `eventdesk manages the eventdesk database: it applies migrations, seeds
administrators and gives administrators access to users, their events and
the login history.

Configuration is read from defaults, a .env file, EVENTDESK_* environment
variables, an optional JSON file (--config) and finally the flags below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.open(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rt.opts.configPath, "config", "", "JSON config file")
	pf.StringVar(&rt.opts.driver, "db-driver", "", "database driver (sqlite, postgres)")
	pf.StringVar(&rt.opts.dsn, "db-dsn", "", "database data source name")
	pf.StringVar(&rt.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&rt.opts.logFormat, "log-format", "", "log format (json, text, zerolog, console)")

	root.AddCommand(
		rt.migrateCommand(),
		rt.adminCommand(),
		rt.usersCommand(),
		rt.historyCommand(),
		rt.eventsCommand(),
	)
	return root
}

// loadConfig layers the flags over config.LoadConfig.
func (rt *runtime) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(rt.opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("db-driver") {
		cfg.DatabaseDriver = rt.opts.driver
	}
	if flags.Changed("db-dsn") {
		cfg.DatabaseDSN = rt.opts.dsn
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rt.opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = rt.opts.logFormat
	}
	return cfg, nil
}

func (rt *runtime) open(cmd *cobra.Command) error {
	cfg, err := rt.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr()).
		With("run_id", uuid.NewString(), "command", cmd.CommandPath())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	rt.app = app
	rt.prompt = newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	return nil
}

func (rt *runtime) close() error {
	if rt.app == nil {
		return nil
	}
	err := rt.app.Close()
	rt.app = nil
	return err
}

// Execute runs the CLI with os.Args and returns the process exit code.
func Execute(ctx context.Context) int {
	rt := newRuntime()
	root := rt.command()

	err := root.ExecuteContext(ctx)
	if cerr := rt.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
