package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"todo-api/internal/client"
	"todo-api/internal/config"
	"todo-api/internal/logging"
)

// ClientFactory builds the item client used by the item commands
type ClientFactory func(cfg *config.Config, logger *slog.Logger) (ItemClient, error)

// Options wires the root command to its environment
type Options struct {
	Out       io.Writer
	Err       io.Writer
	NewClient ClientFactory
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	opts   Options
	config *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts Options) *RootCommand {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.NewClient == nil {
		opts.NewClient = defaultClientFactory
	}

	root := &RootCommand{opts: opts}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A small to-do list service and its command-line client",
		Long: `todo serves a JSON API for a to-do list and talks to it from the command line.

EXAMPLES:
  todo serve                               # Migrate, seed and serve on :8080
  todo migrate                             # Apply pending migrations and exit
  todo list                                # List all items
  todo add Buy milk                        # Add an item
  todo done 3                              # Mark item 3 as complete
  todo rename 3 Buy oat milk               # Rename item 3
  todo delete 3                            # Delete item 3

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Database Configuration:
    TODO_DB_DRIVER                         sqlite or pgx (default: sqlite)
    TODO_DB_DIR                            SQLite database directory (default: data)
    TODO_DB_FILENAME                       SQLite database filename (default: todo.db)
    TODO_DB_URL                            PostgreSQL connection URL (pgx driver)
    TODO_SEED                              Seed an empty store on start-up (default: true)

  Server Configuration:
    TODO_ADDR                              Listen address (default: :8080)
    TODO_REQUEST_TIMEOUT                   Per-request timeout (default: 15s)
    TODO_CORS                              Allow cross-origin requests (default: true)

  Client Configuration:
    TODO_SERVER_URL                        Service URL (default: http://localhost:8080)
    TODO_CLIENT_TIMEOUT                    Request timeout (default: 10s)

  Logging Configuration:
    TODO_LOG_LEVEL                         debug, info, warn or error (default: info)
    TODO_LOG_FORMAT                        text or json (default: text)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.loadConfig(cmd)
		},
	}
	root.cmd.SetOut(opts.Out)
	root.cmd.SetErr(opts.Err)

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

func defaultClientFactory(cfg *config.Config, logger *slog.Logger) (ItemClient, error) {
	return client.New(client.ConfigFromApp(cfg, logger))
}

// Execute runs the command line given by args
func (r *RootCommand) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.ExecuteContext(ctx)
}

// Config returns the configuration resolved for the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-driver", "", "Database driver: sqlite or pgx (overrides TODO_DB_DRIVER)")
	flags.String("db-dir", "", "SQLite database directory (overrides TODO_DB_DIR)")
	flags.String("db-filename", "", "SQLite database filename (overrides TODO_DB_FILENAME)")
	flags.String("db-url", "", "PostgreSQL connection URL (overrides TODO_DB_URL)")
	flags.Bool("seed", true, "Seed an empty store with sample items (overrides TODO_SEED)")

	// Server configuration
	flags.String("addr", "", "Listen address for serve (overrides TODO_ADDR)")
	flags.Bool("cors", true, "Allow cross-origin requests (overrides TODO_CORS)")

	// Client configuration
	flags.String("server", "", "Service URL for item commands (overrides TODO_SERVER_URL)")
	flags.Duration("timeout", 0, "Client request timeout (overrides TODO_CLIENT_TIMEOUT)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides TODO_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text or json (overrides TODO_LOG_FORMAT)")
}

// loadConfig resolves defaults, environment and the flags set on this run
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	overrides.DBDriver = stringFlag("db-driver")
	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.DBURL = stringFlag("db-url")
	overrides.Seed = boolFlag("seed")
	overrides.Addr = stringFlag("addr")
	overrides.CORS = boolFlag("cors")
	overrides.ServerURL = stringFlag("server")
	overrides.LogLevel = stringFlag("log-level")
	overrides.LogFormat = stringFlag("log-format")
	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		overrides.ClientTimeout = &v
	}

	cfg, err := config.NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	r.config = cfg
	r.logger = logging.New(cfg.Logging, r.opts.Err)
	return nil
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newServeCommand(),
		r.newMigrateCommand(),
		r.itemCommand("list", "List all items", cobra.NoArgs),
		r.itemCommand("show <id>", "Show one item", cobra.ExactArgs(1)),
		r.itemCommand("add <name...>", "Add a new item", cobra.MinimumNArgs(1)),
		r.itemCommand("done <id>", "Mark an item as complete", cobra.ExactArgs(1)),
		r.itemCommand("undo <id>", "Mark an item as not complete", cobra.ExactArgs(1)),
		r.itemCommand("rename <id> <name...>", "Rename an item", cobra.MinimumNArgs(2)),
		r.itemCommand("delete <id>...", "Delete items", cobra.MinimumNArgs(1)),
	)
}

// itemCommand builds a cobra command that dispatches to the item command registry
func (r *RootCommand) itemCommand(use, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.opts.NewClient(r.config, r.logger)
			if err != nil {
				return NewErrorHandler().Handle("create client", err)
			}

			app := NewApp(c, cmd.OutOrStdout())
			return app.Run(cmd.Context(), append([]string{cmd.Name()}, args...))
		},
	}
}
