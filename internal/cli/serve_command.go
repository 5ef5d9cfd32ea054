package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"todo-api/internal/config"
	"todo-api/internal/httpapi"
	"todo-api/internal/repository/sqlstore"
	"todo-api/internal/services"
	"todo-api/internal/validation"
)

func (r *RootCommand) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the item API",
		Long: `Open the store, apply pending migrations, seed an empty store and serve
the item API until interrupted. In-flight requests are drained on shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return r.runServe(ctx)
		},
	}
}

func (r *RootCommand) runServe(ctx context.Context) error {
	repo, err := sqlstore.NewFromConfig(ctx, r.config)
	if err != nil {
		return NewErrorHandler().Handle("open store", err)
	}
	defer repo.Close()

	if _, err := prepareStore(ctx, repo, r.config, r.logger); err != nil {
		return err
	}

	service := services.NewItemService(repo, validation.NewItemValidatorWithConfig(r.config))
	srv := httpapi.NewServerFromConfig(service, r.config.Server, r.logger)
	return srv.ListenAndServe(ctx, r.config.Server)
}

// prepareStore migrates the schema and, when enabled, seeds an empty store.
// It runs once at start-up, never from request handlers.
func prepareStore(ctx context.Context, repo *sqlstore.SQLStore, cfg *config.Config, logger *slog.Logger) (int, error) {
	if err := repo.Migrate(ctx); err != nil {
		return 0, fmt.Errorf("failed to migrate store: %w", err)
	}
	logger.Debug("migrations applied", "driver", cfg.Database.Driver)

	if !cfg.Database.Seed {
		return 0, nil
	}

	n, err := sqlstore.Seed(ctx, repo, sqlstore.DefaultSeedItems)
	if err != nil {
		return n, fmt.Errorf("failed to seed store: %w", err)
	}
	if n > 0 {
		logger.Info("seeded empty store", "items", n)
	}
	return n, nil
}
