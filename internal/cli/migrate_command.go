package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"todo-api/internal/repository/sqlstore"
)

func (r *RootCommand) newMigrateCommand() *cobra.Command {
	var rollback bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations and exit",
		Long: `Apply pending schema migrations, seed an empty store unless --seed=false,
and exit. With --rollback the most recent migration is reverted instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			repo, err := sqlstore.NewFromConfig(ctx, r.config)
			if err != nil {
				return NewErrorHandler().Handle("open store", err)
			}
			defer repo.Close()

			if rollback {
				version, err := repo.Rollback(ctx)
				if err != nil {
					return err
				}
				if version == 0 {
					fmt.Fprintln(out, "Nothing to roll back")
					return nil
				}
				fmt.Fprintf(out, "Rolled back migration %06d\n", version)
				return nil
			}

			seeded, err := prepareStore(ctx, repo, r.config, r.logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Migrations applied")
			if seeded > 0 {
				fmt.Fprintf(out, "Seeded %d items\n", seeded)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rollback, "rollback", false, "Revert the most recent migration")
	return cmd
}
