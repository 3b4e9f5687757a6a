package cli

import (
	"github.com/spf13/cobra"

	"github.com/placement-portal/quiz-api/internal/config"
	"github.com/placement-portal/quiz-api/internal/quiz"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DB.DSN == "" {
				return config.ErrMissingEnvironmentVariables
			}
			if err := config.Connect(cmd.Context(), cfg.DB); err != nil {
				return err
			}
			if err := quiz.Migrate(config.DB); err != nil {
				return err
			}
			config.Log.Info("Migrations applied")
			return nil
		},
	}
}
