package cli

import (
	"github.com/spf13/cobra"

	"github.com/placement-portal/quiz-api/internal/config"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:          "portal",
		Short:        "Placement portal practice quiz API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			config.InitLogger(loaded)
			*cfg = *loaded
			return nil
		},
	}

	cmd.AddCommand(newServeCmd(cfg))
	cmd.AddCommand(newMigrateCmd(cfg))
	return cmd
}
