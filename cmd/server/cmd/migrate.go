package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eventhub/config"
	"eventhub/internal/repository/postgres"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger := config.NewLogger()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			db, err := postgres.Open(ctx, cfg.DBUrl, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(ctx, db); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}
