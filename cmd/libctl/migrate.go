package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			dbConfig, err := config.LoadDatabaseConfig()
			if err != nil {
				return fmt.Errorf("load database config: %w", err)
			}
			if err := database.Migrate(cmd.Context(), dbConfig.DSN(), args[0]); err != nil {
				return err
			}
			logger.Info("migrate finished", map[string]interface{}{"command": args[0]})
			return nil
		},
	}
}
