package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuhlali/chamapro-extend/internal/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Long:      "Apply all pending migrations (up, the default) or roll back the latest one (down).",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := database.Up
			if len(args) == 1 {
				dir = database.Direction(args[0])
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.New(cfg.ConnectionString())
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer db.Close()

			if err := database.Migrate(db, dir); err != nil {
				return err
			}

			version, dirty, err := database.Version(db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (dirty: %t)\n", version, dirty)

			return nil
		},
	}
}
