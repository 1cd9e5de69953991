package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/bucketlist/internal/storage/sqlite"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(a.cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			a.logger.Info("Schema up to date", "database", a.cfg.DatabasePath)
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", a.cfg.DatabasePath)
			return nil
		},
	}
}
