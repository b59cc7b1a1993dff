package main

import (
	"talent-workflow-api/pkg/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			return database.Migrate(cmd.Context(), cfg.DBUrl, log)
		},
	}
}
