package commands

import (
	"mangastore/internal/infra/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, gdb, err := bootstrap()
		if err != nil {
			return err
		}

		if err := db.Migrate(gdb); err != nil {
			return err
		}
		logger.Info("migration completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
