package commands

import (
	"mangastore/internal/infra/db"
	infraRepo "mangastore/internal/infra/repository"
	"mangastore/internal/seed"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample manga catalog",
	Long: `Insert sample manga titles and volumes for local development.

Titles that already exist are skipped, so the command can be re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, gdb, err := bootstrap()
		if err != nil {
			return err
		}
		if err := db.Migrate(gdb); err != nil {
			return err
		}

		n, err := seed.Run(cmd.Context(), infraRepo.NewVolumeGormRepository(gdb), logger)
		if err != nil {
			return err
		}
		logger.Infof("seeding completed: %d manga created", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
