package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/avoronov/moviedbbackend/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.AutoMigrateModels(app.db); err != nil {
			return err
		}
		log.Println("Database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
