package commands

import (
	"github.com/spf13/cobra"
)

var removedDate string

var updateRemovedCmd = &cobra.Command{
	Use:       "update_removed <movie|person|company|collection>",
	Short:     "Mark entries that disappeared from TMDB",
	Long:      `Diff the local catalog against the daily ID export, re-fetch every candidate and flag the ones the API no longer serves.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"movie", "person", "company", "collection"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return removedJob().Run(cmd.Context(), args[0], removedDate)
	},
}

var updateAdultCmd = &cobra.Command{
	Use:   "update_adult",
	Short: "Propagate the adult flag from collections and companies to movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return adultJob().Run()
	},
}

func init() {
	updateRemovedCmd.Flags().StringVar(&removedDate, "date", "", "export publication date, MM_DD_YYYY")
	rootCmd.AddCommand(updateRemovedCmd, updateAdultCmd)
}
