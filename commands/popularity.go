package commands

import (
	"github.com/spf13/cobra"
)

var popularityFlags struct {
	date  string
	limit int
}

var updatePopularityCmd = &cobra.Command{
	Use:       "update_popularity <movie|person>",
	Short:     "Refresh popularity scores from the daily ID export",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"movie", "person"},
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := popularityFlags.limit
		if limit == 0 {
			limit = app.cfg.PopularityLimit
		}
		return popularityJob().Run(cmd.Context(), args[0], popularityFlags.date, limit)
	},
}

func init() {
	updatePopularityCmd.Flags().StringVar(&popularityFlags.date, "date", "", "export publication date, MM_DD_YYYY")
	updatePopularityCmd.Flags().IntVar(&popularityFlags.limit, "limit", 0, "number of top entries to apply")
	rootCmd.AddCommand(updatePopularityCmd)
}
