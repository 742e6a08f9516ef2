package commands

import (
	"github.com/spf13/cobra"

	"github.com/avoronov/moviedbbackend/ingest"
)

var personFlags struct {
	ids              []int64
	date             string
	days             int
	batchSize        int
	language         string
	limit            int
	sortByPopularity bool
}

var updatePeopleCmd = &cobra.Command{
	Use:   "update_people <operation>",
	Short: "Fetch and reconcile person details",
	Long: `Run one person ingestion operation:

  update_changed   refresh stored people the changes feed reports as stale
  daily_export     create people listed in the daily ID export but missing locally
  specific_ids     fetch the people given via --ids
  roles_count      recompute denormalized cast and crew role counts`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return personJob().Run(cmd.Context(), ingest.PersonOptions{
			Operation:        args[0],
			IDs:              personFlags.ids,
			Date:             personFlags.date,
			Days:             personFlags.days,
			BatchSize:        batchSizeOrDefault(personFlags.batchSize),
			Language:         personFlags.language,
			Limit:            personFlags.limit,
			SortByPopularity: personFlags.sortByPopularity,
		})
	},
}

func init() {
	updatePeopleCmd.Flags().Int64SliceVar(&personFlags.ids, "ids", nil, "explicit TMDB person IDs (specific_ids)")
	updatePeopleCmd.Flags().StringVar(&personFlags.date, "date", "", "export publication date, MM_DD_YYYY (daily_export)")
	updatePeopleCmd.Flags().IntVar(&personFlags.days, "days", 1, "lookback window in days (update_changed)")
	updatePeopleCmd.Flags().IntVar(&personFlags.batchSize, "batch-size", 0, "concurrent requests per fetch batch")
	updatePeopleCmd.Flags().StringVar(&personFlags.language, "language", "", "TMDB language parameter")
	updatePeopleCmd.Flags().IntVar(&personFlags.limit, "limit", 0, "cap the number of IDs processed")
	updatePeopleCmd.Flags().BoolVar(&personFlags.sortByPopularity, "sort-by-popularity", false, "process export entries most popular first")
	rootCmd.AddCommand(updatePeopleCmd)
}
