package commands

import (
	"github.com/spf13/cobra"

	"github.com/avoronov/moviedbbackend/ingest"
)

var movieFlags struct {
	ids              []int64
	date             string
	days             int
	batchSize        int
	language         string
	limit            int
	pages            int
	sortByPopularity bool
}

var updateMoviesCmd = &cobra.Command{
	Use:   "update_movies <operation>",
	Short: "Fetch and reconcile movie details",
	Long: `Run one movie ingestion operation:

  update_changed   refresh stored movies the changes feed reports as stale
  daily_export     create movies listed in the daily ID export but missing locally
  add_top_rated    create movies from the top_rated listing pages
  specific_ids     fetch the movies given via --ids`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return movieJob().Run(cmd.Context(), ingest.MovieOptions{
			Operation:        args[0],
			IDs:              movieFlags.ids,
			Date:             movieFlags.date,
			Days:             movieFlags.days,
			BatchSize:        batchSizeOrDefault(movieFlags.batchSize),
			Language:         movieFlags.language,
			Limit:            movieFlags.limit,
			Pages:            movieFlags.pages,
			SortByPopularity: movieFlags.sortByPopularity,
		})
	},
}

func init() {
	updateMoviesCmd.Flags().Int64SliceVar(&movieFlags.ids, "ids", nil, "explicit TMDB movie IDs (specific_ids)")
	updateMoviesCmd.Flags().StringVar(&movieFlags.date, "date", "", "export publication date, MM_DD_YYYY (daily_export)")
	updateMoviesCmd.Flags().IntVar(&movieFlags.days, "days", 1, "lookback window in days (update_changed)")
	updateMoviesCmd.Flags().IntVar(&movieFlags.batchSize, "batch-size", 0, "concurrent requests per fetch batch")
	updateMoviesCmd.Flags().StringVar(&movieFlags.language, "language", "", "TMDB language parameter")
	updateMoviesCmd.Flags().IntVar(&movieFlags.limit, "limit", 0, "cap the number of IDs processed")
	updateMoviesCmd.Flags().IntVar(&movieFlags.pages, "pages", 25, "listing pages to walk (add_top_rated)")
	updateMoviesCmd.Flags().BoolVar(&movieFlags.sortByPopularity, "sort-by-popularity", false, "process export entries most popular first")
	rootCmd.AddCommand(updateMoviesCmd)
}

func batchSizeOrDefault(flag int) int {
	if flag > 0 {
		return flag
	}
	return app.cfg.FetchBatchSize
}
