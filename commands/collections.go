package commands

import (
	"github.com/spf13/cobra"

	"github.com/avoronov/moviedbbackend/ingest"
)

var collectionFlags struct {
	ids       []int64
	date      string
	batchSize int
	language  string
	limit     int
	create    bool
}

var updateCollectionsCmd = &cobra.Command{
	Use:   "update_collections <operation>",
	Short: "Fetch and reconcile collection details",
	Long: `Run one collection operation:

  daily_export      refresh collections from the daily ID export (--create adds new ones)
  specific_ids      fetch the collections given via --ids
  movies_released   recompute denormalized released-movie counts
  avg_popularity    recompute denormalized average movie popularity`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return collectionJob().Run(cmd.Context(), ingest.CollectionOptions{
			Operation: args[0],
			IDs:       collectionFlags.ids,
			Date:      collectionFlags.date,
			BatchSize: batchSizeOrDefault(collectionFlags.batchSize),
			Language:  collectionFlags.language,
			Limit:     collectionFlags.limit,
			Create:    collectionFlags.create,
		})
	},
}

func init() {
	updateCollectionsCmd.Flags().Int64SliceVar(&collectionFlags.ids, "ids", nil, "explicit TMDB collection IDs (specific_ids)")
	updateCollectionsCmd.Flags().StringVar(&collectionFlags.date, "date", "", "export publication date, MM_DD_YYYY (daily_export)")
	updateCollectionsCmd.Flags().IntVar(&collectionFlags.batchSize, "batch-size", 0, "concurrent requests per fetch batch")
	updateCollectionsCmd.Flags().StringVar(&collectionFlags.language, "language", "", "TMDB language parameter")
	updateCollectionsCmd.Flags().IntVar(&collectionFlags.limit, "limit", 0, "cap the number of IDs processed")
	updateCollectionsCmd.Flags().BoolVar(&collectionFlags.create, "create", false, "create exported collections missing locally instead of refreshing stored ones")
	rootCmd.AddCommand(updateCollectionsCmd)
}
