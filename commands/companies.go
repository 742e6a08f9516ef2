package commands

import (
	"github.com/spf13/cobra"

	"github.com/avoronov/moviedbbackend/ingest"
)

var companyFlags struct {
	ids       []int64
	date      string
	batchSize int
	limit     int
	create    bool
}

var updateCompaniesCmd = &cobra.Command{
	Use:   "update_companies <operation>",
	Short: "Fetch and reconcile production company details",
	Long: `Run one production company operation:

  daily_export   refresh companies from the daily ID export (--create adds new ones)
  specific_ids   fetch the companies given via --ids
  movie_count    recompute denormalized per-company movie counts`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return companyJob().Run(cmd.Context(), ingest.CompanyOptions{
			Operation: args[0],
			IDs:       companyFlags.ids,
			Date:      companyFlags.date,
			BatchSize: batchSizeOrDefault(companyFlags.batchSize),
			Limit:     companyFlags.limit,
			Create:    companyFlags.create,
		})
	},
}

func init() {
	updateCompaniesCmd.Flags().Int64SliceVar(&companyFlags.ids, "ids", nil, "explicit TMDB company IDs (specific_ids)")
	updateCompaniesCmd.Flags().StringVar(&companyFlags.date, "date", "", "export publication date, MM_DD_YYYY (daily_export)")
	updateCompaniesCmd.Flags().IntVar(&companyFlags.batchSize, "batch-size", 0, "concurrent requests per fetch batch")
	updateCompaniesCmd.Flags().IntVar(&companyFlags.limit, "limit", 0, "cap the number of IDs processed")
	updateCompaniesCmd.Flags().BoolVar(&companyFlags.create, "create", false, "create exported companies missing locally instead of refreshing stored ones")
	rootCmd.AddCommand(updateCompaniesCmd)
}
