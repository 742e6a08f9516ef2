package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avoronov/moviedbbackend/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the daily update sequence on a cron schedule",
	Long: `Start the long-running scheduler. It executes the full daily update
sequence (reference data, exports, change feeds, removal checks, aggregates)
at the configured time and serves /healthz and /status endpoints.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sched := scheduler.New(app.cfg, scheduler.Jobs{
			Movies:      movieJob(),
			People:      personJob(),
			Companies:   companyJob(),
			Collections: collectionJob(),
			Popularity:  popularityJob(),
			Removed:     removedJob(),
		})
		return sched.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
