package commands

import (
	"github.com/spf13/cobra"

	"github.com/avoronov/moviedbbackend/ingest"
)

var referenceLanguage string

var updateGenresCmd = &cobra.Command{
	Use:   "update_genres",
	Short: "Refresh the genre list from the TMDB configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		job := ingest.GenreJob{Client: app.client, Genres: app.genres}
		return job.Run(cmd.Context(), referenceLanguage)
	},
}

var updateCountriesCmd = &cobra.Command{
	Use:   "update_countries",
	Short: "Refresh the ISO 3166-1 country list from the TMDB configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		job := ingest.CountryJob{Client: app.client, Countries: app.countries}
		return job.Run(cmd.Context(), referenceLanguage)
	},
}

var updateLanguagesCmd = &cobra.Command{
	Use:   "update_languages",
	Short: "Refresh the ISO 639-1 language list from the TMDB configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		job := ingest.LanguageJob{Client: app.client, Languages: app.languages}
		return job.Run(cmd.Context())
	},
}

func init() {
	updateGenresCmd.Flags().StringVar(&referenceLanguage, "language", "", "TMDB language parameter")
	updateCountriesCmd.Flags().StringVar(&referenceLanguage, "language", "", "TMDB language parameter")
	rootCmd.AddCommand(updateGenresCmd, updateCountriesCmd, updateLanguagesCmd)
}
