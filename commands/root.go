package commands

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/avoronov/moviedbbackend/config"
	"github.com/avoronov/moviedbbackend/database"
	"github.com/avoronov/moviedbbackend/ingest"
	"github.com/avoronov/moviedbbackend/repository"
	"github.com/avoronov/moviedbbackend/tmdb"
)

// app holds the shared wiring built once per invocation before any
// subcommand runs.
var app struct {
	cfg config.Config
	db  *gorm.DB

	client   *tmdb.Client
	exporter *tmdb.IDExporter

	movies      *repository.MovieRepository
	people      *repository.PersonRepository
	companies   *repository.CompanyRepository
	collections *repository.CollectionRepository
	countries   *repository.CountryRepository
	languages   *repository.LanguageRepository
	genres      *repository.GenreRepository
}

var rootCmd = &cobra.Command{
	Use:   "moviedb",
	Short: "TMDB catalog ingestion and reconciliation jobs",
	Long: `moviedb maintains a local movie catalog mirrored from TMDB. Each
subcommand runs one ingestion or maintenance job: enumerating IDs from the
daily exports, fetching and reconciling details, marking removed entries and
recomputing denormalized aggregates.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func initApp(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.InitGormDB(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.db = db
	app.client = tmdb.NewClient(cfg)
	app.exporter = tmdb.NewIDExporter(cfg)
	app.movies = repository.NewMovieRepository(db)
	app.people = repository.NewPersonRepository(db)
	app.companies = repository.NewCompanyRepository(db)
	app.collections = repository.NewCollectionRepository(db)
	app.countries = repository.NewCountryRepository(db)
	app.languages = repository.NewLanguageRepository(db)
	app.genres = repository.NewGenreRepository(db)
	return nil
}

func movieJob() *ingest.MovieJob {
	return &ingest.MovieJob{
		Client:      app.client,
		Exporter:    app.exporter,
		Movies:      app.movies,
		People:      app.people,
		Companies:   app.companies,
		Collections: app.collections,
		Countries:   app.countries,
		Languages:   app.languages,
		Genres:      app.genres,
	}
}

func personJob() *ingest.PersonJob {
	return &ingest.PersonJob{Client: app.client, Exporter: app.exporter, People: app.people}
}

func companyJob() *ingest.CompanyJob {
	return &ingest.CompanyJob{
		Client:    app.client,
		Exporter:  app.exporter,
		Companies: app.companies,
		Countries: app.countries,
		Languages: app.languages,
		Genres:    app.genres,
	}
}

func collectionJob() *ingest.CollectionJob {
	return &ingest.CollectionJob{Client: app.client, Exporter: app.exporter, Collections: app.collections}
}

func popularityJob() *ingest.PopularityJob {
	return &ingest.PopularityJob{Exporter: app.exporter, Movies: app.movies, People: app.people}
}

func removedJob() *ingest.RemovedJob {
	return &ingest.RemovedJob{
		Client:      app.client,
		Exporter:    app.exporter,
		Movies:      app.movies,
		People:      app.people,
		Companies:   app.companies,
		Collections: app.collections,
		FetchBatch:  app.cfg.RemovedFetchBatch,
	}
}

func adultJob() *ingest.AdultJob {
	return &ingest.AdultJob{Movies: app.movies}
}

// Execute runs the root command. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}
