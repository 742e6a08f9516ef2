package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
	"github.com/avoronov/moviedbbackend/tmdb"
	"github.com/avoronov/moviedbbackend/utils"
)

// MovieJob ingests movie details from TMDB into the local catalog. Each run
// resolves the target ID list, fetches the payloads with embedded credits,
// creates any missing referenced people, companies and collections, and
// reconciles the movie rows plus all their relationship tables.
type MovieJob struct {
	Client      *tmdb.Client
	Exporter    *tmdb.IDExporter
	Movies      repository.MovieRepositoryInterface
	People      repository.PersonRepositoryInterface
	Companies   repository.CompanyRepositoryInterface
	Collections repository.CollectionRepositoryInterface
	Countries   repository.CountryRepositoryInterface
	Languages   repository.LanguageRepositoryInterface
	Genres      repository.GenreRepositoryInterface
}

type MovieOptions struct {
	Operation        string
	IDs              []int64
	Date             string
	Days             int
	BatchSize        int
	Language         string
	Limit            int
	Pages            int
	SortByPopularity bool
}

// movieDeps records which referenced entities could not be fetched this run.
// A movie touching any of them is skipped wholesale rather than stored with
// dangling references.
type movieDeps struct {
	failedPeople      map[int64]struct{}
	failedCompanies   map[int64]struct{}
	failedCollections map[int64]struct{}
}

func (j *MovieJob) Run(ctx context.Context, opts MovieOptions) error {
	ids, err := j.resolveIDs(ctx, opts)
	if err != nil {
		return err
	}
	ids = limitIDs(ids, opts.Limit)
	if len(ids) == 0 {
		log.Printf("movies (%s): nothing to do", opts.Operation)
		return nil
	}

	details, notFetched := j.Client.MoviesByID(ctx, ids, opts.BatchSize, opts.Language, []string{"credits"})

	refs, err := NewRefCache(j.Countries, j.Languages, j.Genres)
	if err != nil {
		return err
	}

	existingIDs, err := j.Movies.ExistingIDsIn(ids)
	if err != nil {
		return err
	}
	existing := idSet(existingIDs)

	deps, err := j.resolveDependencies(ctx, details, refs, opts)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	inFlight := make(map[string]struct{})
	var creates, updates []models.Movie
	var builtIDs []int64
	var relations repository.MovieRelations
	skipped := 0

	for _, d := range details {
		if blocked, reason := deps.blocks(d); blocked {
			log.Printf("movies (%s): skipping %q (%d): %s", opts.Operation, d.Title, d.ID, reason)
			skipped++
			continue
		}

		_, isUpdate := existing[d.ID]
		movie, err := j.buildMovie(d, refs, now, isUpdate, inFlight)
		if err != nil {
			return err
		}
		if err := collectRelations(d, refs, &relations); err != nil {
			return err
		}

		if isUpdate {
			updates = append(updates, movie)
		} else {
			creates = append(creates, movie)
		}
		builtIDs = append(builtIDs, d.ID)
	}

	if err := j.Movies.Upsert(creates, true); err != nil {
		return err
	}
	if err := j.Movies.Upsert(updates, false); err != nil {
		return err
	}
	if err := j.Movies.ReplaceRelations(builtIDs, relations); err != nil {
		return err
	}

	log.Printf("movies (%s): %d created, %d updated, %d skipped, %d not fetched",
		opts.Operation, len(creates), len(updates), skipped, len(notFetched))
	return nil
}

func (j *MovieJob) resolveIDs(ctx context.Context, opts MovieOptions) ([]int64, error) {
	switch opts.Operation {
	case OpUpdateChanged:
		changed, windowStart, err := j.Client.ChangedIDs(ctx, "movie", opts.Days)
		if err != nil {
			return nil, err
		}
		return j.Movies.StaleIDs(changed, windowStart)

	case OpDailyExport:
		entries, err := j.Exporter.FetchIDs("movie", opts.Date, opts.SortByPopularity)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			return nil, nil
		}
		exported := tmdb.EntryIDs(entries)
		existing, err := j.Movies.ExistingIDsIn(exported)
		if err != nil {
			return nil, err
		}
		return diffIDs(exported, idSet(existing)), nil

	case OpAddTopRated:
		listed, err := j.Client.TopRatedMovieIDs(ctx, opts.Pages, opts.Language)
		if err != nil {
			return nil, err
		}
		existing, err := j.Movies.ExistingIDsIn(listed)
		if err != nil {
			return nil, err
		}
		return diffIDs(listed, idSet(existing)), nil

	case OpSpecificIDs:
		if len(opts.IDs) == 0 {
			return nil, fmt.Errorf("operation %s requires explicit IDs", OpSpecificIDs)
		}
		return opts.IDs, nil

	default:
		return nil, fmt.Errorf("unsupported movie operation %q", opts.Operation)
	}
}

// resolveDependencies creates every person, company and collection referenced
// by the batch that does not exist locally yet, and reports the IDs that
// could not be fetched.
func (j *MovieJob) resolveDependencies(ctx context.Context, details []tmdb.MovieDetails, refs *RefCache, opts MovieOptions) (movieDeps, error) {
	personSet := make(map[int64]struct{})
	companySet := make(map[int64]struct{})
	collectionSet := make(map[int64]struct{})
	for _, d := range details {
		if d.Credits != nil {
			for _, c := range d.Credits.Cast {
				personSet[c.ID] = struct{}{}
			}
			for _, c := range d.Credits.Crew {
				personSet[c.ID] = struct{}{}
			}
		}
		for _, c := range d.ProductionCompanies {
			companySet[c.ID] = struct{}{}
		}
		if d.BelongsToCollection != nil {
			collectionSet[d.BelongsToCollection.ID] = struct{}{}
		}
	}

	deps := movieDeps{
		failedPeople:      make(map[int64]struct{}),
		failedCompanies:   make(map[int64]struct{}),
		failedCollections: make(map[int64]struct{}),
	}
	now := time.Now().UTC()

	missingPeople, err := j.missingIDs(personSet, j.People.ExistingIDsIn)
	if err != nil {
		return deps, err
	}
	if len(missingPeople) > 0 {
		fetched, failed := j.Client.PeopleByID(ctx, missingPeople, opts.BatchSize, opts.Language)
		inFlight := make(map[string]struct{})
		people := make([]models.Person, 0, len(fetched))
		for _, pd := range fetched {
			person, err := buildPerson(pd, now, true, j.People.SlugsWithPrefix, inFlight)
			if err != nil {
				return deps, err
			}
			people = append(people, person)
		}
		if err := j.People.Upsert(people, true); err != nil {
			return deps, err
		}
		deps.failedPeople = idSet(failed)
	}

	missingCompanies, err := j.missingIDs(companySet, j.Companies.ExistingIDsIn)
	if err != nil {
		return deps, err
	}
	if len(missingCompanies) > 0 {
		fetched, failed := j.Client.CompaniesByID(ctx, missingCompanies, opts.BatchSize)
		inFlight := make(map[string]struct{})
		companies := make([]models.ProductionCompany, 0, len(fetched))
		for _, cd := range fetched {
			company, err := buildCompany(cd, refs, true, j.Companies.SlugsWithPrefix, inFlight)
			if err != nil {
				return deps, err
			}
			companies = append(companies, company)
		}
		if err := j.Companies.Upsert(companies, true); err != nil {
			return deps, err
		}
		deps.failedCompanies = idSet(failed)
	}

	missingCollections, err := j.missingIDs(collectionSet, j.Collections.ExistingIDsIn)
	if err != nil {
		return deps, err
	}
	if len(missingCollections) > 0 {
		fetched, failed := j.Client.CollectionsByID(ctx, missingCollections, opts.BatchSize, opts.Language)
		inFlight := make(map[string]struct{})
		collections := make([]models.Collection, 0, len(fetched))
		for _, cd := range fetched {
			collection, err := buildCollection(cd, true, j.Collections.SlugsWithPrefix, inFlight)
			if err != nil {
				return deps, err
			}
			collections = append(collections, collection)
		}
		if err := j.Collections.Upsert(collections, true); err != nil {
			return deps, err
		}
		deps.failedCollections = idSet(failed)
	}

	return deps, nil
}

func (j *MovieJob) missingIDs(referenced map[int64]struct{}, existingIDsIn func([]int64) ([]int64, error)) ([]int64, error) {
	if len(referenced) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(referenced))
	for id := range referenced {
		ids = append(ids, id)
	}
	existing, err := existingIDsIn(ids)
	if err != nil {
		return nil, err
	}
	return diffIDs(ids, idSet(existing)), nil
}

func (d movieDeps) blocks(details tmdb.MovieDetails) (bool, string) {
	if details.BelongsToCollection != nil {
		if _, ok := d.failedCollections[details.BelongsToCollection.ID]; ok {
			return true, fmt.Sprintf("collection %d unavailable", details.BelongsToCollection.ID)
		}
	}
	for _, c := range details.ProductionCompanies {
		if _, ok := d.failedCompanies[c.ID]; ok {
			return true, fmt.Sprintf("company %d unavailable", c.ID)
		}
	}
	if details.Credits != nil {
		for _, c := range details.Credits.Cast {
			if _, ok := d.failedPeople[c.ID]; ok {
				return true, fmt.Sprintf("person %d unavailable", c.ID)
			}
		}
		for _, c := range details.Credits.Crew {
			if _, ok := d.failedPeople[c.ID]; ok {
				return true, fmt.Sprintf("person %d unavailable", c.ID)
			}
		}
	}
	return false, ""
}

func (j *MovieJob) buildMovie(d tmdb.MovieDetails, refs *RefCache, now time.Time, isUpdate bool, inFlight map[string]struct{}) (models.Movie, error) {
	movie := models.Movie{
		TMDBID:         d.ID,
		Title:          d.Title,
		IMDBID:         d.IMDBID,
		ReleaseDate:    parseAPIDate(d.ReleaseDate),
		OriginalTitle:  d.OriginalTitle,
		Overview:       d.Overview,
		Tagline:        d.Tagline,
		PosterPath:     d.PosterPath,
		BackdropPath:   d.BackdropPath,
		Status:         models.StatusFromName(d.Status),
		Budget:         d.Budget,
		Revenue:        d.Revenue,
		Runtime:        d.Runtime,
		TMDBPopularity: d.Popularity,
		Adult:          d.Adult,
		LastUpdate:     now,
	}

	if d.OriginalLanguage != "" {
		if err := refs.EnsureLanguage(d.OriginalLanguage); err != nil {
			return movie, err
		}
		code := d.OriginalLanguage
		movie.OriginalLanguageCode = &code
	}
	if d.BelongsToCollection != nil {
		collectionID := d.BelongsToCollection.ID
		movie.CollectionID = &collectionID
	}

	genreIDs := make([]int64, 0, len(d.Genres))
	for _, g := range d.Genres {
		genreIDs = append(genreIDs, g.ID)
	}
	movie.Categorize(genreIDs)

	if !isUpdate {
		movie.CreatedAt = &now
		slug, err := utils.UniqueSlug(d.Title, j.Movies.SlugsWithPrefix, inFlight)
		if err != nil {
			return movie, fmt.Errorf("failed to allocate slug for movie %d: %w", d.ID, err)
		}
		movie.Slug = slug
	}
	return movie, nil
}

// collectRelations appends the junction rows for one movie payload. Genre,
// language and country references are created on the fly through the cache.
func collectRelations(d tmdb.MovieDetails, refs *RefCache, relations *repository.MovieRelations) error {
	for _, g := range d.Genres {
		if err := refs.EnsureGenre(g.ID, g.Name); err != nil {
			return err
		}
		relations.Genres = append(relations.Genres, models.MovieGenre{MovieID: d.ID, GenreID: g.ID})
	}
	for _, l := range d.SpokenLanguages {
		if l.ISO639_1 == "" {
			continue
		}
		if err := refs.EnsureLanguage(l.ISO639_1); err != nil {
			return err
		}
		relations.SpokenLanguages = append(relations.SpokenLanguages, models.MovieSpokenLanguage{MovieID: d.ID, LanguageCode: l.ISO639_1})
	}
	for _, code := range d.OriginCountry {
		if code == "" {
			continue
		}
		if err := refs.EnsureCountry(code); err != nil {
			return err
		}
		relations.OriginCountries = append(relations.OriginCountries, models.MovieOriginCountry{MovieID: d.ID, CountryCode: code})
	}
	for _, c := range d.ProductionCountries {
		if c.ISO3166_1 == "" {
			continue
		}
		if err := refs.EnsureCountry(c.ISO3166_1); err != nil {
			return err
		}
		relations.ProductionCountries = append(relations.ProductionCountries, models.MovieProductionCountry{MovieID: d.ID, CountryCode: c.ISO3166_1})
	}
	for _, c := range d.ProductionCompanies {
		relations.ProductionCompanies = append(relations.ProductionCompanies, models.MovieProductionCompany{MovieID: d.ID, CompanyID: c.ID})
	}
	if d.Credits != nil {
		for _, c := range d.Credits.Cast {
			relations.Cast = append(relations.Cast, models.MovieCast{
				MovieID:   d.ID,
				PersonID:  c.ID,
				Character: c.Character,
				Ord:       c.Order,
			})
		}
		for _, c := range d.Credits.Crew {
			relations.Crew = append(relations.Crew, models.MovieCrew{
				MovieID:    d.ID,
				PersonID:   c.ID,
				Department: c.Department,
				Job:        c.Job,
			})
		}
	}
	return nil
}
