package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
	"github.com/avoronov/moviedbbackend/tmdb"
	"github.com/avoronov/moviedbbackend/utils"
)

// GenreJob refreshes the full genre list from the TMDB configuration
// endpoint. Genres are never removed locally.
type GenreJob struct {
	Client *tmdb.Client
	Genres repository.GenreRepositoryInterface
}

func (j *GenreJob) Run(ctx context.Context, language string) error {
	refs, err := j.Client.Genres(ctx, language)
	if err != nil {
		return fmt.Errorf("failed to fetch genre list: %w", err)
	}

	knownIDs, err := j.Genres.AllIDs()
	if err != nil {
		return err
	}
	known := idSet(knownIDs)
	inFlight := make(map[string]struct{})

	var creates, updates []models.Genre
	for _, ref := range refs {
		genre := models.Genre{TMDBID: ref.ID, Name: ref.Name}
		if _, ok := known[ref.ID]; ok {
			updates = append(updates, genre)
			continue
		}
		genre.Slug, err = utils.UniqueSlug(ref.Name, j.Genres.SlugsWithPrefix, inFlight)
		if err != nil {
			return fmt.Errorf("failed to allocate slug for genre %q: %w", ref.Name, err)
		}
		creates = append(creates, genre)
	}

	if err := j.Genres.UpsertBatch(creates, true); err != nil {
		return err
	}
	if err := j.Genres.UpsertBatch(updates, false); err != nil {
		return err
	}
	log.Printf("genres: %d created, %d updated", len(creates), len(updates))
	return nil
}

// CountryJob refreshes the full ISO 3166-1 country list.
type CountryJob struct {
	Client    *tmdb.Client
	Countries repository.CountryRepositoryInterface
}

func (j *CountryJob) Run(ctx context.Context, language string) error {
	listings, err := j.Client.Countries(ctx, language)
	if err != nil {
		return fmt.Errorf("failed to fetch country list: %w", err)
	}

	knownCodes, err := j.Countries.AllCodes()
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(knownCodes))
	for _, code := range knownCodes {
		known[code] = struct{}{}
	}
	inFlight := make(map[string]struct{})

	var creates, updates []models.Country
	for _, listing := range listings {
		country := models.Country{
			Code:      listing.Code,
			Name:      listing.EnglishName,
			AliasName: listing.NativeName,
		}
		if _, ok := known[listing.Code]; ok {
			updates = append(updates, country)
			continue
		}
		country.Slug, err = utils.UniqueSlug(listing.EnglishName, j.Countries.SlugsWithPrefix, inFlight)
		if err != nil {
			return fmt.Errorf("failed to allocate slug for country %q: %w", listing.EnglishName, err)
		}
		creates = append(creates, country)
	}

	if err := j.Countries.UpsertBatch(creates, true); err != nil {
		return err
	}
	if err := j.Countries.UpsertBatch(updates, false); err != nil {
		return err
	}
	log.Printf("countries: %d created, %d updated", len(creates), len(updates))
	return nil
}

// LanguageJob refreshes the full ISO 639-1 language list.
type LanguageJob struct {
	Client    *tmdb.Client
	Languages repository.LanguageRepositoryInterface
}

func (j *LanguageJob) Run(ctx context.Context) error {
	listings, err := j.Client.Languages(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch language list: %w", err)
	}

	knownCodes, err := j.Languages.AllCodes()
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(knownCodes))
	for _, code := range knownCodes {
		known[code] = struct{}{}
	}
	inFlight := make(map[string]struct{})

	var creates, updates []models.Language
	for _, listing := range listings {
		language := models.Language{Code: listing.Code, Name: listing.EnglishName}
		if _, ok := known[listing.Code]; ok {
			updates = append(updates, language)
			continue
		}
		language.Slug, err = utils.UniqueSlug(listing.EnglishName, j.Languages.SlugsWithPrefix, inFlight)
		if err != nil {
			return fmt.Errorf("failed to allocate slug for language %q: %w", listing.EnglishName, err)
		}
		creates = append(creates, language)
	}

	if err := j.Languages.UpsertBatch(creates, true); err != nil {
		return err
	}
	if err := j.Languages.UpsertBatch(updates, false); err != nil {
		return err
	}
	log.Printf("languages: %d created, %d updated", len(creates), len(updates))
	return nil
}
