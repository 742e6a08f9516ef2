package ingest

import (
	"fmt"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
	"github.com/avoronov/moviedbbackend/utils"
)

// placeholderName fills reference rows created from a bare code; the next
// update_countries / update_languages run replaces it with the real name.
const placeholderName = "unknown"

// RefCache tracks which country, language and genre rows already exist so a
// single ingestion run can resolve references without re-querying per movie.
// It is built fresh at the start of each run and discarded afterwards.
type RefCache struct {
	countries repository.CountryRepositoryInterface
	languages repository.LanguageRepositoryInterface
	genres    repository.GenreRepositoryInterface

	countryCodes  map[string]struct{}
	languageCodes map[string]struct{}
	genreIDs      map[int64]struct{}

	// slugs allocated during this run but possibly not committed yet
	inFlightSlugs map[string]struct{}
}

func NewRefCache(countries repository.CountryRepositoryInterface, languages repository.LanguageRepositoryInterface, genres repository.GenreRepositoryInterface) (*RefCache, error) {
	countryCodes, err := countries.AllCodes()
	if err != nil {
		return nil, fmt.Errorf("failed to seed country cache: %w", err)
	}
	languageCodes, err := languages.AllCodes()
	if err != nil {
		return nil, fmt.Errorf("failed to seed language cache: %w", err)
	}
	genreIDs, err := genres.AllIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to seed genre cache: %w", err)
	}

	cache := &RefCache{
		countries:     countries,
		languages:     languages,
		genres:        genres,
		countryCodes:  make(map[string]struct{}, len(countryCodes)),
		languageCodes: make(map[string]struct{}, len(languageCodes)),
		genreIDs:      make(map[int64]struct{}, len(genreIDs)),
		inFlightSlugs: make(map[string]struct{}),
	}
	for _, code := range countryCodes {
		cache.countryCodes[code] = struct{}{}
	}
	for _, code := range languageCodes {
		cache.languageCodes[code] = struct{}{}
	}
	for _, id := range genreIDs {
		cache.genreIDs[id] = struct{}{}
	}
	return cache, nil
}

// EnsureCountry creates a placeholder country row for an unseen code.
func (c *RefCache) EnsureCountry(code string) error {
	if code == "" {
		return nil
	}
	if _, ok := c.countryCodes[code]; ok {
		return nil
	}

	slug, err := utils.UniqueSlug(placeholderName, c.countries.SlugsWithPrefix, c.inFlightSlugs)
	if err != nil {
		return fmt.Errorf("failed to allocate slug for country %s: %w", code, err)
	}
	country := models.Country{Code: code, Name: placeholderName, Slug: slug}
	if err := c.countries.Create(&country); err != nil {
		return fmt.Errorf("failed to create country %s: %w", code, err)
	}
	c.countryCodes[code] = struct{}{}
	return nil
}

// EnsureLanguage creates a placeholder language row for an unseen code.
func (c *RefCache) EnsureLanguage(code string) error {
	if code == "" {
		return nil
	}
	if _, ok := c.languageCodes[code]; ok {
		return nil
	}

	slug, err := utils.UniqueSlug(placeholderName, c.languages.SlugsWithPrefix, c.inFlightSlugs)
	if err != nil {
		return fmt.Errorf("failed to allocate slug for language %s: %w", code, err)
	}
	language := models.Language{Code: code, Name: placeholderName, Slug: slug}
	if err := c.languages.Create(&language); err != nil {
		return fmt.Errorf("failed to create language %s: %w", code, err)
	}
	c.languageCodes[code] = struct{}{}
	return nil
}

// EnsureGenre creates a genre row for an unseen ID. Movie payloads carry the
// genre name, so no placeholder is needed.
func (c *RefCache) EnsureGenre(id int64, name string) error {
	if _, ok := c.genreIDs[id]; ok {
		return nil
	}
	if name == "" {
		name = placeholderName
	}

	slug, err := utils.UniqueSlug(name, c.genres.SlugsWithPrefix, c.inFlightSlugs)
	if err != nil {
		return fmt.Errorf("failed to allocate slug for genre %d: %w", id, err)
	}
	genre := models.Genre{TMDBID: id, Name: name, Slug: slug}
	if err := c.genres.Create(&genre); err != nil {
		return fmt.Errorf("failed to create genre %d: %w", id, err)
	}
	c.genreIDs[id] = struct{}{}
	return nil
}
