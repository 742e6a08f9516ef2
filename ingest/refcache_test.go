package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
)

func newRefCache(t *testing.T) (*RefCache, *repository.CountryRepository, *repository.GenreRepository) {
	db := setupTestDB(t)
	countries := repository.NewCountryRepository(db)
	languages := repository.NewLanguageRepository(db)
	genres := repository.NewGenreRepository(db)

	cache, err := NewRefCache(countries, languages, genres)
	require.NoError(t, err)
	return cache, countries, genres
}

func TestEnsureCountryCreatesPlaceholderOnce(t *testing.T) {
	cache, countries, _ := newRefCache(t)

	require.NoError(t, cache.EnsureCountry("US"))
	require.NoError(t, cache.EnsureCountry("US"))
	require.NoError(t, cache.EnsureCountry(""))

	codes, err := countries.AllCodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"US"}, codes)

	var stored models.Country
	require.NoError(t, countries.DB.First(&stored, "code = ?", "US").Error)
	assert.Equal(t, "unknown", stored.Name)
	assert.NotEmpty(t, stored.Slug)
}

func TestEnsurePlaceholderSlugsDoNotCollide(t *testing.T) {
	cache, countries, _ := newRefCache(t)

	require.NoError(t, cache.EnsureCountry("US"))
	require.NoError(t, cache.EnsureCountry("DE"))
	require.NoError(t, cache.EnsureLanguage("en"))

	slugs, err := countries.SlugsWithPrefix("unknown")
	require.NoError(t, err)
	assert.Len(t, slugs, 2)
	assert.NotEqual(t, slugs[0], slugs[1])
}

func TestEnsureGenreUsesPayloadName(t *testing.T) {
	cache, _, genres := newRefCache(t)

	require.NoError(t, cache.EnsureGenre(99, "Documentary"))
	require.NoError(t, cache.EnsureGenre(99, "Documentary"))

	var stored models.Genre
	require.NoError(t, genres.DB.First(&stored, "tmdb_id = ?", 99).Error)
	assert.Equal(t, "Documentary", stored.Name)
	assert.Equal(t, "documentary", stored.Slug)
}

func TestRefCacheSeedsFromDatabase(t *testing.T) {
	db := setupTestDB(t)
	countries := repository.NewCountryRepository(db)
	languages := repository.NewLanguageRepository(db)
	genres := repository.NewGenreRepository(db)
	require.NoError(t, countries.Create(&models.Country{Code: "US", Name: "United States", Slug: "united-states"}))

	cache, err := NewRefCache(countries, languages, genres)
	require.NoError(t, err)

	// already known, so no placeholder row is created
	require.NoError(t, cache.EnsureCountry("US"))
	var count int64
	require.NoError(t, db.Model(&models.Country{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
