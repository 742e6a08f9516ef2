package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moviedbbackend/models"
)

func TestGenreUpsertBatchKeepsSlugOnUpdate(t *testing.T) {
	repo := NewGenreRepository(setupTestDB(t))

	require.NoError(t, repo.UpsertBatch([]models.Genre{
		{TMDBID: 878, Name: "Science-Fiction", Slug: "science-fiction"},
	}, true))
	require.NoError(t, repo.UpsertBatch([]models.Genre{
		{TMDBID: 878, Name: "Science Fiction", Slug: "renamed"},
	}, false))

	var stored models.Genre
	require.NoError(t, repo.DB.First(&stored, "tmdb_id = ?", 878).Error)
	assert.Equal(t, "Science Fiction", stored.Name)
	assert.Equal(t, "science-fiction", stored.Slug)

	ids, err := repo.AllIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{878}, ids)
}

func TestCountryUpsertBatchUpdatesNames(t *testing.T) {
	repo := NewCountryRepository(setupTestDB(t))

	require.NoError(t, repo.UpsertBatch([]models.Country{
		{Code: "DE", Name: "unknown", Slug: "unknown"},
	}, true))
	require.NoError(t, repo.UpsertBatch([]models.Country{
		{Code: "DE", Name: "Germany", AliasName: "Deutschland", Slug: "ignored"},
	}, false))

	var stored models.Country
	require.NoError(t, repo.DB.First(&stored, "code = ?", "DE").Error)
	assert.Equal(t, "Germany", stored.Name)
	assert.Equal(t, "Deutschland", stored.AliasName)
	assert.Equal(t, "unknown", stored.Slug)
}

func TestLanguageCreateAndAllCodes(t *testing.T) {
	repo := NewLanguageRepository(setupTestDB(t))

	require.NoError(t, repo.Create(&models.Language{Code: "en", Name: "English", Slug: "english"}))
	require.NoError(t, repo.Create(&models.Language{Code: "fr", Name: "French", Slug: "french"}))

	codes, err := repo.AllCodes()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "fr"}, codes)
}
