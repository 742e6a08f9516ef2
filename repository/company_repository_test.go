package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moviedbbackend/models"
)

func TestCompanyExistingIDsIn(t *testing.T) {
	repo := NewCompanyRepository(setupTestDB(t))

	require.NoError(t, repo.Upsert([]models.ProductionCompany{
		{TMDBID: 1, Name: "Warner Bros.", Slug: "warner-bros"},
		{TMDBID: 2, Name: "A24", Slug: "a24"},
	}, true))

	existing, err := repo.ExistingIDsIn([]int64{1, 2, 3})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, existing)
}

func TestRecomputeMovieCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCompanyRepository(db)
	movies := NewMovieRepository(db)

	require.NoError(t, repo.Upsert([]models.ProductionCompany{
		{TMDBID: 1, Name: "Warner Bros.", Slug: "warner-bros"},
		{TMDBID: 2, Name: "A24", Slug: "a24"},
	}, true))

	removed := testMovie(30, "gone")
	removed.RemovedFromTMDB = true
	require.NoError(t, movies.Upsert([]models.Movie{
		testMovie(10, "first"), testMovie(20, "second"), removed,
	}, true))
	require.NoError(t, db.Create(&[]models.MovieProductionCompany{
		{MovieID: 10, CompanyID: 1},
		{MovieID: 20, CompanyID: 1},
		{MovieID: 30, CompanyID: 1}, // removed movie, must not count
	}).Error)

	affected, err := repo.RecomputeMovieCounts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var stored models.ProductionCompany
	require.NoError(t, db.First(&stored, "tmdb_id = ?", 1).Error)
	assert.Equal(t, int64(2), stored.MovieCount)

	// second run is a no-op
	affected, err = repo.RecomputeMovieCounts()
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestCompanyMarkRemoved(t *testing.T) {
	repo := NewCompanyRepository(setupTestDB(t))

	require.NoError(t, repo.Upsert([]models.ProductionCompany{
		{TMDBID: 1, Name: "Gone Studio", Slug: "gone-studio"},
		{TMDBID: 2, Name: "Still Here", Slug: "still-here"},
	}, true))

	affected, err := repo.MarkRemoved([]int64{1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	nonRemoved, err := repo.NonRemovedIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, nonRemoved)
}
