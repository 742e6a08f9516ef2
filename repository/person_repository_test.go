package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moviedbbackend/models"
)

func TestRecomputeRoleCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPersonRepository(db)
	movies := NewMovieRepository(db)

	require.NoError(t, repo.Upsert([]models.Person{testPerson(1, "keanu-reeves")}, true))

	removed := testMovie(30, "gone")
	removed.RemovedFromTMDB = true
	require.NoError(t, movies.Upsert([]models.Movie{
		testMovie(10, "first"), testMovie(20, "second"), removed,
	}, true))

	require.NoError(t, db.Create(&[]models.MovieCast{
		{MovieID: 10, PersonID: 1, Character: "Neo"},
		{MovieID: 10, PersonID: 1, Character: "Thomas Anderson"}, // same movie, counted once
		{MovieID: 30, PersonID: 1, Character: "Gone"},            // removed movie, not counted
	}).Error)
	require.NoError(t, db.Create(&[]models.MovieCrew{
		{MovieID: 20, PersonID: 1, Department: "Production", Job: "Producer"},
	}).Error)

	affected, err := repo.RecomputeRoleCounts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	var stored models.Person
	require.NoError(t, db.First(&stored, "tmdb_id = ?", 1).Error)
	assert.Equal(t, int64(1), stored.CastRolesCount)
	assert.Equal(t, int64(1), stored.CrewRolesCount)
}

func TestPersonStaleIDs(t *testing.T) {
	repo := NewPersonRepository(setupTestDB(t))

	old := testPerson(1, "old-person")
	old.LastUpdate = time.Now().UTC().AddDate(0, 0, -7)
	fresh := testPerson(2, "fresh-person")
	require.NoError(t, repo.Upsert([]models.Person{old, fresh}, true))

	stale, err := repo.StaleIDs([]int64{1, 2}, time.Now().UTC().AddDate(0, 0, -2))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, stale)
}

func TestPersonSlugsWithPrefix(t *testing.T) {
	repo := NewPersonRepository(setupTestDB(t))

	require.NoError(t, repo.Upsert([]models.Person{
		testPerson(1, "john-smith"),
		testPerson(2, "john-smith-1"),
		testPerson(3, "jane-doe"),
	}, true))

	slugs, err := repo.SlugsWithPrefix("john-smith")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"john-smith", "john-smith-1"}, slugs)
}
