package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
)

func TestPopularityAppliesTopEntriesOnly(t *testing.T) {
	exports := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(gzipExport(t,
			`{"id": 1, "popularity": 5.0}`,
			`{"id": 2, "popularity": 80.0}`,
			`{"id": 3, "popularity": 40.0}`,
		))
	}))
	defer exports.Close()

	db := setupTestDB(t)
	movies := repository.NewMovieRepository(db)
	require.NoError(t, movies.Upsert([]models.Movie{
		testSeedMovie(1, "low"), testSeedMovie(2, "high"), testSeedMovie(3, "mid"),
	}, true))

	job := PopularityJob{Exporter: testExporter(exports.URL), Movies: movies}
	require.NoError(t, job.Run(context.Background(), "movie", "", 2))

	var high, low models.Movie
	require.NoError(t, db.First(&high, "tmdb_id = ?", 2).Error)
	require.NoError(t, db.First(&low, "tmdb_id = ?", 1).Error)

	// limit 2 keeps the two most popular entries; movie 1 fell outside it
	assert.Equal(t, 80.0, high.TMDBPopularity)
	assert.Zero(t, low.TMDBPopularity)
}

func TestPopularityRejectsUnknownMediaType(t *testing.T) {
	job := PopularityJob{}
	err := job.Run(context.Background(), "collection", "", 10)
	assert.Error(t, err)
}
