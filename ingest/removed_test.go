package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
)

func TestRemovedMarksOnlyConfirmedFailures(t *testing.T) {
	// export still lists movie 1; movies 2 and 3 are removal candidates
	exports := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(gzipExport(t, `{"id": 1}`))
	}))
	defer exports.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/2":
			// candidate that really disappeared
			http.NotFound(w, r)
		case "/movie/3":
			// candidate that was only missing from the export
			json.NewEncoder(w).Encode(map[string]any{"id": 3, "title": "Still Here"})
		default:
			t.Errorf("unexpected confirmation fetch for %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer api.Close()

	db := setupTestDB(t)
	movies := repository.NewMovieRepository(db)
	require.NoError(t, movies.Upsert([]models.Movie{
		testSeedMovie(1, "listed"), testSeedMovie(2, "gone"), testSeedMovie(3, "unlisted"),
	}, true))

	job := RemovedJob{
		Client:     testClient(api.URL),
		Exporter:   testExporter(exports.URL),
		Movies:     movies,
		FetchBatch: 10,
	}
	require.NoError(t, job.Run(context.Background(), "movie", ""))

	nonRemoved, err := movies.NonRemovedIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 3}, nonRemoved)
}

func TestRemovedExportFailureIsSoftNoOp(t *testing.T) {
	exports := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer exports.Close()

	db := setupTestDB(t)
	movies := repository.NewMovieRepository(db)
	require.NoError(t, movies.Upsert([]models.Movie{testSeedMovie(1, "kept")}, true))

	job := RemovedJob{
		Client:     testClient("http://127.0.0.1:0"),
		Exporter:   testExporter(exports.URL),
		Movies:     movies,
		FetchBatch: 10,
	}
	require.NoError(t, job.Run(context.Background(), "movie", ""))

	nonRemoved, err := movies.NonRemovedIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, nonRemoved)
}

func TestRemovedRejectsUnknownMediaType(t *testing.T) {
	job := RemovedJob{FetchBatch: 10}
	err := job.Run(context.Background(), "genre", "")
	assert.Error(t, err)
}
