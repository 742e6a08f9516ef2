package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
)

func TestCollectionDailyExportCreatesRow(t *testing.T) {
	exports := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/collection_ids_"))
		w.Write(gzipExport(t, `{"id": 1}`))
	}))
	defer exports.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collection/1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":            1,
			"name":          "Test Collection",
			"overview":      "An overview.",
			"poster_path":   "/poster.jpg",
			"backdrop_path": "/backdrop.jpg",
		})
	}))
	defer api.Close()

	db := setupTestDB(t)
	job := CollectionJob{
		Client:      testClient(api.URL),
		Exporter:    testExporter(exports.URL),
		Collections: repository.NewCollectionRepository(db),
	}

	opts := CollectionOptions{Operation: OpDailyExport, BatchSize: 10, Create: true}
	require.NoError(t, job.Run(context.Background(), opts))

	var stored models.Collection
	require.NoError(t, db.First(&stored, "tmdb_id = ?", 1).Error)
	assert.Equal(t, "Test Collection", stored.Name)
	assert.Equal(t, "An overview.", stored.Overview)
	assert.Equal(t, "/poster.jpg", stored.PosterPath)
	assert.Equal(t, "test-collection", stored.Slug)

	// a second create run has nothing left to do
	require.NoError(t, job.Run(context.Background(), opts))
	var count int64
	require.NoError(t, db.Model(&models.Collection{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCollectionExportFailureIsSoftNoOp(t *testing.T) {
	exports := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer exports.Close()

	db := setupTestDB(t)
	job := CollectionJob{
		Client:      testClient("http://127.0.0.1:0"),
		Exporter:    testExporter(exports.URL),
		Collections: repository.NewCollectionRepository(db),
	}

	err := job.Run(context.Background(), CollectionOptions{Operation: OpDailyExport, BatchSize: 10, Create: true})
	assert.NoError(t, err)
}

func TestCollectionSpecificIDsRefreshKeepsSlug(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": "Renamed Collection"})
	}))
	defer api.Close()

	db := setupTestDB(t)
	repo := repository.NewCollectionRepository(db)
	require.NoError(t, repo.Upsert([]models.Collection{
		{TMDBID: 1, Name: "Test Collection", Slug: "test-collection"},
	}, true))

	job := CollectionJob{Client: testClient(api.URL), Collections: repo}
	err := job.Run(context.Background(), CollectionOptions{Operation: OpSpecificIDs, IDs: []int64{1}, BatchSize: 10})
	require.NoError(t, err)

	var stored models.Collection
	require.NoError(t, db.First(&stored, "tmdb_id = ?", 1).Error)
	assert.Equal(t, "Renamed Collection", stored.Name)
	assert.Equal(t, "test-collection", stored.Slug)
}

func TestCollectionUnknownOperation(t *testing.T) {
	job := CollectionJob{Collections: repository.NewCollectionRepository(setupTestDB(t))}
	err := job.Run(context.Background(), CollectionOptions{Operation: "bogus"})
	assert.Error(t, err)
}
