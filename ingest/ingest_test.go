package ingest

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avoronov/moviedbbackend/config"
	"github.com/avoronov/moviedbbackend/database"
	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/tmdb"
)

func testSeedMovie(id int64, slug string) models.Movie {
	return models.Movie{
		TMDBID:     id,
		Title:      "Movie " + slug,
		Status:     models.StatusReleased,
		LastUpdate: time.Now().UTC(),
		Slug:       slug,
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second connection to :memory: would be a second empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

func testClient(apiURL string) *tmdb.Client {
	return tmdb.NewClient(config.Config{
		AccessToken:    "test-token",
		APIBaseURL:     apiURL,
		RateLimit:      1000,
		RequestTimeout: 2 * time.Second,
	})
}

func testExporter(exportsURL string) *tmdb.IDExporter {
	return tmdb.NewIDExporter(config.Config{
		ExportsBaseURL: exportsURL,
		ExportTimeout:  2 * time.Second,
	})
}

func gzipExport(t *testing.T, lines ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := fmt.Fprintln(gz, line)
		require.NoError(t, err)
	}
	require.NoError(t, gz.Close())
	return buf.Bytes()
}
