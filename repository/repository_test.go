package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avoronov/moviedbbackend/database"
	"github.com/avoronov/moviedbbackend/models"
)

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

func testMovie(id int64, slug string) models.Movie {
	return models.Movie{
		TMDBID:     id,
		Title:      "Movie " + slug,
		Status:     models.StatusReleased,
		LastUpdate: time.Now().UTC(),
		Slug:       slug,
	}
}

func testPerson(id int64, slug string) models.Person {
	return models.Person{
		TMDBID:     id,
		Name:       "Person " + slug,
		LastUpdate: time.Now().UTC(),
		Slug:       slug,
	}
}
