package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avoronov/moviedbbackend/models"
)

// InitGormDB initializes and returns a GORM database instance for the
// configured driver (sqlite for local runs, postgres in production)
func InitGormDB(driver, dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// AutoMigrateModels migrates the full ingestion schema. Join tables are
// registered first so the explicit join-row models back the many-to-many
// relations instead of gorm-generated tables.
func AutoMigrateModels(db *gorm.DB) error {
	joinTables := []struct {
		model any
		field string
		join  any
	}{
		{&models.Movie{}, "Genres", &models.MovieGenre{}},
		{&models.Movie{}, "SpokenLanguages", &models.MovieSpokenLanguage{}},
		{&models.Movie{}, "OriginCountries", &models.MovieOriginCountry{}},
		{&models.Movie{}, "ProductionCountries", &models.MovieProductionCountry{}},
		{&models.Movie{}, "ProductionCompanies", &models.MovieProductionCompany{}},
	}
	for _, jt := range joinTables {
		if err := db.SetupJoinTable(jt.model, jt.field, jt.join); err != nil {
			return fmt.Errorf("failed to set up join table for %s: %w", jt.field, err)
		}
	}

	err := db.AutoMigrate(
		&models.Country{},
		&models.Language{},
		&models.Genre{},
		&models.ProductionCompany{},
		&models.Collection{},
		&models.Person{},
		&models.Movie{},
		&models.MovieCast{},
		&models.MovieCrew{},
		&models.MovieGenre{},
		&models.MovieSpokenLanguage{},
		&models.MovieOriginCountry{},
		&models.MovieProductionCountry{},
		&models.MovieProductionCompany{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}
	return nil
}
