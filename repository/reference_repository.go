package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/avoronov/moviedbbackend/models"
)

// CountryRepository handles database operations for Country reference rows
type CountryRepository struct {
	DB *gorm.DB
}

func NewCountryRepository(db *gorm.DB) *CountryRepository {
	return &CountryRepository{DB: db}
}

// AllCodes returns every known country code; used to seed the run-scoped
// reference cache.
func (r *CountryRepository) AllCodes() ([]string, error) {
	var codes []string
	if err := r.DB.Model(&models.Country{}).Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list country codes: %w", err)
	}
	return codes, nil
}

func (r *CountryRepository) Create(country *models.Country) error {
	if err := r.DB.Create(country).Error; err != nil {
		return fmt.Errorf("failed to create country %s: %w", country.Code, err)
	}
	return nil
}

func (r *CountryRepository) UpsertBatch(countries []models.Country, includeCreateOnly bool) error {
	if err := bulkUpsert(r.DB, "code", countries, includeCreateOnly); err != nil {
		return fmt.Errorf("failed to upsert countries: %w", err)
	}
	return nil
}

func (r *CountryRepository) SlugsWithPrefix(prefix string) ([]string, error) {
	var slugs []string
	err := r.DB.Model(&models.Country{}).Where("slug LIKE ?", prefix+"%").Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan country slugs: %w", err)
	}
	return slugs, nil
}

// LanguageRepository handles database operations for Language reference rows
type LanguageRepository struct {
	DB *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) *LanguageRepository {
	return &LanguageRepository{DB: db}
}

func (r *LanguageRepository) AllCodes() ([]string, error) {
	var codes []string
	if err := r.DB.Model(&models.Language{}).Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("failed to list language codes: %w", err)
	}
	return codes, nil
}

func (r *LanguageRepository) Create(language *models.Language) error {
	if err := r.DB.Create(language).Error; err != nil {
		return fmt.Errorf("failed to create language %s: %w", language.Code, err)
	}
	return nil
}

func (r *LanguageRepository) UpsertBatch(languages []models.Language, includeCreateOnly bool) error {
	if err := bulkUpsert(r.DB, "code", languages, includeCreateOnly); err != nil {
		return fmt.Errorf("failed to upsert languages: %w", err)
	}
	return nil
}

func (r *LanguageRepository) SlugsWithPrefix(prefix string) ([]string, error) {
	var slugs []string
	err := r.DB.Model(&models.Language{}).Where("slug LIKE ?", prefix+"%").Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan language slugs: %w", err)
	}
	return slugs, nil
}

// GenreRepository handles database operations for Genre reference rows
type GenreRepository struct {
	DB *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{DB: db}
}

func (r *GenreRepository) AllIDs() ([]int64, error) {
	var ids []int64
	if err := r.DB.Model(&models.Genre{}).Pluck("tmdb_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list genre IDs: %w", err)
	}
	return ids, nil
}

func (r *GenreRepository) Create(genre *models.Genre) error {
	if err := r.DB.Create(genre).Error; err != nil {
		return fmt.Errorf("failed to create genre %d: %w", genre.TMDBID, err)
	}
	return nil
}

func (r *GenreRepository) UpsertBatch(genres []models.Genre, includeCreateOnly bool) error {
	if err := bulkUpsert(r.DB, "tmdb_id", genres, includeCreateOnly); err != nil {
		return fmt.Errorf("failed to upsert genres: %w", err)
	}
	return nil
}

func (r *GenreRepository) SlugsWithPrefix(prefix string) ([]string, error) {
	var slugs []string
	err := r.DB.Model(&models.Genre{}).Where("slug LIKE ?", prefix+"%").Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan genre slugs: %w", err)
	}
	return slugs, nil
}
