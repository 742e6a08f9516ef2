package repository

import (
	"time"

	"github.com/avoronov/moviedbbackend/models"
)

// CountryRepositoryInterface defines the methods for country data operations
type CountryRepositoryInterface interface {
	AllCodes() ([]string, error)
	Create(country *models.Country) error
	UpsertBatch(countries []models.Country, includeCreateOnly bool) error
	SlugsWithPrefix(prefix string) ([]string, error)
}

// LanguageRepositoryInterface defines the methods for language data operations
type LanguageRepositoryInterface interface {
	AllCodes() ([]string, error)
	Create(language *models.Language) error
	UpsertBatch(languages []models.Language, includeCreateOnly bool) error
	SlugsWithPrefix(prefix string) ([]string, error)
}

// GenreRepositoryInterface defines the methods for genre data operations
type GenreRepositoryInterface interface {
	AllIDs() ([]int64, error)
	Create(genre *models.Genre) error
	UpsertBatch(genres []models.Genre, includeCreateOnly bool) error
	SlugsWithPrefix(prefix string) ([]string, error)
}

// CompanyRepositoryInterface defines the methods for production company data operations
type CompanyRepositoryInterface interface {
	ExistingIDs() ([]int64, error)
	ExistingIDsIn(ids []int64) ([]int64, error)
	NonRemovedIDs() ([]int64, error)
	Upsert(companies []models.ProductionCompany, includeCreateOnly bool) error
	MarkRemoved(ids []int64) (int64, error)
	SlugsWithPrefix(prefix string) ([]string, error)
	RecomputeMovieCounts() (int64, error)
}

// CollectionRepositoryInterface defines the methods for collection data operations
type CollectionRepositoryInterface interface {
	ExistingIDs() ([]int64, error)
	ExistingIDsIn(ids []int64) ([]int64, error)
	NonRemovedIDs() ([]int64, error)
	Upsert(collections []models.Collection, includeCreateOnly bool) error
	MarkRemoved(ids []int64) (int64, error)
	SlugsWithPrefix(prefix string) ([]string, error)
	RecomputeMoviesReleased() (int64, error)
	RecomputeAvgPopularity() (int64, error)
}

// PersonRepositoryInterface defines the methods for person data operations
type PersonRepositoryInterface interface {
	ExistingIDs() ([]int64, error)
	ExistingIDsIn(ids []int64) ([]int64, error)
	StaleIDs(ids []int64, before time.Time) ([]int64, error)
	NonRemovedIDs() ([]int64, error)
	Upsert(people []models.Person, includeCreateOnly bool) error
	MarkRemoved(ids []int64) (int64, error)
	SlugsWithPrefix(prefix string) ([]string, error)
	UpdatePopularity(popularity map[int64]float64) (int64, error)
	RecomputeRoleCounts() (int64, error)
}

// MovieRepositoryInterface defines the methods for movie data operations
type MovieRepositoryInterface interface {
	ExistingIDs() ([]int64, error)
	ExistingIDsIn(ids []int64) ([]int64, error)
	StaleIDs(ids []int64, before time.Time) ([]int64, error)
	NonRemovedIDs() ([]int64, error)
	Upsert(movies []models.Movie, includeCreateOnly bool) error
	ReplaceRelations(movieIDs []int64, relations MovieRelations) error
	MarkRemoved(ids []int64) (int64, error)
	SlugsWithPrefix(prefix string) ([]string, error)
	UpdatePopularity(popularity map[int64]float64) (int64, error)
	MarkAdultFromCollections() (int64, error)
	MarkAdultFromCompanies() (int64, error)
}
