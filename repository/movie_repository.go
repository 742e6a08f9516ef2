package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avoronov/moviedbbackend/models"
)

// MovieRelations carries the freshly computed junction rows for a batch of
// movies. Upstream payloads are complete snapshots per movie, so the
// reconciler replaces the stored rows wholesale instead of diffing.
type MovieRelations struct {
	Genres              []models.MovieGenre
	SpokenLanguages     []models.MovieSpokenLanguage
	OriginCountries     []models.MovieOriginCountry
	ProductionCountries []models.MovieProductionCountry
	ProductionCompanies []models.MovieProductionCompany
	Cast                []models.MovieCast
	Crew                []models.MovieCrew
}

// MovieRepository handles database operations for Movie rows and their
// relationship tables
type MovieRepository struct {
	DB *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{DB: db}
}

func (r *MovieRepository) ExistingIDs() ([]int64, error) {
	var ids []int64
	if err := r.DB.Model(&models.Movie{}).Pluck("tmdb_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list movie IDs: %w", err)
	}
	return ids, nil
}

func (r *MovieRepository) ExistingIDsIn(ids []int64) ([]int64, error) {
	var existing []int64
	for _, chunk := range chunkIDs(ids) {
		var part []int64
		err := r.DB.Model(&models.Movie{}).Where("tmdb_id IN ?", chunk).Pluck("tmdb_id", &part).Error
		if err != nil {
			return nil, fmt.Errorf("failed to filter existing movie IDs: %w", err)
		}
		existing = append(existing, part...)
	}
	return existing, nil
}

// StaleIDs returns the subset of ids whose local row predates the given
// instant and is not flagged removed.
func (r *MovieRepository) StaleIDs(ids []int64, before time.Time) ([]int64, error) {
	var stale []int64
	for _, chunk := range chunkIDs(ids) {
		var part []int64
		err := r.DB.Model(&models.Movie{}).
			Where("tmdb_id IN ? AND last_update < ? AND removed_from_tmdb = ?", chunk, before, false).
			Pluck("tmdb_id", &part).Error
		if err != nil {
			return nil, fmt.Errorf("failed to filter stale movie IDs: %w", err)
		}
		stale = append(stale, part...)
	}
	return stale, nil
}

func (r *MovieRepository) NonRemovedIDs() ([]int64, error) {
	var ids []int64
	err := r.DB.Model(&models.Movie{}).Where("removed_from_tmdb = ?", false).Pluck("tmdb_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list non-removed movie IDs: %w", err)
	}
	return ids, nil
}

// Upsert bulk-writes movies keyed by tmdb_id. Create-only columns (slug,
// created_at, adult) join the conflict-update set only for create/backfill
// operations.
func (r *MovieRepository) Upsert(movies []models.Movie, includeCreateOnly bool) error {
	if len(movies) == 0 {
		return nil
	}
	// Omit associations: junction rows are replaced explicitly below, and
	// letting gorm walk the relation slices would double-write them.
	db := r.DB.Omit(clause.Associations)
	if err := bulkUpsert(db, "tmdb_id", movies, includeCreateOnly); err != nil {
		return fmt.Errorf("failed to upsert movies: %w", err)
	}
	return nil
}

// ReplaceRelations deletes every junction row belonging to the given movies
// and bulk-inserts the newly computed rows. Duplicate-key conflicts on
// insert are ignored; the same credit can legitimately appear twice in one
// upstream payload.
func (r *MovieRepository) ReplaceRelations(movieIDs []int64, relations MovieRelations) error {
	if len(movieIDs) == 0 {
		return nil
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		junctionModels := []any{
			&models.MovieGenre{},
			&models.MovieSpokenLanguage{},
			&models.MovieOriginCountry{},
			&models.MovieProductionCountry{},
			&models.MovieProductionCompany{},
			&models.MovieCast{},
			&models.MovieCrew{},
		}
		for _, model := range junctionModels {
			for _, chunk := range chunkIDs(movieIDs) {
				if err := tx.Where("movie_id IN ?", chunk).Delete(model).Error; err != nil {
					return fmt.Errorf("failed to delete junction rows: %w", err)
				}
			}
		}

		insert := func(rows any, n int) error {
			if n == 0 {
				return nil
			}
			return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, insertBatchSize).Error
		}

		if err := insert(&relations.Genres, len(relations.Genres)); err != nil {
			return fmt.Errorf("failed to insert genre links: %w", err)
		}
		if err := insert(&relations.SpokenLanguages, len(relations.SpokenLanguages)); err != nil {
			return fmt.Errorf("failed to insert spoken language links: %w", err)
		}
		if err := insert(&relations.OriginCountries, len(relations.OriginCountries)); err != nil {
			return fmt.Errorf("failed to insert origin country links: %w", err)
		}
		if err := insert(&relations.ProductionCountries, len(relations.ProductionCountries)); err != nil {
			return fmt.Errorf("failed to insert production country links: %w", err)
		}
		if err := insert(&relations.ProductionCompanies, len(relations.ProductionCompanies)); err != nil {
			return fmt.Errorf("failed to insert production company links: %w", err)
		}
		if err := insert(&relations.Cast, len(relations.Cast)); err != nil {
			return fmt.Errorf("failed to insert cast rows: %w", err)
		}
		if err := insert(&relations.Crew, len(relations.Crew)); err != nil {
			return fmt.Errorf("failed to insert crew rows: %w", err)
		}
		return nil
	})
}

func (r *MovieRepository) MarkRemoved(ids []int64) (int64, error) {
	var affected int64
	for _, chunk := range chunkIDs(ids) {
		result := r.DB.Model(&models.Movie{}).Where("tmdb_id IN ?", chunk).Update("removed_from_tmdb", true)
		if result.Error != nil {
			return affected, fmt.Errorf("failed to mark movies removed: %w", result.Error)
		}
		affected += result.RowsAffected
	}
	return affected, nil
}

func (r *MovieRepository) SlugsWithPrefix(prefix string) ([]string, error) {
	var slugs []string
	err := r.DB.Model(&models.Movie{}).Where("slug LIKE ?", prefix+"%").Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie slugs: %w", err)
	}
	return slugs, nil
}

// UpdatePopularity writes new popularity values for the given IDs, skipping
// rows whose stored value already matches.
func (r *MovieRepository) UpdatePopularity(popularity map[int64]float64) (int64, error) {
	return updatePopularity(r.DB, &models.Movie{}, popularity)
}

// MarkAdultFromCollections flags movies belonging to adult collections.
func (r *MovieRepository) MarkAdultFromCollections() (int64, error) {
	subquery := r.DB.Model(&models.Collection{}).Select("tmdb_id").Where("adult = ?", true)
	result := r.DB.Model(&models.Movie{}).
		Where("adult = ? AND collection_id IN (?)", false, subquery).
		Update("adult", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to propagate adult flag from collections: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// MarkAdultFromCompanies flags movies linked to adult production companies.
func (r *MovieRepository) MarkAdultFromCompanies() (int64, error) {
	subquery := r.DB.Model(&models.MovieProductionCompany{}).
		Select("movie_id").
		Where("company_id IN (?)", r.DB.Model(&models.ProductionCompany{}).Select("tmdb_id").Where("adult = ?", true))
	result := r.DB.Model(&models.Movie{}).
		Where("adult = ? AND tmdb_id IN (?)", false, subquery).
		Update("adult", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to propagate adult flag from companies: %w", result.Error)
	}
	return result.RowsAffected, nil
}
