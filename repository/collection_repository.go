package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/avoronov/moviedbbackend/models"
)

// CollectionRepository handles database operations for Collection rows
type CollectionRepository struct {
	DB *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{DB: db}
}

func (r *CollectionRepository) ExistingIDs() ([]int64, error) {
	var ids []int64
	if err := r.DB.Model(&models.Collection{}).Pluck("tmdb_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list collection IDs: %w", err)
	}
	return ids, nil
}

func (r *CollectionRepository) ExistingIDsIn(ids []int64) ([]int64, error) {
	var existing []int64
	for _, chunk := range chunkIDs(ids) {
		var part []int64
		err := r.DB.Model(&models.Collection{}).Where("tmdb_id IN ?", chunk).Pluck("tmdb_id", &part).Error
		if err != nil {
			return nil, fmt.Errorf("failed to filter existing collection IDs: %w", err)
		}
		existing = append(existing, part...)
	}
	return existing, nil
}

func (r *CollectionRepository) NonRemovedIDs() ([]int64, error) {
	var ids []int64
	err := r.DB.Model(&models.Collection{}).Where("removed_from_tmdb = ?", false).Pluck("tmdb_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list non-removed collection IDs: %w", err)
	}
	return ids, nil
}

func (r *CollectionRepository) Upsert(collections []models.Collection, includeCreateOnly bool) error {
	if err := bulkUpsert(r.DB, "tmdb_id", collections, includeCreateOnly); err != nil {
		return fmt.Errorf("failed to upsert collections: %w", err)
	}
	return nil
}

func (r *CollectionRepository) MarkRemoved(ids []int64) (int64, error) {
	var affected int64
	for _, chunk := range chunkIDs(ids) {
		result := r.DB.Model(&models.Collection{}).Where("tmdb_id IN ?", chunk).Update("removed_from_tmdb", true)
		if result.Error != nil {
			return affected, fmt.Errorf("failed to mark collections removed: %w", result.Error)
		}
		affected += result.RowsAffected
	}
	return affected, nil
}

func (r *CollectionRepository) SlugsWithPrefix(prefix string) ([]string, error) {
	var slugs []string
	err := r.DB.Model(&models.Collection{}).Where("slug LIKE ?", prefix+"%").Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan collection slugs: %w", err)
	}
	return slugs, nil
}

// RecomputeMoviesReleased refreshes the denormalized count of released,
// non-removed member movies per collection.
func (r *CollectionRepository) RecomputeMoviesReleased() (int64, error) {
	const countExpr = `(
		SELECT COUNT(*) FROM movies m
		WHERE m.collection_id = collections.tmdb_id
		AND m.removed_from_tmdb = ? AND m.status = ?
	)`

	result := r.DB.Exec(
		`UPDATE collections SET movies_released = `+countExpr+` WHERE movies_released <> `+countExpr,
		false, int(models.StatusReleased), false, int(models.StatusReleased),
	)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to recompute movies released: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// RecomputeAvgPopularity refreshes the mean popularity of each collection's
// non-removed member movies.
func (r *CollectionRepository) RecomputeAvgPopularity() (int64, error) {
	const avgExpr = `COALESCE((
		SELECT AVG(m.tmdb_popularity) FROM movies m
		WHERE m.collection_id = collections.tmdb_id AND m.removed_from_tmdb = ?
	), 0)`

	result := r.DB.Exec(
		`UPDATE collections SET avg_popularity = `+avgExpr+` WHERE avg_popularity <> `+avgExpr,
		false, false,
	)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to recompute collection avg popularity: %w", result.Error)
	}
	return result.RowsAffected, nil
}
