package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/avoronov/moviedbbackend/models"
)

// PersonRepository handles database operations for Person rows
type PersonRepository struct {
	DB *gorm.DB
}

func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

func (r *PersonRepository) ExistingIDs() ([]int64, error) {
	var ids []int64
	if err := r.DB.Model(&models.Person{}).Pluck("tmdb_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list person IDs: %w", err)
	}
	return ids, nil
}

func (r *PersonRepository) ExistingIDsIn(ids []int64) ([]int64, error) {
	var existing []int64
	for _, chunk := range chunkIDs(ids) {
		var part []int64
		err := r.DB.Model(&models.Person{}).Where("tmdb_id IN ?", chunk).Pluck("tmdb_id", &part).Error
		if err != nil {
			return nil, fmt.Errorf("failed to filter existing person IDs: %w", err)
		}
		existing = append(existing, part...)
	}
	return existing, nil
}

// StaleIDs returns the subset of ids whose local row was last updated before
// the given instant and is not flagged removed. Used by update-changed runs
// to skip rows that are already current.
func (r *PersonRepository) StaleIDs(ids []int64, before time.Time) ([]int64, error) {
	var stale []int64
	for _, chunk := range chunkIDs(ids) {
		var part []int64
		err := r.DB.Model(&models.Person{}).
			Where("tmdb_id IN ? AND last_update < ? AND removed_from_tmdb = ?", chunk, before, false).
			Pluck("tmdb_id", &part).Error
		if err != nil {
			return nil, fmt.Errorf("failed to filter stale person IDs: %w", err)
		}
		stale = append(stale, part...)
	}
	return stale, nil
}

func (r *PersonRepository) NonRemovedIDs() ([]int64, error) {
	var ids []int64
	err := r.DB.Model(&models.Person{}).Where("removed_from_tmdb = ?", false).Pluck("tmdb_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list non-removed person IDs: %w", err)
	}
	return ids, nil
}

func (r *PersonRepository) Upsert(people []models.Person, includeCreateOnly bool) error {
	if err := bulkUpsert(r.DB, "tmdb_id", people, includeCreateOnly); err != nil {
		return fmt.Errorf("failed to upsert people: %w", err)
	}
	return nil
}

func (r *PersonRepository) MarkRemoved(ids []int64) (int64, error) {
	var affected int64
	for _, chunk := range chunkIDs(ids) {
		result := r.DB.Model(&models.Person{}).Where("tmdb_id IN ?", chunk).Update("removed_from_tmdb", true)
		if result.Error != nil {
			return affected, fmt.Errorf("failed to mark people removed: %w", result.Error)
		}
		affected += result.RowsAffected
	}
	return affected, nil
}

func (r *PersonRepository) SlugsWithPrefix(prefix string) ([]string, error) {
	var slugs []string
	err := r.DB.Model(&models.Person{}).Where("slug LIKE ?", prefix+"%").Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan person slugs: %w", err)
	}
	return slugs, nil
}

// UpdatePopularity writes new popularity values for the given IDs, skipping
// rows whose stored value already matches. Returns the number of rows
// changed.
func (r *PersonRepository) UpdatePopularity(popularity map[int64]float64) (int64, error) {
	return updatePopularity(r.DB, &models.Person{}, popularity)
}

// RecomputeRoleCounts refreshes the denormalized cast/crew role counts from
// the credit tables, counting distinct non-removed movies.
func (r *PersonRepository) RecomputeRoleCounts() (int64, error) {
	const castExpr = `(
		SELECT COUNT(DISTINCT mc.movie_id) FROM movie_cast mc
		JOIN movies m ON m.tmdb_id = mc.movie_id AND m.removed_from_tmdb = ?
		WHERE mc.person_id = people.tmdb_id
	)`
	const crewExpr = `(
		SELECT COUNT(DISTINCT mw.movie_id) FROM movie_crew mw
		JOIN movies m ON m.tmdb_id = mw.movie_id AND m.removed_from_tmdb = ?
		WHERE mw.person_id = people.tmdb_id
	)`

	result := r.DB.Exec(
		`UPDATE people SET cast_roles_count = `+castExpr+`, crew_roles_count = `+crewExpr+
			` WHERE cast_roles_count <> `+castExpr+` OR crew_roles_count <> `+crewExpr,
		false, false, false, false,
	)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to recompute role counts: %w", result.Error)
	}
	return result.RowsAffected, nil
}
