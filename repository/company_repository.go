package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/avoronov/moviedbbackend/models"
)

// CompanyRepository handles database operations for ProductionCompany rows
type CompanyRepository struct {
	DB *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

// ExistingIDs returns every known company TMDB ID.
func (r *CompanyRepository) ExistingIDs() ([]int64, error) {
	var ids []int64
	if err := r.DB.Model(&models.ProductionCompany{}).Pluck("tmdb_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list company IDs: %w", err)
	}
	return ids, nil
}

// ExistingIDsIn returns the subset of ids already present locally.
func (r *CompanyRepository) ExistingIDsIn(ids []int64) ([]int64, error) {
	var existing []int64
	for _, chunk := range chunkIDs(ids) {
		var part []int64
		err := r.DB.Model(&models.ProductionCompany{}).Where("tmdb_id IN ?", chunk).Pluck("tmdb_id", &part).Error
		if err != nil {
			return nil, fmt.Errorf("failed to filter existing company IDs: %w", err)
		}
		existing = append(existing, part...)
	}
	return existing, nil
}

// NonRemovedIDs returns the IDs of companies not yet flagged as removed.
func (r *CompanyRepository) NonRemovedIDs() ([]int64, error) {
	var ids []int64
	err := r.DB.Model(&models.ProductionCompany{}).Where("removed_from_tmdb = ?", false).Pluck("tmdb_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list non-removed company IDs: %w", err)
	}
	return ids, nil
}

// Upsert bulk-writes companies keyed by tmdb_id.
func (r *CompanyRepository) Upsert(companies []models.ProductionCompany, includeCreateOnly bool) error {
	if err := bulkUpsert(r.DB, "tmdb_id", companies, includeCreateOnly); err != nil {
		return fmt.Errorf("failed to upsert companies: %w", err)
	}
	return nil
}

// MarkRemoved flags the given companies as removed upstream.
func (r *CompanyRepository) MarkRemoved(ids []int64) (int64, error) {
	var affected int64
	for _, chunk := range chunkIDs(ids) {
		result := r.DB.Model(&models.ProductionCompany{}).Where("tmdb_id IN ?", chunk).Update("removed_from_tmdb", true)
		if result.Error != nil {
			return affected, fmt.Errorf("failed to mark companies removed: %w", result.Error)
		}
		affected += result.RowsAffected
	}
	return affected, nil
}

func (r *CompanyRepository) SlugsWithPrefix(prefix string) ([]string, error) {
	var slugs []string
	err := r.DB.Model(&models.ProductionCompany{}).Where("slug LIKE ?", prefix+"%").Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan company slugs: %w", err)
	}
	return slugs, nil
}

// RecomputeMovieCounts refreshes the denormalized movie_count from the
// junction table, ignoring removed movies. Only rows whose count actually
// changed are touched.
func (r *CompanyRepository) RecomputeMovieCounts() (int64, error) {
	const countExpr = `(
		SELECT COUNT(*) FROM movie_production_companies mpc
		JOIN movies m ON m.tmdb_id = mpc.movie_id AND m.removed_from_tmdb = ?
		WHERE mpc.company_id = production_companies.tmdb_id
	)`

	result := r.DB.Exec(
		`UPDATE production_companies SET movie_count = `+countExpr+` WHERE movie_count <> `+countExpr,
		false, false,
	)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to recompute company movie counts: %w", result.Error)
	}
	return result.RowsAffected, nil
}
