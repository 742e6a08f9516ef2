package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avoronov/moviedbbackend/models"
)

const (
	insertBatchSize = 500
	// keep IN (...) lists well under the sqlite bound-variable limit
	idChunkSize = 500
)

// bulkUpsert performs a single logical insert-or-update for rows, keyed by
// conflictColumn. The overwritten column set comes from the model's patch
// spec; create-only columns join it only when includeCreateOnly is set.
func bulkUpsert[T models.PatchSpec](db *gorm.DB, conflictColumn string, rows []T, includeCreateOnly bool) error {
	if len(rows) == 0 {
		return nil
	}

	var spec T
	columns := spec.UpdateColumns()
	if includeCreateOnly {
		columns = append(columns, spec.CreateOnlyColumns()...)
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: conflictColumn}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).CreateInBatches(&rows, insertBatchSize).Error
}

// updatePopularity loads the stored popularity for the given IDs and
// rewrites only the rows whose value actually changed, inside one
// transaction.
func updatePopularity(db *gorm.DB, model any, popularity map[int64]float64) (int64, error) {
	ids := make([]int64, 0, len(popularity))
	for id := range popularity {
		ids = append(ids, id)
	}

	type idPop struct {
		TMDBID         int64   `gorm:"column:tmdb_id"`
		TMDBPopularity float64 `gorm:"column:tmdb_popularity"`
	}

	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, chunk := range chunkIDs(ids) {
			var rows []idPop
			err := tx.Model(model).Select("tmdb_id", "tmdb_popularity").Where("tmdb_id IN ?", chunk).Find(&rows).Error
			if err != nil {
				return fmt.Errorf("failed to load stored popularity: %w", err)
			}
			for _, row := range rows {
				want := popularity[row.TMDBID]
				if row.TMDBPopularity == want {
					continue
				}
				result := tx.Model(model).Where("tmdb_id = ?", row.TMDBID).Update("tmdb_popularity", want)
				if result.Error != nil {
					return fmt.Errorf("failed to update popularity for ID %d: %w", row.TMDBID, result.Error)
				}
				affected += result.RowsAffected
			}
		}
		return nil
	})
	return affected, err
}

func chunkIDs(ids []int64) [][]int64 {
	if len(ids) == 0 {
		return nil
	}
	chunks := make([][]int64, 0, len(ids)/idChunkSize+1)
	for start := 0; start < len(ids); start += idChunkSize {
		end := start + idChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
