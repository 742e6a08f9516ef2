package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/avoronov/moviedbbackend/repository"
	"github.com/avoronov/moviedbbackend/tmdb"
)

// PopularityJob refreshes popularity scores from the daily ID export instead
// of re-fetching full details. The export is sorted by popularity so the
// limit keeps the run to the entries that matter.
type PopularityJob struct {
	Exporter *tmdb.IDExporter
	Movies   repository.MovieRepositoryInterface
	People   repository.PersonRepositoryInterface
}

func (j *PopularityJob) Run(ctx context.Context, mediaType, date string, limit int) error {
	var update func(map[int64]float64) (int64, error)
	switch mediaType {
	case "movie":
		update = j.Movies.UpdatePopularity
	case "person":
		update = j.People.UpdatePopularity
	default:
		return fmt.Errorf("unsupported media type %q for popularity update", mediaType)
	}

	entries, err := j.Exporter.FetchIDs(mediaType, date, true)
	if err != nil {
		return err
	}
	if entries == nil {
		log.Printf("popularity (%s): no export data", mediaType)
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	popularity := make(map[int64]float64, len(entries))
	for _, entry := range entries {
		popularity[entry.ID] = entry.Popularity
	}

	affected, err := update(popularity)
	if err != nil {
		return err
	}
	log.Printf("popularity (%s): %d of %d rows changed", mediaType, affected, len(entries))
	return nil
}
