package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/avoronov/moviedbbackend/repository"
	"github.com/avoronov/moviedbbackend/tmdb"
)

// RemovedJob flags rows that vanished from the daily ID export. Absence from
// the export alone never marks anything: each candidate is re-fetched first,
// and only IDs the API no longer serves are marked removed. Rows keep their
// data and relations for local references.
type RemovedJob struct {
	Client      *tmdb.Client
	Exporter    *tmdb.IDExporter
	Movies      repository.MovieRepositoryInterface
	People      repository.PersonRepositoryInterface
	Companies   repository.CompanyRepositoryInterface
	Collections repository.CollectionRepositoryInterface

	// FetchBatch sizes the confirmation fetches; removal candidate lists
	// can be large after a missed export day.
	FetchBatch int
}

func (j *RemovedJob) Run(ctx context.Context, mediaType, date string) error {
	nonRemoved, markRemoved, confirm, err := j.handlers(mediaType)
	if err != nil {
		return err
	}

	entries, fetchErr := j.Exporter.FetchIDs(mediaType, date, false)
	if fetchErr != nil {
		return fetchErr
	}
	if entries == nil {
		log.Printf("removed (%s): no export data", mediaType)
		return nil
	}
	exported := idSet(tmdb.EntryIDs(entries))

	local, err := nonRemoved()
	if err != nil {
		return err
	}
	candidates := diffIDs(local, exported)
	if len(candidates) == 0 {
		log.Printf("removed (%s): nothing to do", mediaType)
		return nil
	}

	_, notFetched := confirm(ctx, candidates)
	if len(notFetched) == 0 {
		log.Printf("removed (%s): %d candidates, all still present upstream", mediaType, len(candidates))
		return nil
	}

	affected, err := markRemoved(notFetched)
	if err != nil {
		return err
	}
	log.Printf("removed (%s): %d candidates, %d marked removed", mediaType, len(candidates), affected)
	return nil
}

func (j *RemovedJob) handlers(mediaType string) (func() ([]int64, error), func([]int64) (int64, error), func(context.Context, []int64) (int, []int64), error) {
	switch mediaType {
	case "movie":
		confirm := func(ctx context.Context, ids []int64) (int, []int64) {
			fetched, notFetched := j.Client.MoviesByID(ctx, ids, j.FetchBatch, "", nil)
			return len(fetched), notFetched
		}
		return j.Movies.NonRemovedIDs, j.Movies.MarkRemoved, confirm, nil
	case "person":
		confirm := func(ctx context.Context, ids []int64) (int, []int64) {
			fetched, notFetched := j.Client.PeopleByID(ctx, ids, j.FetchBatch, "")
			return len(fetched), notFetched
		}
		return j.People.NonRemovedIDs, j.People.MarkRemoved, confirm, nil
	case "company":
		confirm := func(ctx context.Context, ids []int64) (int, []int64) {
			fetched, notFetched := j.Client.CompaniesByID(ctx, ids, j.FetchBatch)
			return len(fetched), notFetched
		}
		return j.Companies.NonRemovedIDs, j.Companies.MarkRemoved, confirm, nil
	case "collection":
		confirm := func(ctx context.Context, ids []int64) (int, []int64) {
			fetched, notFetched := j.Client.CollectionsByID(ctx, ids, j.FetchBatch, "")
			return len(fetched), notFetched
		}
		return j.Collections.NonRemovedIDs, j.Collections.MarkRemoved, confirm, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported media type %q for removal check", mediaType)
	}
}
