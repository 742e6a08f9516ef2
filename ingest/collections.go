package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
	"github.com/avoronov/moviedbbackend/tmdb"
)

// CollectionJob ingests collection details and maintains the denormalized
// released-movie counts and average popularity.
type CollectionJob struct {
	Client      *tmdb.Client
	Exporter    *tmdb.IDExporter
	Collections repository.CollectionRepositoryInterface
}

type CollectionOptions struct {
	Operation string
	IDs       []int64
	Date      string
	BatchSize int
	Language  string
	Limit     int

	// Create restricts daily_export to IDs not stored yet; without it the
	// run refreshes rows that already exist.
	Create bool
}

func (j *CollectionJob) Run(ctx context.Context, opts CollectionOptions) error {
	switch opts.Operation {
	case OpMoviesReleased:
		affected, err := j.Collections.RecomputeMoviesReleased()
		if err != nil {
			return err
		}
		log.Printf("collections (%s): %d rows recomputed", opts.Operation, affected)
		return nil
	case OpAvgPopularity:
		affected, err := j.Collections.RecomputeAvgPopularity()
		if err != nil {
			return err
		}
		log.Printf("collections (%s): %d rows recomputed", opts.Operation, affected)
		return nil
	}

	ids, err := j.resolveIDs(opts)
	if err != nil {
		return err
	}
	ids = limitIDs(ids, opts.Limit)
	if len(ids) == 0 {
		log.Printf("collections (%s): nothing to do", opts.Operation)
		return nil
	}

	details, notFetched := j.Client.CollectionsByID(ctx, ids, opts.BatchSize, opts.Language)

	existingIDs, err := j.Collections.ExistingIDsIn(ids)
	if err != nil {
		return err
	}
	existing := idSet(existingIDs)

	inFlight := make(map[string]struct{})
	var creates, updates []models.Collection
	for _, d := range details {
		_, isUpdate := existing[d.ID]
		collection, err := buildCollection(d, !isUpdate, j.Collections.SlugsWithPrefix, inFlight)
		if err != nil {
			return err
		}
		if isUpdate {
			updates = append(updates, collection)
		} else {
			creates = append(creates, collection)
		}
	}

	if err := j.Collections.Upsert(creates, true); err != nil {
		return err
	}
	if err := j.Collections.Upsert(updates, false); err != nil {
		return err
	}

	log.Printf("collections (%s): %d created, %d updated, %d not fetched",
		opts.Operation, len(creates), len(updates), len(notFetched))
	return nil
}

func (j *CollectionJob) resolveIDs(opts CollectionOptions) ([]int64, error) {
	switch opts.Operation {
	case OpDailyExport:
		entries, err := j.Exporter.FetchIDs("collection", opts.Date, false)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			return nil, nil
		}
		exported := tmdb.EntryIDs(entries)
		existing, err := j.Collections.ExistingIDsIn(exported)
		if err != nil {
			return nil, err
		}
		if opts.Create {
			return diffIDs(exported, idSet(existing)), nil
		}
		return intersectIDs(exported, idSet(existing)), nil

	case OpSpecificIDs:
		if len(opts.IDs) == 0 {
			return nil, fmt.Errorf("operation %s requires explicit IDs", OpSpecificIDs)
		}
		return opts.IDs, nil

	default:
		return nil, fmt.Errorf("unsupported collection operation %q", opts.Operation)
	}
}
