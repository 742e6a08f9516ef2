package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
	"github.com/avoronov/moviedbbackend/tmdb"
)

// PersonJob ingests person details and maintains the denormalized role
// counts.
type PersonJob struct {
	Client   *tmdb.Client
	Exporter *tmdb.IDExporter
	People   repository.PersonRepositoryInterface
}

type PersonOptions struct {
	Operation        string
	IDs              []int64
	Date             string
	Days             int
	BatchSize        int
	Language         string
	Limit            int
	SortByPopularity bool
}

func (j *PersonJob) Run(ctx context.Context, opts PersonOptions) error {
	if opts.Operation == OpRolesCount {
		affected, err := j.People.RecomputeRoleCounts()
		if err != nil {
			return err
		}
		log.Printf("people (%s): %d rows recomputed", opts.Operation, affected)
		return nil
	}

	ids, err := j.resolveIDs(ctx, opts)
	if err != nil {
		return err
	}
	ids = limitIDs(ids, opts.Limit)
	if len(ids) == 0 {
		log.Printf("people (%s): nothing to do", opts.Operation)
		return nil
	}

	details, notFetched := j.Client.PeopleByID(ctx, ids, opts.BatchSize, opts.Language)

	existingIDs, err := j.People.ExistingIDsIn(ids)
	if err != nil {
		return err
	}
	existing := idSet(existingIDs)

	now := time.Now().UTC()
	inFlight := make(map[string]struct{})
	var creates, updates []models.Person
	for _, d := range details {
		_, isUpdate := existing[d.ID]
		person, err := buildPerson(d, now, !isUpdate, j.People.SlugsWithPrefix, inFlight)
		if err != nil {
			return err
		}
		if isUpdate {
			updates = append(updates, person)
		} else {
			creates = append(creates, person)
		}
	}

	if err := j.People.Upsert(creates, true); err != nil {
		return err
	}
	if err := j.People.Upsert(updates, false); err != nil {
		return err
	}

	log.Printf("people (%s): %d created, %d updated, %d not fetched",
		opts.Operation, len(creates), len(updates), len(notFetched))
	return nil
}

func (j *PersonJob) resolveIDs(ctx context.Context, opts PersonOptions) ([]int64, error) {
	switch opts.Operation {
	case OpUpdateChanged:
		changed, windowStart, err := j.Client.ChangedIDs(ctx, "person", opts.Days)
		if err != nil {
			return nil, err
		}
		return j.People.StaleIDs(changed, windowStart)

	case OpDailyExport:
		entries, err := j.Exporter.FetchIDs("person", opts.Date, opts.SortByPopularity)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			return nil, nil
		}
		exported := tmdb.EntryIDs(entries)
		existing, err := j.People.ExistingIDsIn(exported)
		if err != nil {
			return nil, err
		}
		return diffIDs(exported, idSet(existing)), nil

	case OpSpecificIDs:
		if len(opts.IDs) == 0 {
			return nil, fmt.Errorf("operation %s requires explicit IDs", OpSpecificIDs)
		}
		return opts.IDs, nil

	default:
		return nil, fmt.Errorf("unsupported person operation %q", opts.Operation)
	}
}
