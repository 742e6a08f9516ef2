package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/repository"
	"github.com/avoronov/moviedbbackend/tmdb"
)

// CompanyJob ingests production company details and maintains the
// denormalized movie counts.
type CompanyJob struct {
	Client    *tmdb.Client
	Exporter  *tmdb.IDExporter
	Companies repository.CompanyRepositoryInterface
	Countries repository.CountryRepositoryInterface
	Languages repository.LanguageRepositoryInterface
	Genres    repository.GenreRepositoryInterface
}

type CompanyOptions struct {
	Operation string
	IDs       []int64
	Date      string
	BatchSize int
	Limit     int

	// Create restricts daily_export to IDs not stored yet; without it the
	// run refreshes rows that already exist.
	Create bool
}

func (j *CompanyJob) Run(ctx context.Context, opts CompanyOptions) error {
	if opts.Operation == OpMovieCount {
		affected, err := j.Companies.RecomputeMovieCounts()
		if err != nil {
			return err
		}
		log.Printf("companies (%s): %d rows recomputed", opts.Operation, affected)
		return nil
	}

	ids, err := j.resolveIDs(opts)
	if err != nil {
		return err
	}
	ids = limitIDs(ids, opts.Limit)
	if len(ids) == 0 {
		log.Printf("companies (%s): nothing to do", opts.Operation)
		return nil
	}

	details, notFetched := j.Client.CompaniesByID(ctx, ids, opts.BatchSize)

	refs, err := NewRefCache(j.Countries, j.Languages, j.Genres)
	if err != nil {
		return err
	}
	existingIDs, err := j.Companies.ExistingIDsIn(ids)
	if err != nil {
		return err
	}
	existing := idSet(existingIDs)

	inFlight := make(map[string]struct{})
	var creates, updates []models.ProductionCompany
	for _, d := range details {
		_, isUpdate := existing[d.ID]
		company, err := buildCompany(d, refs, !isUpdate, j.Companies.SlugsWithPrefix, inFlight)
		if err != nil {
			return err
		}
		if isUpdate {
			updates = append(updates, company)
		} else {
			creates = append(creates, company)
		}
	}

	if err := j.Companies.Upsert(creates, true); err != nil {
		return err
	}
	if err := j.Companies.Upsert(updates, false); err != nil {
		return err
	}

	log.Printf("companies (%s): %d created, %d updated, %d not fetched",
		opts.Operation, len(creates), len(updates), len(notFetched))
	return nil
}

func (j *CompanyJob) resolveIDs(opts CompanyOptions) ([]int64, error) {
	switch opts.Operation {
	case OpDailyExport:
		entries, err := j.Exporter.FetchIDs("company", opts.Date, false)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			return nil, nil
		}
		exported := tmdb.EntryIDs(entries)
		existing, err := j.Companies.ExistingIDsIn(exported)
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
		return nil, fmt.Errorf("unsupported company operation %q", opts.Operation)
	}
}
