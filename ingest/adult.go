package ingest

import (
	"log"

	"github.com/avoronov/moviedbbackend/repository"
)

// AdultJob propagates the adult flag from collections and production
// companies down to their movies. The flag is only ever set, never cleared;
// manual corrections stay in place.
type AdultJob struct {
	Movies repository.MovieRepositoryInterface
}

func (j *AdultJob) Run() error {
	fromCollections, err := j.Movies.MarkAdultFromCollections()
	if err != nil {
		return err
	}
	fromCompanies, err := j.Movies.MarkAdultFromCompanies()
	if err != nil {
		return err
	}
	log.Printf("adult: %d flagged via collections, %d via companies", fromCollections, fromCompanies)
	return nil
}
