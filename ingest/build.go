package ingest

import (
	"fmt"
	"time"

	"github.com/avoronov/moviedbbackend/models"
	"github.com/avoronov/moviedbbackend/tmdb"
	"github.com/avoronov/moviedbbackend/utils"
)

const apiDateLayout = "2006-01-02"

// parseAPIDate turns an API date string into a nullable time. Empty and
// malformed values both map to nil; upstream ships the occasional junk date.
func parseAPIDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(apiDateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

func buildPerson(details tmdb.PersonDetails, now time.Time, isCreate bool, taken utils.ExistingSlugsFunc, inFlight map[string]struct{}) (models.Person, error) {
	person := models.Person{
		TMDBID:             details.ID,
		Name:               details.Name,
		IMDBID:             details.IMDBID,
		KnownForDepartment: details.KnownForDepartment,
		Biography:          details.Biography,
		PlaceOfBirth:       details.PlaceOfBirth,
		Gender:             models.GenderFromCode(details.Gender),
		Birthday:           parseAPIDate(details.Birthday),
		Deathday:           parseAPIDate(details.Deathday),
		ProfilePath:        details.ProfilePath,
		TMDBPopularity:     details.Popularity,
		Adult:              details.Adult,
		LastUpdate:         now,
	}
	if isCreate {
		person.CreatedAt = &now
		slug, err := utils.UniqueSlug(details.Name, taken, inFlight)
		if err != nil {
			return person, fmt.Errorf("failed to allocate slug for person %d: %w", details.ID, err)
		}
		person.Slug = slug
	}
	return person, nil
}

func buildCompany(details tmdb.CompanyDetails, refs *RefCache, isCreate bool, taken utils.ExistingSlugsFunc, inFlight map[string]struct{}) (models.ProductionCompany, error) {
	company := models.ProductionCompany{
		TMDBID:   details.ID,
		Name:     details.Name,
		LogoPath: details.LogoPath,
	}
	if details.OriginCountry != "" {
		if err := refs.EnsureCountry(details.OriginCountry); err != nil {
			return company, err
		}
		code := details.OriginCountry
		company.OriginCountryCode = &code
	}
	if isCreate {
		slug, err := utils.UniqueSlug(details.Name, taken, inFlight)
		if err != nil {
			return company, fmt.Errorf("failed to allocate slug for company %d: %w", details.ID, err)
		}
		company.Slug = slug
	}
	return company, nil
}

func buildCollection(details tmdb.CollectionDetails, isCreate bool, taken utils.ExistingSlugsFunc, inFlight map[string]struct{}) (models.Collection, error) {
	collection := models.Collection{
		TMDBID:       details.ID,
		Name:         details.Name,
		Overview:     details.Overview,
		PosterPath:   details.PosterPath,
		BackdropPath: details.BackdropPath,
	}
	if isCreate {
		slug, err := utils.UniqueSlug(details.Name, taken, inFlight)
		if err != nil {
			return collection, fmt.Errorf("failed to allocate slug for collection %d: %w", details.ID, err)
		}
		collection.Slug = slug
	}
	return collection, nil
}
