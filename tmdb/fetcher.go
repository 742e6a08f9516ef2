package tmdb

import (
	"context"
	"log"
	"sync"
)

// FetchBatch fetches one payload per ID concurrently. IDs are split into
// chunks of batchSize; every request in a chunk runs in its own goroutine
// and the next chunk does not start until the whole chunk has finished, so
// peak in-flight requests are bounded by batchSize. The per-request rate
// gate lives in the client the fetch closure wraps, shared by all
// goroutines.
//
// A failed request records its ID in the second return value and never
// aborts the rest of the batch. Results are collected in completion order,
// which is not the input order.
func FetchBatch[T any](ctx context.Context, ids []int64, batchSize int, fetch func(ctx context.Context, id int64) (T, error)) ([]T, []int64) {
	if batchSize <= 0 {
		batchSize = 1
	}

	results := make([]T, 0, len(ids))
	var notFetched []int64
	var mu sync.Mutex

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		var wg sync.WaitGroup
		wg.Add(end - start)
		for _, id := range ids[start:end] {
			go func(id int64) {
				defer wg.Done()

				payload, err := fetch(ctx, id)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					log.Printf("fetch failed for ID %d: %v", id, err)
					notFetched = append(notFetched, id)
					return
				}
				results = append(results, payload)
			}(id)
		}
		wg.Wait()
	}

	return results, notFetched
}

// MoviesByID batch-fetches movie details for a list of IDs and partitions
// the outcome into fetched payloads and the IDs that could not be fetched.
func (c *Client) MoviesByID(ctx context.Context, ids []int64, batchSize int, language string, appendToResponse []string) ([]MovieDetails, []int64) {
	return FetchBatch(ctx, ids, batchSize, func(ctx context.Context, id int64) (MovieDetails, error) {
		details, err := c.MovieByID(ctx, id, language, appendToResponse)
		if err != nil {
			return MovieDetails{}, err
		}
		return *details, nil
	})
}

// PeopleByID batch-fetches person details.
func (c *Client) PeopleByID(ctx context.Context, ids []int64, batchSize int, language string) ([]PersonDetails, []int64) {
	return FetchBatch(ctx, ids, batchSize, func(ctx context.Context, id int64) (PersonDetails, error) {
		details, err := c.PersonByID(ctx, id, language)
		if err != nil {
			return PersonDetails{}, err
		}
		return *details, nil
	})
}

// CompaniesByID batch-fetches production company details.
func (c *Client) CompaniesByID(ctx context.Context, ids []int64, batchSize int) ([]CompanyDetails, []int64) {
	return FetchBatch(ctx, ids, batchSize, func(ctx context.Context, id int64) (CompanyDetails, error) {
		details, err := c.CompanyByID(ctx, id)
		if err != nil {
			return CompanyDetails{}, err
		}
		return *details, nil
	})
}

// CollectionsByID batch-fetches collection details.
func (c *Client) CollectionsByID(ctx context.Context, ids []int64, batchSize int, language string) ([]CollectionDetails, []int64) {
	return FetchBatch(ctx, ids, batchSize, func(ctx context.Context, id int64) (CollectionDetails, error) {
		details, err := c.CollectionByID(ctx, id, language)
		if err != nil {
			return CollectionDetails{}, err
		}
		return *details, nil
	})
}
