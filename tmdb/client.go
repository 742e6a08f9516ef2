package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/avoronov/moviedbbackend/config"
)

const (
	retryCount       = 5
	retryBaseWait    = 2 * time.Second
	retryMaxWait     = 32 * time.Second
	maxListingPages  = 500
	changesDateParam = "2006-01-02"
)

// Client is a typed TMDB API client. All requests share one token-bucket
// rate limiter so concurrent detail fetches stay under the global
// calls-per-second ceiling.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// NewClient builds a Client from the configured credentials, timeout and
// rate limit. Transient upstream failures (429, 5xx, transport errors) are
// retried with exponential backoff before a request counts as failed.
func NewClient(cfg config.Config) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIBaseURL, "/")).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryBaseWait).
		SetRetryMaxWaitTime(retryMaxWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
	}
}

// Limiter exposes the client's shared rate limiter; the batch fetcher waits
// on it before every request it spawns.
func (c *Client) Limiter() *rate.Limiter {
	return c.limiter
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait canceled for %s: %w", path, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("tmdb returned status %d for %s", resp.StatusCode(), path)
	}
	// Decode the body directly instead of relying on resty's Content-Type
	// sniffing; a 200 without a JSON Content-Type must not pass through as a
	// zero-value payload.
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func detailParams(language string, appendToResponse []string) map[string]string {
	params := map[string]string{}
	if language != "" {
		params["language"] = language
	}
	if len(appendToResponse) > 0 {
		params["append_to_response"] = strings.Join(appendToResponse, ",")
	}
	return params
}

// MovieByID fetches movie details, optionally with appended sub-resources
// such as credits.
func (c *Client) MovieByID(ctx context.Context, id int64, language string, appendToResponse []string) (*MovieDetails, error) {
	var out MovieDetails
	path := fmt.Sprintf("movie/%d", id)
	if err := c.get(ctx, path, detailParams(language, appendToResponse), &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, fmt.Errorf("movie %d response carried no id", id)
	}
	return &out, nil
}

// PersonByID fetches person details.
func (c *Client) PersonByID(ctx context.Context, id int64, language string) (*PersonDetails, error) {
	var out PersonDetails
	path := fmt.Sprintf("person/%d", id)
	if err := c.get(ctx, path, detailParams(language, nil), &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, fmt.Errorf("person %d response carried no id", id)
	}
	return &out, nil
}

// CompanyByID fetches production company details.
func (c *Client) CompanyByID(ctx context.Context, id int64) (*CompanyDetails, error) {
	var out CompanyDetails
	path := fmt.Sprintf("company/%d", id)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, fmt.Errorf("company %d response carried no id", id)
	}
	return &out, nil
}

// CollectionByID fetches collection details.
func (c *Client) CollectionByID(ctx context.Context, id int64, language string) (*CollectionDetails, error) {
	var out CollectionDetails
	path := fmt.Sprintf("collection/%d", id)
	if err := c.get(ctx, path, detailParams(language, nil), &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, fmt.Errorf("collection %d response carried no id", id)
	}
	return &out, nil
}

// Genres fetches the official movie genre list.
func (c *Client) Genres(ctx context.Context, language string) ([]GenreRef, error) {
	var out genreListResponse
	if err := c.get(ctx, "genre/movie/list", detailParams(language, nil), &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// Countries fetches the ISO 3166-1 country list used throughout TMDB.
func (c *Client) Countries(ctx context.Context, language string) ([]CountryListing, error) {
	var out []countryConfig
	if err := c.get(ctx, "configuration/countries", detailParams(language, nil), &out); err != nil {
		return nil, err
	}
	listings := make([]CountryListing, 0, len(out))
	for _, cc := range out {
		listings = append(listings, CountryListing{Code: cc.ISO3166_1, EnglishName: cc.EnglishName, NativeName: cc.NativeName})
	}
	return listings, nil
}

// Languages fetches the ISO 639-1 language list used throughout TMDB.
func (c *Client) Languages(ctx context.Context) ([]LanguageListing, error) {
	var out []languageConfig
	if err := c.get(ctx, "configuration/languages", nil, &out); err != nil {
		return nil, err
	}
	listings := make([]LanguageListing, 0, len(out))
	for _, lc := range out {
		listings = append(listings, LanguageListing{Code: lc.ISO639_1, EnglishName: lc.EnglishName, NativeName: lc.Name})
	}
	return listings, nil
}

// CountryListing is one entry of the configuration/countries response.
type CountryListing struct {
	Code        string
	EnglishName string
	NativeName  string
}

// LanguageListing is one entry of the configuration/languages response.
type LanguageListing struct {
	Code        string
	EnglishName string
	NativeName  string
}

// TopRatedMovieIDs walks the movie/top_rated listing up to lastPage pages
// and flattens the results to an ID list.
func (c *Client) TopRatedMovieIDs(ctx context.Context, lastPage int, language string) ([]int64, error) {
	if lastPage <= 0 || lastPage > maxListingPages {
		lastPage = maxListingPages
	}

	var ids []int64
	for page := 1; page <= lastPage; page++ {
		params := map[string]string{"page": strconv.Itoa(page)}
		if language != "" {
			params["language"] = language
		}

		var out listingResponse
		if err := c.get(ctx, "movie/top_rated", params, &out); err != nil {
			return nil, fmt.Errorf("failed to fetch top rated page %d: %w", page, err)
		}
		for _, result := range out.Results {
			ids = append(ids, result.ID)
		}
		if out.TotalPages > 0 && page >= out.TotalPages {
			break
		}
	}
	return ids, nil
}

// ChangedIDs collects the IDs changed upstream within the past N days for
// the given media type (movie or person) and returns them together with the
// start of the covered window. Callers use the window start to restrict the
// update to locally stale rows.
func (c *Client) ChangedIDs(ctx context.Context, mediaType string, days int) ([]int64, time.Time, error) {
	if mediaType != "movie" && mediaType != "person" {
		return nil, time.Time{}, fmt.Errorf("unsupported media type %q for changes listing", mediaType)
	}
	if days <= 0 {
		days = 1
	}

	windowStart := time.Now().UTC().AddDate(0, 0, -days)
	path := mediaType + "/changes"

	seen := make(map[int64]struct{})
	var ids []int64
	for page := 1; page <= maxListingPages; page++ {
		params := map[string]string{
			"start_date": windowStart.Format(changesDateParam),
			"page":       strconv.Itoa(page),
		}

		var out listingResponse
		if err := c.get(ctx, path, params, &out); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to fetch %s page %d: %w", path, page, err)
		}
		for _, result := range out.Results {
			if _, ok := seen[result.ID]; ok {
				continue
			}
			seen[result.ID] = struct{}{}
			ids = append(ids, result.ID)
		}
		if out.TotalPages == 0 || page >= out.TotalPages {
			break
		}
	}
	return ids, windowStart, nil
}
