package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moviedbbackend/config"
)

func clientFor(serverURL string) *Client {
	return NewClient(config.Config{
		AccessToken:    "test-token",
		APIBaseURL:     serverURL,
		RateLimit:      1000,
		RequestTimeout: 2 * time.Second,
	})
}

func TestMovieByIDDecodesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"id":      603,
			"title":   "The Matrix",
			"runtime": 136,
			"genres":  []map[string]any{{"id": 28, "name": "Action"}},
			"credits": map[string]any{
				"cast": []map[string]any{{"id": 6384, "name": "Keanu Reeves", "character": "Neo", "order": 0}},
			},
		})
	}))
	defer server.Close()

	details, err := clientFor(server.URL).MovieByID(context.Background(), 603, "", []string{"credits"})
	require.NoError(t, err)

	assert.Equal(t, int64(603), details.ID)
	assert.Equal(t, "The Matrix", details.Title)
	require.Len(t, details.Genres, 1)
	require.NotNil(t, details.Credits)
	assert.Equal(t, "Neo", details.Credits.Cast[0].Character)
}

func TestMovieByIDDecodesWithoutContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.Write([]byte(`{"id": 603, "title": "The Matrix"}`))
	}))
	defer server.Close()

	details, err := clientFor(server.URL).MovieByID(context.Background(), 603, "", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(603), details.ID)
	assert.Equal(t, "The Matrix", details.Title)
}

func TestMovieByIDRejectsPayloadWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := clientFor(server.URL).MovieByID(context.Background(), 603, "", nil)
	assert.ErrorContains(t, err, "no id")
}

func TestMovieByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := clientFor(server.URL).MovieByID(context.Background(), 1, "", nil)
	assert.Error(t, err)
}

func TestMoviesByIDPartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/2" {
			http.NotFound(w, r)
			return
		}
		var id int64
		fmt.Sscanf(r.URL.Path, "/movie/%d", &id)
		json.NewEncoder(w).Encode(map[string]any{"id": id, "title": fmt.Sprintf("Movie %d", id)})
	}))
	defer server.Close()

	details, notFetched := clientFor(server.URL).MoviesByID(context.Background(), []int64{1, 2, 3}, 10, "", nil)

	assert.Len(t, details, 2)
	assert.Equal(t, []int64{2}, notFetched)
}

func TestChangedIDsPaginatesAndDedupes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/changes", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("start_date"))

		switch r.URL.Query().Get("page") {
		case "1", "":
			json.NewEncoder(w).Encode(map[string]any{
				"page": 1, "total_pages": 2,
				"results": []map[string]any{{"id": 10}, {"id": 11}},
			})
		default:
			json.NewEncoder(w).Encode(map[string]any{
				"page": 2, "total_pages": 2,
				"results": []map[string]any{{"id": 11}, {"id": 12}},
			})
		}
	}))
	defer server.Close()

	ids, windowStart, err := clientFor(server.URL).ChangedIDs(context.Background(), "movie", 3)
	require.NoError(t, err)

	assert.Equal(t, []int64{10, 11, 12}, ids)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -3), windowStart, time.Minute)
}

func TestChangedIDsRejectsUnknownMediaType(t *testing.T) {
	_, _, err := clientFor("http://127.0.0.1:0").ChangedIDs(context.Background(), "collection", 1)
	assert.Error(t, err)
}

func TestTopRatedMovieIDsStopsAtTotalPages(t *testing.T) {
	pagesServed := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		json.NewEncoder(w).Encode(map[string]any{
			"page": pagesServed, "total_pages": 2,
			"results": []map[string]any{{"id": int64(pagesServed * 100)}},
		})
	}))
	defer server.Close()

	ids, err := clientFor(server.URL).TopRatedMovieIDs(context.Background(), 10, "")
	require.NoError(t, err)

	assert.Equal(t, []int64{100, 200}, ids)
	assert.Equal(t, 2, pagesServed)
}
