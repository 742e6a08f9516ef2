package scheduler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moviedbbackend/config"
)

func testScheduler() *Scheduler {
	return New(config.Config{
		DailyUpdateSpec:     "0 9 * * *",
		FetchBatchSize:      100,
		PopularityLimit:     10000,
		ChangedLookbackDays: 4,
	}, Jobs{})
}

func TestDailySequenceOrder(t *testing.T) {
	s := testScheduler()

	var names []string
	for _, st := range s.steps() {
		names = append(names, st.name)
	}

	assert.Equal(t, []string{
		"collections_daily_export",
		"companies_daily_export",
		"people_daily_export",
		"people_changed_1d", "people_changed_2d", "people_changed_3d", "people_changed_4d",
		"movies_daily_export",
		"movies_changed_1d", "movies_changed_2d", "movies_changed_3d", "movies_changed_4d",
		"removed_movie", "removed_person", "removed_company", "removed_collection",
		"people_roles_count",
		"companies_movie_count",
		"collections_movies_released",
		"popularity_movie", "popularity_person",
		"collections_avg_popularity",
	}, names)
}

func TestHealthzEndpoint(t *testing.T) {
	s := testScheduler()

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatusEndpointReportsStepOutcomes(t *testing.T) {
	s := testScheduler()
	s.record("movies_daily_export", nil)
	s.record("removed_movie", errors.New("export unavailable"))

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Schedule string                `json:"schedule"`
		Steps    map[string]StepStatus `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, "0 9 * * *", payload.Schedule)
	assert.Equal(t, 1, payload.Steps["movies_daily_export"].Runs)
	assert.Empty(t, payload.Steps["movies_daily_export"].LastError)
	assert.Equal(t, "export unavailable", payload.Steps["removed_movie"].LastError)
}
