package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresAccessToken(t *testing.T) {
	t.Setenv("TMDB_ACCESS_TOKEN", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TMDB_ACCESS_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 45, cfg.RateLimit)
	assert.Equal(t, 100, cfg.FetchBatchSize)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 4, cfg.ChangedLookbackDays)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("TMDB_ACCESS_TOKEN", "token")
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TMDB_ACCESS_TOKEN", "token")
	t.Setenv("TMDB_RATE_LIMIT", "10")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=localhost dbname=moviedb")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "host=localhost dbname=moviedb", cfg.DatabaseDSN)
}
