package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

const (
	DefaultAPIBaseURL     = "https://api.themoviedb.org/3/"
	DefaultExportsBaseURL = "http://files.tmdb.org/p/exports/"
)

const (
	// TMDB allows roughly 50 requests per second; stay just under it
	defaultRateLimit          = 45
	defaultRequestTimeoutSecs = 10
	defaultExportTimeoutSecs  = 20
	defaultFetchBatchSize     = 100
	defaultSchedulerAddr      = ":8080"
	defaultDailyUpdateSpec    = "0 9 * * *" // export files are published by 8:00 UTC
	defaultDatabaseDriver     = "sqlite"
	defaultDatabaseDSN        = "moviedb.db"
	defaultPopularityLimit    = 10000
	defaultLookbackDays       = 4
	defaultRemovedFetchBatch  = 1000
)

type Config struct {
	// TMDB API access
	AccessToken    string
	APIBaseURL     string
	ExportsBaseURL string

	// fetcher settings
	RateLimit      int // requests per second within one fetcher
	RequestTimeout time.Duration
	ExportTimeout  time.Duration
	FetchBatchSize int

	// database settings
	DatabaseDriver string // sqlite or postgres
	DatabaseDSN    string

	// scheduler settings
	SchedulerAddr       string
	DailyUpdateSpec     string
	PopularityLimit     int
	ChangedLookbackDays int
	RemovedFetchBatch   int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func Load() (Config, error) {
	token := os.Getenv("TMDB_ACCESS_TOKEN")
	if token == "" {
		return Config{}, fmt.Errorf("TMDB_ACCESS_TOKEN is not set")
	}

	driver := getEnvOrDefault("DATABASE_DRIVER", defaultDatabaseDriver)
	if driver != "sqlite" && driver != "postgres" {
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q (want sqlite or postgres)", driver)
	}

	cfg := Config{
		AccessToken:         token,
		APIBaseURL:          getEnvOrDefault("TMDB_API_BASE_URL", DefaultAPIBaseURL),
		ExportsBaseURL:      getEnvOrDefault("TMDB_EXPORTS_BASE_URL", DefaultExportsBaseURL),
		RateLimit:           getEnvIntOrDefault("TMDB_RATE_LIMIT", defaultRateLimit),
		RequestTimeout:      time.Duration(getEnvIntOrDefault("TMDB_REQUEST_TIMEOUT_SECONDS", defaultRequestTimeoutSecs)) * time.Second,
		ExportTimeout:       time.Duration(getEnvIntOrDefault("TMDB_EXPORT_TIMEOUT_SECONDS", defaultExportTimeoutSecs)) * time.Second,
		FetchBatchSize:      getEnvIntOrDefault("FETCH_BATCH_SIZE", defaultFetchBatchSize),
		DatabaseDriver:      driver,
		DatabaseDSN:         getEnvOrDefault("DATABASE_DSN", defaultDatabaseDSN),
		SchedulerAddr:       getEnvOrDefault("SCHEDULER_ADDR", defaultSchedulerAddr),
		DailyUpdateSpec:     getEnvOrDefault("DAILY_UPDATE_SPEC", defaultDailyUpdateSpec),
		PopularityLimit:     getEnvIntOrDefault("POPULARITY_LIMIT", defaultPopularityLimit),
		ChangedLookbackDays: getEnvIntOrDefault("CHANGED_LOOKBACK_DAYS", defaultLookbackDays),
		RemovedFetchBatch:   getEnvIntOrDefault("REMOVED_FETCH_BATCH", defaultRemovedFetchBatch),
	}

	return cfg, nil
}
