package ingest

// Operation names shared by the job commands and the scheduler.
const (
	OpUpdateChanged  = "update_changed"
	OpDailyExport    = "daily_export"
	OpAddTopRated    = "add_top_rated"
	OpSpecificIDs    = "specific_ids"
	OpRolesCount     = "roles_count"
	OpMovieCount     = "movie_count"
	OpMoviesReleased = "movies_released"
	OpAvgPopularity  = "avg_popularity"
)
