package models

// Collection groups movies that belong together upstream (e.g. a film series).
type Collection struct {
	TMDBID       int64  `gorm:"column:tmdb_id;primaryKey" json:"tmdb_id"`
	Name         string `gorm:"size:256;not null" json:"name"`
	Overview     string `gorm:"not null;default:''" json:"overview"`
	PosterPath   string `gorm:"size:64;not null;default:''" json:"poster_path"`
	BackdropPath string `gorm:"size:64;not null;default:''" json:"backdrop_path"`

	// recomputed by the movies_released / avg_popularity maintenance
	// operations, not on write
	MoviesReleased int64   `gorm:"not null;default:0" json:"movies_released"`
	AvgPopularity  float64 `gorm:"not null;default:0" json:"avg_popularity"`

	// collection contains adult movies
	Adult bool `gorm:"not null;default:false" json:"adult"`

	RemovedFromTMDB bool   `gorm:"column:removed_from_tmdb;not null;default:false" json:"removed_from_tmdb"`
	Slug            string `gorm:"size:60;uniqueIndex;not null" json:"slug"`
}

func (Collection) TableName() string {
	return "collections"
}

func (Collection) UpdateColumns() []string {
	return []string{"name", "overview", "poster_path", "backdrop_path", "removed_from_tmdb"}
}

func (Collection) CreateOnlyColumns() []string {
	return []string{"slug", "adult"}
}
