package models

import "time"

// MovieStatus is the release status of a movie as reported by TMDB.
type MovieStatus int

const (
	StatusUnknown MovieStatus = iota
	StatusCanceled
	StatusRumored
	StatusPlanned
	StatusInProduction
	StatusPostProduction
	StatusReleased
)

var statusNames = map[string]MovieStatus{
	"":                StatusUnknown,
	"Canceled":        StatusCanceled,
	"Rumored":         StatusRumored,
	"Planned":         StatusPlanned,
	"In Production":   StatusInProduction,
	"Post Production": StatusPostProduction,
	"Released":        StatusReleased,
}

// StatusFromName maps the upstream status string to a MovieStatus.
// Unrecognized values map to StatusUnknown.
func StatusFromName(name string) MovieStatus {
	return statusNames[name]
}

// Movie corresponds to the 'movies' table. Rows are keyed by the immutable
// TMDB ID and written only by the ingestion jobs.
type Movie struct {
	TMDBID int64  `gorm:"column:tmdb_id;primaryKey" json:"tmdb_id"`
	Title  string `gorm:"size:512;not null" json:"title"`
	IMDBID string `gorm:"column:imdb_id;size:16;not null;default:''" json:"imdb_id"`

	ReleaseDate *time.Time `gorm:"type:date" json:"release_date,omitempty"`

	OriginalTitle        string    `gorm:"size:512;not null;default:''" json:"original_title"`
	OriginalLanguageCode *string   `gorm:"column:original_language_code;size:2" json:"original_language_code,omitempty"`
	OriginalLanguage     *Language `gorm:"foreignKey:OriginalLanguageCode;references:Code;constraint:OnDelete:SET NULL" json:"original_language,omitempty"`

	Overview string `gorm:"not null;default:''" json:"overview"`
	Tagline  string `gorm:"size:512;not null;default:''" json:"tagline"`

	CollectionID *int64      `gorm:"column:collection_id" json:"collection_id,omitempty"`
	Collection   *Collection `gorm:"foreignKey:CollectionID;references:TMDBID;constraint:OnDelete:SET NULL" json:"collection,omitempty"`

	PosterPath   string `gorm:"size:64;not null;default:''" json:"poster_path"`
	BackdropPath string `gorm:"size:64;not null;default:''" json:"backdrop_path"`

	Status  MovieStatus `gorm:"not null;default:0" json:"status"`
	Budget  int64       `gorm:"not null;default:0" json:"budget"`
	Revenue int64       `gorm:"not null;default:0" json:"revenue"`

	// runtime in minutes
	Runtime int64 `gorm:"not null;default:0" json:"runtime"`

	// derived from genre membership and runtime, see Categorize
	Documentary bool `gorm:"not null;default:false" json:"documentary"`
	TVMovie     bool `gorm:"column:tv_movie;not null;default:false" json:"tv_movie"`
	Short       bool `gorm:"not null;default:false" json:"short"`

	TMDBPopularity float64 `gorm:"column:tmdb_popularity;not null;default:0;index" json:"tmdb_popularity"`

	// adult movies are sometimes falsely flagged upstream and corrected by
	// hand locally, so the flag is create-only
	Adult bool `gorm:"not null;default:false" json:"adult"`

	RemovedFromTMDB bool       `gorm:"column:removed_from_tmdb;not null;default:false;index" json:"removed_from_tmdb"`
	LastUpdate      time.Time  `gorm:"type:date;not null" json:"last_update"`
	CreatedAt       *time.Time `gorm:"type:date" json:"created_at,omitempty"`

	Slug string `gorm:"size:60;uniqueIndex;not null" json:"slug"`

	Genres              []Genre             `gorm:"many2many:movie_genres;joinForeignKey:MovieID;joinReferences:GenreID" json:"genres,omitempty"`
	SpokenLanguages     []Language          `gorm:"many2many:movie_spoken_languages;joinForeignKey:MovieID;joinReferences:LanguageCode" json:"spoken_languages,omitempty"`
	OriginCountries     []Country           `gorm:"many2many:movie_origin_countries;joinForeignKey:MovieID;joinReferences:CountryCode" json:"origin_countries,omitempty"`
	ProductionCountries []Country           `gorm:"many2many:movie_production_countries;joinForeignKey:MovieID;joinReferences:CountryCode" json:"production_countries,omitempty"`
	ProductionCompanies []ProductionCompany `gorm:"many2many:movie_production_companies;joinForeignKey:MovieID;joinReferences:CompanyID" json:"production_companies,omitempty"`
	Cast                []MovieCast         `gorm:"foreignKey:MovieID;references:TMDBID;constraint:OnDelete:CASCADE" json:"cast,omitempty"`
	Crew                []MovieCrew         `gorm:"foreignKey:MovieID;references:TMDBID;constraint:OnDelete:CASCADE" json:"crew,omitempty"`
}

func (Movie) TableName() string {
	return "movies"
}

func (Movie) UpdateColumns() []string {
	return []string{
		"title",
		"imdb_id",
		"release_date",
		"original_title",
		"original_language_code",
		"overview",
		"tagline",
		"collection_id",
		"poster_path",
		"backdrop_path",
		"status",
		"budget",
		"revenue",
		"runtime",
		"documentary",
		"tv_movie",
		"short",
		"tmdb_popularity",
		"last_update",
		"removed_from_tmdb",
	}
}

func (Movie) CreateOnlyColumns() []string {
	return []string{"slug", "created_at", "adult"}
}

// Categorize sets the derived documentary, tv_movie and short flags from the
// movie's genre IDs and runtime.
func (m *Movie) Categorize(genreIDs []int64) {
	m.Documentary = false
	m.TVMovie = false
	for _, id := range genreIDs {
		switch id {
		case GenreIDDocumentary:
			m.Documentary = true
		case GenreIDTVMovie:
			m.TVMovie = true
		}
	}
	m.Short = m.Runtime > 0 && m.Runtime <= 40
}
