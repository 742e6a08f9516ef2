package models

import "time"

// Gender is the person gender decoded from the small TMDB integer code.
type Gender string

const (
	GenderUnknown   Gender = ""
	GenderFemale    Gender = "F"
	GenderMale      Gender = "M"
	GenderNonBinary Gender = "NB"
)

var genderCodes = map[int]Gender{
	0: GenderUnknown,
	1: GenderFemale,
	2: GenderMale,
	3: GenderNonBinary,
}

// GenderFromCode maps a TMDB gender code to a Gender. Unknown codes map to
// GenderUnknown rather than failing; upstream occasionally grows new values.
func GenderFromCode(code int) Gender {
	return genderCodes[code]
}

// Person is anyone involved in the making of movies (actors, directors,
// writers). It corresponds to the 'people' table.
type Person struct {
	TMDBID int64  `gorm:"column:tmdb_id;primaryKey" json:"tmdb_id"`
	Name   string `gorm:"size:128;not null" json:"name"`
	IMDBID string `gorm:"column:imdb_id;size:16;not null;default:''" json:"imdb_id"`

	KnownForDepartment string `gorm:"size:32;not null;default:''" json:"known_for_department"`
	Biography          string `gorm:"not null;default:''" json:"biography"`
	PlaceOfBirth       string `gorm:"size:256;not null;default:''" json:"place_of_birth"`
	Gender             Gender `gorm:"size:2;not null;default:''" json:"gender"`

	Birthday *time.Time `gorm:"type:date" json:"birthday,omitempty"`
	Deathday *time.Time `gorm:"type:date" json:"deathday,omitempty"`

	ProfilePath    string  `gorm:"size:64;not null;default:''" json:"profile_path"`
	TMDBPopularity float64 `gorm:"column:tmdb_popularity;not null;default:0;index" json:"tmdb_popularity"`

	// recomputed by the roles_count maintenance operation, not on write
	CastRolesCount int64 `gorm:"not null;default:0" json:"cast_roles_count"`
	CrewRolesCount int64 `gorm:"not null;default:0" json:"crew_roles_count"`

	// appears in adult movies
	Adult bool `gorm:"not null;default:false" json:"adult"`

	RemovedFromTMDB bool       `gorm:"column:removed_from_tmdb;not null;default:false;index" json:"removed_from_tmdb"`
	LastUpdate      time.Time  `gorm:"type:date;not null" json:"last_update"`
	CreatedAt       *time.Time `gorm:"type:date" json:"created_at,omitempty"`

	Slug string `gorm:"size:60;uniqueIndex;not null" json:"slug"`
}

func (Person) TableName() string {
	return "people"
}

func (Person) UpdateColumns() []string {
	return []string{
		"name",
		"imdb_id",
		"known_for_department",
		"biography",
		"place_of_birth",
		"gender",
		"birthday",
		"deathday",
		"profile_path",
		"tmdb_popularity",
		"last_update",
		"removed_from_tmdb",
	}
}

func (Person) CreateOnlyColumns() []string {
	return []string{"slug", "created_at", "adult"}
}
