package models

// MovieCast is a single acting credit. A person may hold several cast rows
// for one movie as long as the characters differ.
type MovieCast struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	MovieID   int64  `gorm:"not null;uniqueIndex:idx_cast_movie_person_character,priority:1;index" json:"movie_id"`
	PersonID  int64  `gorm:"not null;uniqueIndex:idx_cast_movie_person_character,priority:2" json:"person_id"`
	Character string `gorm:"size:512;not null;default:'';uniqueIndex:idx_cast_movie_person_character,priority:3" json:"character"`
	Ord       int64  `gorm:"column:ord;not null;default:0" json:"order"`

	Person *Person `gorm:"foreignKey:PersonID;references:TMDBID;constraint:OnDelete:CASCADE" json:"person,omitempty"`
}

func (MovieCast) TableName() string {
	return "movie_cast"
}

// MovieCrew is a single crew credit, unique per movie, person, department
// and job so one person can hold multiple distinct crew roles.
type MovieCrew struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	MovieID    int64  `gorm:"not null;uniqueIndex:idx_crew_movie_person_dept_job,priority:1;index" json:"movie_id"`
	PersonID   int64  `gorm:"not null;uniqueIndex:idx_crew_movie_person_dept_job,priority:2" json:"person_id"`
	Department string `gorm:"size:32;not null;default:'';uniqueIndex:idx_crew_movie_person_dept_job,priority:3" json:"department"`
	Job        string `gorm:"size:64;not null;default:'';uniqueIndex:idx_crew_movie_person_dept_job,priority:4" json:"job"`

	Person *Person `gorm:"foreignKey:PersonID;references:TMDBID;constraint:OnDelete:CASCADE" json:"person,omitempty"`
}

func (MovieCrew) TableName() string {
	return "movie_crew"
}

// Explicit join-row models for the movie many-to-many relations. The
// reconciler replaces these wholesale per movie, so bulk deletes and inserts
// go through these types instead of gorm association helpers.

type MovieGenre struct {
	MovieID int64 `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	GenreID int64 `gorm:"primaryKey;autoIncrement:false" json:"genre_id"`
}

func (MovieGenre) TableName() string {
	return "movie_genres"
}

type MovieSpokenLanguage struct {
	MovieID      int64  `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	LanguageCode string `gorm:"primaryKey;size:2" json:"language_code"`
}

func (MovieSpokenLanguage) TableName() string {
	return "movie_spoken_languages"
}

type MovieOriginCountry struct {
	MovieID     int64  `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	CountryCode string `gorm:"primaryKey;size:2" json:"country_code"`
}

func (MovieOriginCountry) TableName() string {
	return "movie_origin_countries"
}

type MovieProductionCountry struct {
	MovieID     int64  `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	CountryCode string `gorm:"primaryKey;size:2" json:"country_code"`
}

func (MovieProductionCountry) TableName() string {
	return "movie_production_countries"
}

type MovieProductionCompany struct {
	MovieID   int64 `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	CompanyID int64 `gorm:"primaryKey;autoIncrement:false" json:"company_id"`
}

func (MovieProductionCompany) TableName() string {
	return "movie_production_companies"
}
