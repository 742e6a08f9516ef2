package models

// ProductionCompany represents a production company fetched from TMDB.
// It corresponds to the 'production_companies' table.
type ProductionCompany struct {
	TMDBID   int64  `gorm:"column:tmdb_id;primaryKey" json:"tmdb_id"`
	Name     string `gorm:"size:256;not null" json:"name"`
	LogoPath string `gorm:"size:64;not null;default:''" json:"logo_path"`

	OriginCountryCode *string  `gorm:"column:origin_country_code;size:2" json:"origin_country_code,omitempty"`
	OriginCountry     *Country `gorm:"foreignKey:OriginCountryCode;references:Code;constraint:OnDelete:SET NULL" json:"origin_country,omitempty"`

	// recomputed by the movie_count maintenance operation, not on write
	MovieCount int64 `gorm:"not null;default:0" json:"movie_count"`

	// company produces adult movies
	Adult bool `gorm:"not null;default:false" json:"adult"`

	RemovedFromTMDB bool   `gorm:"column:removed_from_tmdb;not null;default:false" json:"removed_from_tmdb"`
	Slug            string `gorm:"size:60;uniqueIndex;not null" json:"slug"`
}

func (ProductionCompany) TableName() string {
	return "production_companies"
}

func (ProductionCompany) UpdateColumns() []string {
	return []string{"name", "logo_path", "origin_country_code", "removed_from_tmdb"}
}

func (ProductionCompany) CreateOnlyColumns() []string {
	return []string{"slug", "adult"}
}
