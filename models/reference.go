package models

// TMDB genre IDs that drive derived movie flags.
const (
	GenreIDDocumentary int64 = 99
	GenreIDTVMovie     int64 = 10770
)

// Country is a reference row keyed by its ISO 3166-1 alpha-2 code.
// Rows are created lazily while ingesting and are never removed.
type Country struct {
	Code      string `gorm:"primaryKey;size:2" json:"code"`
	Name      string `gorm:"size:64;not null" json:"name"`
	AliasName string `gorm:"size:64;not null;default:''" json:"alias_name"`
	Slug      string `gorm:"size:60;uniqueIndex;not null" json:"slug"`
}

func (Country) TableName() string {
	return "countries"
}

// UpdateColumns lists the columns overwritten when an upsert hits an existing row.
func (Country) UpdateColumns() []string {
	return []string{"name", "alias_name"}
}

// CreateOnlyColumns lists the columns written at creation and never on update.
func (Country) CreateOnlyColumns() []string {
	return []string{"slug"}
}

// Language is a reference row keyed by its ISO 639-1 code.
type Language struct {
	Code string `gorm:"primaryKey;size:2" json:"code"`
	Name string `gorm:"size:32;not null" json:"name"`
	Slug string `gorm:"size:60;uniqueIndex;not null" json:"slug"`
}

func (Language) TableName() string {
	return "languages"
}

func (Language) UpdateColumns() []string {
	return []string{"name"}
}

func (Language) CreateOnlyColumns() []string {
	return []string{"slug"}
}

// Genre is a reference row keyed by its TMDB genre ID.
type Genre struct {
	TMDBID int64  `gorm:"column:tmdb_id;primaryKey" json:"tmdb_id"`
	Name   string `gorm:"size:32;not null" json:"name"`
	Slug   string `gorm:"size:60;uniqueIndex;not null" json:"slug"`
}

func (Genre) TableName() string {
	return "genres"
}

func (Genre) UpdateColumns() []string {
	return []string{"name"}
}

func (Genre) CreateOnlyColumns() []string {
	return []string{"slug"}
}
