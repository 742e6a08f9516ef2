package tmdb

// TMDB API response types. Payloads are validated into these structs at the
// API boundary; nothing downstream handles raw JSON maps.

type GenreRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type LanguageRef struct {
	ISO639_1    string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}

type CountryRef struct {
	ISO3166_1 string `json:"iso_3166_1"`
	Name      string `json:"name"`
}

type CompanyRef struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

type CollectionRef struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

type CastCredit struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int64  `json:"order"`
}

type CrewCredit struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job"`
}

type Credits struct {
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

// MovieDetails is the movie/{id} response, optionally with credits appended.
type MovieDetails struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	IMDBID           string  `json:"imdb_id"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	Tagline          string  `json:"tagline"`
	ReleaseDate      string  `json:"release_date"`
	Runtime          int64   `json:"runtime"`
	Status           string  `json:"status"`
	Budget           int64   `json:"budget"`
	Revenue          int64   `json:"revenue"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`

	Genres              []GenreRef     `json:"genres"`
	SpokenLanguages     []LanguageRef  `json:"spoken_languages"`
	OriginCountry       []string       `json:"origin_country"`
	ProductionCountries []CountryRef   `json:"production_countries"`
	ProductionCompanies []CompanyRef   `json:"production_companies"`
	BelongsToCollection *CollectionRef `json:"belongs_to_collection"`
	Credits             *Credits       `json:"credits"`
}

// PersonDetails is the person/{id} response.
type PersonDetails struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	IMDBID             string  `json:"imdb_id"`
	KnownForDepartment string  `json:"known_for_department"`
	Biography          string  `json:"biography"`
	PlaceOfBirth       string  `json:"place_of_birth"`
	Gender             int     `json:"gender"`
	Birthday           string  `json:"birthday"`
	Deathday           string  `json:"deathday"`
	ProfilePath        string  `json:"profile_path"`
	Popularity         float64 `json:"popularity"`
	Adult              bool    `json:"adult"`
}

// CompanyDetails is the company/{id} response.
type CompanyDetails struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

// CollectionDetails is the collection/{id} response.
type CollectionDetails struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

type genreListResponse struct {
	Genres []GenreRef `json:"genres"`
}

type countryConfig struct {
	ISO3166_1   string `json:"iso_3166_1"`
	EnglishName string `json:"english_name"`
	NativeName  string `json:"native_name"`
}

type languageConfig struct {
	ISO639_1    string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

type listingResult struct {
	ID int64 `json:"id"`
}

type listingResponse struct {
	Page         int             `json:"page"`
	Results      []listingResult `json:"results"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
}
