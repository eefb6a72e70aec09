package tmdb

// Summary is one entry of a discover listing. Movies populate Title and
// ReleaseDate, series populate Name and FirstAirDate.
type Summary struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	Popularity   float64 `json:"popularity,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
}

// DiscoverPage is the paginated /discover/{media} response.
type DiscoverPage struct {
	Page         int       `json:"page"`
	Results      []Summary `json:"results"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
}

// Details is the full record returned by /{media}/{id} for either media type.
type Details struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	Tagline      string  `json:"tagline,omitempty"`
	Status       string  `json:"status,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	Genres       []Genre `json:"genres,omitempty"`
}

// Genre represents a movie or series genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
