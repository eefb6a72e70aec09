package picker

import "github.com/vadimtrunov/PickFlick/internal/metadata/tmdb"

// Title is the normalized result of a pick. ID, Category and Kind are always
// set; the remaining fields are empty when TMDb has no value for them.
type Title struct {
	ID          int      `json:"id"`
	Category    Category `json:"category"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	PosterURL   string   `json:"poster_url,omitempty"`
}

func normalize(c Category, summary tmdb.Summary, d *tmdb.Details, posterSize string) *Title {
	id := d.ID
	if id == 0 {
		id = summary.ID
	}
	return &Title{
		ID:          id,
		Category:    c,
		Kind:        c.Label(),
		Title:       firstNonEmpty(d.Title, d.Name),
		Overview:    d.Overview,
		ReleaseDate: firstNonEmpty(d.ReleaseDate, d.FirstAirDate),
		PosterURL:   tmdb.PosterURL(d.PosterPath, posterSize),
	}
}

// firstNonEmpty returns the first value that is not the empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
