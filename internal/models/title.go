package models

import "time"

// Content types as they appear in the titles dataset.
const (
	TypeMovie  = "Movie"
	TypeTVShow = "TV Show"
)

// Rating categories derived from content rating codes.
const (
	CategoryKids   = "Kids"
	CategoryFamily = "Family"
	CategoryTeen   = "Teen"
	CategoryAdult  = "Adult"
)

// TitleRecord is one cleaned entry from the titles catalog.
// DateAdded and DurationMinutes are nil when the source value did not parse.
type TitleRecord struct {
	Title           string     `json:"title"`
	Type            string     `json:"type"`
	Director        string     `json:"director"`
	Cast            string     `json:"cast"`
	Countries       []string   `json:"countries"`
	Genres          []string   `json:"genres"`
	DateAdded       *time.Time `json:"date_added,omitempty"`
	ReleaseYear     int        `json:"release_year"`
	Rating          string     `json:"rating"`
	RatingCategory  string     `json:"rating_category,omitempty"`
	DurationMinutes *float64   `json:"duration_minutes,omitempty"`
}

// DurationHours returns the duration in hours, or 0 if absent.
func (t *TitleRecord) DurationHours() float64 {
	if t.DurationMinutes == nil {
		return 0
	}
	return *t.DurationMinutes / 60
}

// ImdbTitle is one cleaned entry from the top-rated titles dataset.
// GrossMillions is the gross in millions of dollars, 0 when unreported.
type ImdbTitle struct {
	Title          string   `json:"title"`
	PosterLink     string   `json:"poster_link"`
	ReleasedYear   int      `json:"released_year"`
	Certificate    string   `json:"certificate"`
	RuntimeMinutes *float64 `json:"runtime_minutes,omitempty"`
	Genres         []string `json:"genres"`
	PrimaryGenre   string   `json:"primary_genre"`
	IMDBRating     float64  `json:"imdb_rating"`
	Overview       string   `json:"overview"`
	MetaScore      float64  `json:"meta_score"`
	Director       string   `json:"director"`
	Stars          []string `json:"stars"`
	GrossMillions  float64  `json:"gross_millions"`
}
