package models

// AggregateBucket is one ranked group produced by the explode/aggregate
// pipeline. Percentage is the share of the total metric before any top-N
// bucketing, rounded to 2 decimals.
type AggregateBucket struct {
	Key        string  `json:"key"`
	Metric     float64 `json:"metric"`
	Percentage float64 `json:"percentage"`
}

// GlobalTrendsParams are the filters for the global trends page.
// Zero values disable the corresponding filter.
type GlobalTrendsParams struct {
	DateFrom         string   `query:"date_from"`
	DateTo           string   `query:"date_to"`
	YearFrom         int      `query:"year_from"`
	YearTo           int      `query:"year_to"`
	Types            []string `query:"-"`
	RatingCategories []string `query:"-"`
	Countries        []string `query:"-"`
	Genre            string   `query:"genre"`
}

// TrendMetrics are the key metrics shown above the global trends charts.
type TrendMetrics struct {
	TotalDurationHours  float64 `json:"total_duration_hours"`
	AvgDurationPerTitle float64 `json:"avg_duration_per_title"`
	TotalTitles         int     `json:"total_titles"`
	MoviesSharePct      float64 `json:"movies_share_pct"`
	TVShowsSharePct     float64 `json:"tv_shows_share_pct"`
	TopCountry          string  `json:"top_country"`
	TopCountryHours     float64 `json:"top_country_hours"`
}

// CountryTypeDuration is one stacked-bar segment: total duration hours for
// a (country, content type) pair among the top countries.
type CountryTypeDuration struct {
	Country       string  `json:"country"`
	Type          string  `json:"type"`
	DurationHours float64 `json:"duration_hours"`
}

// GlobalTrendsView is the view model for the global trends page.
type GlobalTrendsView struct {
	Metrics            TrendMetrics          `json:"metrics"`
	TopCountries       []CountryTypeDuration `json:"top_countries"`
	CountryTitleCounts []AggregateBucket     `json:"country_title_counts"`
	AvailableGenres    []string              `json:"available_genres"`
	Recommendations    []TitleRecord         `json:"recommendations"`
}

// GenreBreakdownView is the per-country genre donut: top genres by distinct
// titles plus an "Other" bucket.
type GenreBreakdownView struct {
	Country string            `json:"country"`
	Genres  []AggregateBucket `json:"genres"`
}

// MonthTypeCount is distinct titles added in one calendar month for one
// content type.
type MonthTypeCount struct {
	Month string `json:"month"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TitlesOverTimeView is the view model for the titles-over-time chart.
type TitlesOverTimeView struct {
	Points []MonthTypeCount `json:"points"`
}

// GrossEarningsParams are the filters for the gross earnings page.
type GrossEarningsParams struct {
	IMDBMin  float64  `query:"imdb_min"`
	IMDBMax  float64  `query:"imdb_max"`
	MetaMin  float64  `query:"meta_min"`
	MetaMax  float64  `query:"meta_max"`
	YearFrom int      `query:"year_from"`
	YearTo   int      `query:"year_to"`
	Genres   []string `query:"-"`
}

// SnapshotMetrics summarize the filtered top-rated dataset.
type SnapshotMetrics struct {
	MovieCount    int     `json:"movie_count"`
	TotalGross    float64 `json:"total_gross"`
	AvgIMDBRating float64 `json:"avg_imdb_rating"`
	AvgMetaScore  float64 `json:"avg_meta_score"`
}

// MovieHighlight is the highest-grossing movie of one year.
type MovieHighlight struct {
	Title          string   `json:"title"`
	GrossMillions  float64  `json:"gross_millions"`
	IMDBRating     float64  `json:"imdb_rating"`
	MetaScore      float64  `json:"meta_score"`
	RuntimeMinutes *float64 `json:"runtime_minutes,omitempty"`
	Genre          string   `json:"genre"`
	Certificate    string   `json:"certificate"`
	Poster         string   `json:"poster"`
	Overview       string   `json:"overview"`
}

// YearGross is total gross for one release year plus its top movie.
type YearGross struct {
	Year          int             `json:"year"`
	GrossMillions float64         `json:"gross_millions"`
	TopMovie      *MovieHighlight `json:"top_movie,omitempty"`
}

// PersonGross is summed gross for one director or actor.
type PersonGross struct {
	Name          string  `json:"name"`
	GrossMillions float64 `json:"gross_millions"`
	MovieCount    int     `json:"movie_count"`
}

// PredictRequest is the input to the success predictor.
type PredictRequest struct {
	RuntimeMinutes float64 `json:"runtime_minutes"`
	MetaScore      float64 `json:"meta_score"`
	ReleasedYear   int     `json:"released_year"`
	Genre          string  `json:"genre"`
}

// PredictResponse is the predicted success category.
type PredictResponse struct {
	Success string `json:"success"`
}

// GrossEarningsView is the view model for the gross earnings page.
type GrossEarningsView struct {
	Metrics         SnapshotMetrics `json:"metrics"`
	GrossByYear     []YearGross     `json:"gross_by_year"`
	TopDirectors    []PersonGross   `json:"top_directors"`
	DirectorsMean   float64         `json:"directors_mean"`
	DirectorsMedian float64         `json:"directors_median"`
	TopActors       []PersonGross   `json:"top_actors"`
	ActorsMean      float64         `json:"actors_mean"`
	ActorsMedian    float64         `json:"actors_median"`
}
