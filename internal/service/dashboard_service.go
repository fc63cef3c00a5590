package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-trends-dashboard/internal/models"
	"movie-trends-dashboard/internal/pipeline"
)

const (
	topCountryCount = 10
	topGenreCount   = 10
	topPersonCount  = 10
	maxRecommended  = 5

	dashboardCacheTTL = 5 * time.Minute
	filterDateLayout  = "2006-01-02"
)

// DashboardService turns loaded catalog data plus filters into the view
// models each dashboard page renders. It holds the datasets immutably, so
// every call is a pure function of (filters, data) aside from the optional
// redis cache and the random recommendation sample.
type DashboardService struct {
	titles []models.TitleRecord
	imdb   []models.ImdbTitle
	redis  *redis.Client
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(titles []models.TitleRecord, imdb []models.ImdbTitle, rdb *redis.Client) *DashboardService {
	return &DashboardService{titles: titles, imdb: imdb, redis: rdb}
}

// GlobalTrends builds the global trends view model. Not cached: the
// recommendation sample is intentionally fresh on every call.
func (s *DashboardService) GlobalTrends(params models.GlobalTrendsParams) *models.GlobalTrendsView {
	filtered := s.filterTitles(params)
	rows := s.explodeCountries(filtered, params.Countries)

	view := &models.GlobalTrendsView{
		TopCountries:       []models.CountryTypeDuration{},
		CountryTitleCounts: pipeline.AggregateByGroup(rows, pipeline.CountDistinctTitles),
		AvailableGenres:    availableGenres(rows),
		Recommendations:    []models.TitleRecord{},
	}
	if view.CountryTitleCounts == nil {
		view.CountryTitleCounts = []models.AggregateBucket{}
	}

	countryTotals := pipeline.AggregateByGroup(rows, pipeline.SumDurationHours)
	top, _ := pipeline.TopN(countryTotals, topCountryCount)
	if len(top) > 0 {
		topSet := make(map[string]bool, len(top))
		for _, b := range top {
			topSet[b.Key] = true
		}

		perType := make(map[string]map[string]float64, len(top))
		titlesInTop := make(map[string]struct{})
		var moviesHours, showsHours float64
		for _, row := range rows {
			if !topSet[row.Value] {
				continue
			}
			byType := perType[row.Value]
			if byType == nil {
				byType = make(map[string]float64, 2)
				perType[row.Value] = byType
			}
			hours := row.Title.DurationHours()
			byType[row.Title.Type] += hours
			titlesInTop[row.Title.Title] = struct{}{}
			switch row.Title.Type {
			case models.TypeMovie:
				moviesHours += hours
			case models.TypeTVShow:
				showsHours += hours
			}
		}

		for _, b := range top {
			for _, contentType := range []string{models.TypeMovie, models.TypeTVShow} {
				if hours, ok := perType[b.Key][contentType]; ok {
					view.TopCountries = append(view.TopCountries, models.CountryTypeDuration{
						Country:       b.Key,
						Type:          contentType,
						DurationHours: hours,
					})
				}
			}
		}

		totalHours := moviesHours + showsHours
		metrics := models.TrendMetrics{
			TotalDurationHours: totalHours,
			TotalTitles:        len(titlesInTop),
			TopCountry:         top[0].Key,
			TopCountryHours:    top[0].Metric,
		}
		if len(titlesInTop) > 0 {
			metrics.AvgDurationPerTitle = totalHours / float64(len(titlesInTop))
		}
		if totalHours > 0 {
			metrics.MoviesSharePct = moviesHours / totalHours * 100
			metrics.TVShowsSharePct = showsHours / totalHours * 100
		}
		view.Metrics = metrics
	}

	if params.Genre != "" {
		view.Recommendations = s.recommend(filtered, params.Genre)
	}
	return view
}

// GenreBreakdown builds the per-country genre donut: top genres by
// distinct titles with an "Other" overflow bucket.
func (s *DashboardService) GenreBreakdown(params models.GlobalTrendsParams, country string) *models.GenreBreakdownView {
	rows := s.explodeCountries(s.filterTitles(params), params.Countries)

	seen := make(map[string]struct{})
	var inCountry []models.TitleRecord
	for _, row := range rows {
		if row.Value != country {
			continue
		}
		if _, dup := seen[row.Title.Title]; dup {
			continue
		}
		seen[row.Title.Title] = struct{}{}
		inCountry = append(inCountry, *row.Title)
	}

	genreRows := pipeline.Explode(inCountry, pipeline.FieldGenre)
	buckets := pipeline.AggregateByGroup(genreRows, pipeline.CountDistinctTitles)
	top, other := pipeline.TopN(buckets, topGenreCount)
	if other != nil {
		top = append(top, *other)
	}
	if top == nil {
		top = []models.AggregateBucket{}
	}
	return &models.GenreBreakdownView{Country: country, Genres: top}
}

// TitlesOverTime counts distinct titles added per calendar month per
// content type. Country filters do not apply here, matching the original
// chart.
func (s *DashboardService) TitlesOverTime(params models.GlobalTrendsParams) *models.TitlesOverTimeView {
	cacheKey := fmt.Sprintf("dashboard:over-time:%s", paramsFingerprint(params))
	if cached := s.getFromCache(cacheKey); cached != "" {
		var view models.TitlesOverTimeView
		if json.Unmarshal([]byte(cached), &view) == nil {
			return &view
		}
	}

	type monthType struct {
		month string
		typ   string
	}
	counts := make(map[monthType]map[string]struct{})
	for _, t := range s.filterTitles(params) {
		if t.DateAdded == nil {
			continue
		}
		key := monthType{month: t.DateAdded.Format("2006-01"), typ: t.Type}
		titles := counts[key]
		if titles == nil {
			titles = make(map[string]struct{})
			counts[key] = titles
		}
		titles[t.Title] = struct{}{}
	}

	points := make([]models.MonthTypeCount, 0, len(counts))
	for key, titles := range counts {
		points = append(points, models.MonthTypeCount{Month: key.month, Type: key.typ, Count: len(titles)})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Month != points[j].Month {
			return points[i].Month < points[j].Month
		}
		return points[i].Type < points[j].Type
	})

	view := &models.TitlesOverTimeView{Points: points}
	s.setCache(cacheKey, view)
	return view
}

// GrossEarnings builds the gross earnings view model from the top-rated
// dataset.
func (s *DashboardService) GrossEarnings(params models.GrossEarningsParams) *models.GrossEarningsView {
	cacheKey := fmt.Sprintf("dashboard:gross:%s", grossFingerprint(params))
	if cached := s.getFromCache(cacheKey); cached != "" {
		var view models.GrossEarningsView
		if json.Unmarshal([]byte(cached), &view) == nil {
			return &view
		}
	}

	filtered := s.filterImdb(params)

	view := &models.GrossEarningsView{
		GrossByYear:  []models.YearGross{},
		TopDirectors: []models.PersonGross{},
		TopActors:    []models.PersonGross{},
	}

	metrics := models.SnapshotMetrics{MovieCount: len(filtered)}
	var grossSum, imdbSum, metaSum float64
	for _, t := range filtered {
		grossSum += t.GrossMillions
		imdbSum += t.IMDBRating
		metaSum += t.MetaScore
	}
	metrics.TotalGross = grossSum * 1e6
	if len(filtered) > 0 {
		metrics.AvgIMDBRating = imdbSum / float64(len(filtered))
		metrics.AvgMetaScore = metaSum / float64(len(filtered))
	}
	view.Metrics = metrics

	view.GrossByYear = grossByYear(filtered)
	view.TopDirectors, view.DirectorsMean, view.DirectorsMedian = topDirectors(filtered)
	view.TopActors, view.ActorsMean, view.ActorsMedian = topActors(filtered)

	s.setCache(cacheKey, view)
	return view
}

// PredictorGenres lists the sorted unique primary genres of the top-rated
// dataset, the options offered by the prediction form.
func (s *DashboardService) PredictorGenres() []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, t := range s.imdb {
		if t.PrimaryGenre == "" {
			continue
		}
		if _, ok := seen[t.PrimaryGenre]; ok {
			continue
		}
		seen[t.PrimaryGenre] = struct{}{}
		genres = append(genres, t.PrimaryGenre)
	}
	sort.Strings(genres)
	return genres
}

// ---- filtering ----

// filterTitles applies the date-added, release-year, type and rating
// category filters. Date and year bounds default to the dataset extremes;
// an inverted range yields an empty result.
func (s *DashboardService) filterTitles(params models.GlobalTrendsParams) []models.TitleRecord {
	minDate, maxDate := s.dateBounds()
	lo, hi := minDate, maxDate
	if t, err := time.Parse(filterDateLayout, params.DateFrom); err == nil {
		lo = float64(t.Unix())
	}
	if t, err := time.Parse(filterDateLayout, params.DateTo); err == nil {
		hi = float64(t.Unix())
	}
	filtered := pipeline.FilterByRange(s.titles, pipeline.DateAddedValue, lo, hi)

	yearLo, yearHi := s.yearBounds()
	if params.YearFrom != 0 {
		yearLo = float64(params.YearFrom)
	}
	if params.YearTo != 0 {
		yearHi = float64(params.YearTo)
	}
	filtered = pipeline.FilterByRange(filtered, pipeline.ReleaseYearValue, yearLo, yearHi)

	if len(params.Types) > 0 {
		filtered = keepMatching(filtered, params.Types, func(t *models.TitleRecord) string { return t.Type })
	}
	if len(params.RatingCategories) > 0 {
		filtered = keepMatching(filtered, params.RatingCategories, func(t *models.TitleRecord) string { return t.RatingCategory })
	}
	return filtered
}

// explodeCountries explodes the country field and applies the country
// multiselect on the exploded rows.
func (s *DashboardService) explodeCountries(records []models.TitleRecord, countries []string) []pipeline.ExplodedRow {
	rows := pipeline.Explode(records, pipeline.FieldCountry)
	if len(countries) == 0 {
		return rows
	}
	wanted := make(map[string]bool, len(countries))
	for _, c := range countries {
		wanted[c] = true
	}
	kept := rows[:0]
	for _, row := range rows {
		if wanted[row.Value] {
			kept = append(kept, row)
		}
	}
	return kept
}

func (s *DashboardService) filterImdb(params models.GrossEarningsParams) []models.ImdbTitle {
	imdbLo, imdbHi := params.IMDBMin, params.IMDBMax
	metaLo, metaHi := params.MetaMin, params.MetaMax
	yearLo, yearHi := float64(params.YearFrom), float64(params.YearTo)
	if imdbHi == 0 {
		imdbHi = math.MaxFloat64
	}
	if metaHi == 0 {
		metaHi = math.MaxFloat64
	}
	if yearHi == 0 {
		yearHi = math.MaxFloat64
	}

	var out []models.ImdbTitle
	for _, t := range s.imdb {
		if t.IMDBRating < imdbLo || t.IMDBRating > imdbHi {
			continue
		}
		if t.MetaScore < metaLo || t.MetaScore > metaHi {
			continue
		}
		year := float64(t.ReleasedYear)
		if year < yearLo || year > yearHi {
			continue
		}
		if len(params.Genres) > 0 && !anyGenreMatch(t.Genres, params.Genres) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// anyGenreMatch mirrors the original substring match against the raw
// comma-joined genre field.
func anyGenreMatch(genres, wanted []string) bool {
	joined := strings.Join(genres, ", ")
	for _, g := range wanted {
		if strings.Contains(joined, g) {
			return true
		}
	}
	return false
}

func keepMatching(records []models.TitleRecord, wanted []string, getter func(*models.TitleRecord) string) []models.TitleRecord {
	set := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		set[w] = true
	}
	var out []models.TitleRecord
	for i := range records {
		if set[getter(&records[i])] {
			out = append(out, records[i])
		}
	}
	return out
}

func (s *DashboardService) dateBounds() (float64, float64) {
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for i := range s.titles {
		if s.titles[i].DateAdded == nil {
			continue
		}
		v := float64(s.titles[i].DateAdded.Unix())
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

func (s *DashboardService) yearBounds() (float64, float64) {
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for i := range s.titles {
		v := float64(s.titles[i].ReleaseYear)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// ---- global trends helpers ----

func availableGenres(rows []pipeline.ExplodedRow) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, row := range rows {
		for _, g := range row.Title.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	sort.Strings(genres)
	if genres == nil {
		genres = []string{}
	}
	return genres
}

// recommend samples up to five titles whose genre list contains the chosen
// genre, case-insensitively.
func (s *DashboardService) recommend(records []models.TitleRecord, genre string) []models.TitleRecord {
	needle := strings.ToLower(genre)
	var candidates []models.TitleRecord
	for _, t := range records {
		if strings.Contains(strings.ToLower(strings.Join(t.Genres, ", ")), needle) {
			candidates = append(candidates, t)
		}
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > maxRecommended {
		candidates = candidates[:maxRecommended]
	}
	if candidates == nil {
		candidates = []models.TitleRecord{}
	}
	return candidates
}

// ---- gross earnings helpers ----

func grossByYear(titles []models.ImdbTitle) []models.YearGross {
	sums := make(map[int]float64)
	tops := make(map[int]models.ImdbTitle)
	for _, t := range titles {
		sums[t.ReleasedYear] += t.GrossMillions
		if best, ok := tops[t.ReleasedYear]; !ok || t.GrossMillions > best.GrossMillions {
			tops[t.ReleasedYear] = t
		}
	}

	years := make([]int, 0, len(sums))
	for y := range sums {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]models.YearGross, 0, len(years))
	for _, y := range years {
		top := tops[y]
		out = append(out, models.YearGross{
			Year:          y,
			GrossMillions: sums[y],
			TopMovie: &models.MovieHighlight{
				Title:          top.Title,
				GrossMillions:  top.GrossMillions,
				IMDBRating:     top.IMDBRating,
				MetaScore:      top.MetaScore,
				RuntimeMinutes: top.RuntimeMinutes,
				Genre:          strings.Join(top.Genres, ", "),
				Certificate:    top.Certificate,
				Poster:         top.PosterLink,
				Overview:       top.Overview,
			},
		})
	}
	return out
}

func topDirectors(titles []models.ImdbTitle) ([]models.PersonGross, float64, float64) {
	var order []string
	sums := make(map[string]*models.PersonGross)
	for _, t := range titles {
		if t.Director == "" {
			continue
		}
		p := sums[t.Director]
		if p == nil {
			p = &models.PersonGross{Name: t.Director}
			sums[t.Director] = p
			order = append(order, t.Director)
		}
		p.GrossMillions += t.GrossMillions
		p.MovieCount++
	}
	return rankPersons(order, sums)
}

// topActors merges the four star columns so an actor's gross counts
// whichever billing slot they appeared in.
func topActors(titles []models.ImdbTitle) ([]models.PersonGross, float64, float64) {
	var order []string
	sums := make(map[string]*models.PersonGross)
	for _, t := range titles {
		for _, star := range t.Stars {
			p := sums[star]
			if p == nil {
				p = &models.PersonGross{Name: star}
				sums[star] = p
				order = append(order, star)
			}
			p.GrossMillions += t.GrossMillions
			p.MovieCount++
		}
	}
	return rankPersons(order, sums)
}

func rankPersons(order []string, sums map[string]*models.PersonGross) ([]models.PersonGross, float64, float64) {
	ranked := make([]models.PersonGross, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, *sums[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GrossMillions > ranked[j].GrossMillions
	})
	if len(ranked) > topPersonCount {
		ranked = ranked[:topPersonCount]
	}

	var mean, median float64
	if len(ranked) > 0 {
		var sum float64
		for _, p := range ranked {
			sum += p.GrossMillions
		}
		mean = sum / float64(len(ranked))
		mid := len(ranked) / 2
		if len(ranked)%2 == 1 {
			median = ranked[mid].GrossMillions
		} else {
			median = (ranked[mid-1].GrossMillions + ranked[mid].GrossMillions) / 2
		}
	}
	return ranked, mean, median
}

// ---- cache helpers ----

func (s *DashboardService) getFromCache(key string) string {
	if s.redis == nil {
		return ""
	}
	val, err := s.redis.Get(context.Background(), key).Result()
	if err != nil {
		return ""
	}
	slog.Debug("cache hit", "key", key)
	return val
}

func (s *DashboardService) setCache(key string, value any) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, data, dashboardCacheTTL).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func paramsFingerprint(p models.GlobalTrendsParams) string {
	return fmt.Sprintf("%s:%s:%d:%d:%s:%s:%s",
		p.DateFrom, p.DateTo, p.YearFrom, p.YearTo,
		strings.Join(p.Types, "|"),
		strings.Join(p.RatingCategories, "|"),
		strings.Join(p.Countries, "|"))
}

func grossFingerprint(p models.GrossEarningsParams) string {
	return fmt.Sprintf("%g:%g:%g:%g:%d:%d:%s",
		p.IMDBMin, p.IMDBMax, p.MetaMin, p.MetaMax,
		p.YearFrom, p.YearTo, strings.Join(p.Genres, "|"))
}
