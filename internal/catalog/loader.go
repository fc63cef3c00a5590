// Package catalog loads and cleans the two CSV datasets backing the
// dashboard: the titles catalog and the top-rated (IMDB) dataset.
package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"movie-trends-dashboard/internal/models"
)

// LoadTitles reads and cleans the titles catalog CSV.
// Cleaning mirrors the dashboard's preprocessing: rows without date_added or
// duration are dropped, blank rating/country are filled with the column
// mode, blank cast/director become "Unknown".
func LoadTitles(path string) ([]models.TitleRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open titles dataset: %w", err)
	}
	defer f.Close()

	rows, header, err := readAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read titles dataset: %w", err)
	}

	col := indexColumns(header)
	required := []string{"type", "title", "date_added", "duration", "country", "rating", "release_year", "listed_in"}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("titles dataset missing column %q", name)
		}
	}

	// Drop rows with blank date_added or duration before computing modes,
	// matching the source's dropna-then-fill order.
	kept := rows[:0]
	for _, row := range rows {
		if field(row, col, "date_added") == "" || field(row, col, "duration") == "" {
			continue
		}
		kept = append(kept, row)
	}

	ratingMode := mode(column(kept, col, "rating"))
	countryMode := mode(column(kept, col, "country"))

	records := make([]models.TitleRecord, 0, len(kept))
	dropped := 0
	for _, row := range kept {
		rating := field(row, col, "rating")
		if rating == "" {
			rating = ratingMode
		}
		country := field(row, col, "country")
		if country == "" {
			country = countryMode
		}
		cast := field(row, col, "cast")
		if cast == "" {
			cast = "Unknown"
		}
		director := field(row, col, "director")
		if director == "" {
			director = "Unknown"
		}

		year, err := strconv.Atoi(strings.TrimSpace(field(row, col, "release_year")))
		if err != nil {
			dropped++
			continue
		}

		records = append(records, models.TitleRecord{
			Title:           field(row, col, "title"),
			Type:            field(row, col, "type"),
			Director:        director,
			Cast:            cast,
			Countries:       SplitMultiValued(country),
			Genres:          SplitMultiValued(field(row, col, "listed_in")),
			DateAdded:       ParseDateAdded(field(row, col, "date_added")),
			ReleaseYear:     year,
			Rating:          rating,
			RatingCategory:  RatingCategory(rating),
			DurationMinutes: ParseDurationMinutes(field(row, col, "duration")),
		})
	}

	slog.Info("loaded titles dataset", "path", path, "records", len(records), "dropped", dropped)
	return records, nil
}

// LoadImdbTitles reads and cleans the top-rated titles CSV.
func LoadImdbTitles(path string) ([]models.ImdbTitle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open top-rated dataset: %w", err)
	}
	defer f.Close()

	rows, header, err := readAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read top-rated dataset: %w", err)
	}

	col := indexColumns(header)
	required := []string{"Series_Title", "Released_Year", "Runtime", "Genre", "IMDB_Rating", "Meta_score", "Director", "Gross"}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("top-rated dataset missing column %q", name)
		}
	}

	metaMode := mode(column(rows, col, "Meta_score"))

	titles := make([]models.ImdbTitle, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		// Released_Year carries stray non-numeric values; coerce and drop.
		year, err := strconv.Atoi(strings.TrimSpace(field(row, col, "Released_Year")))
		if err != nil {
			dropped++
			continue
		}

		cert := field(row, col, "Certificate")
		if cert == "" {
			cert = "Unrated"
		}
		metaStr := field(row, col, "Meta_score")
		if metaStr == "" {
			metaStr = metaMode
		}
		meta, _ := strconv.ParseFloat(strings.TrimSpace(metaStr), 64)
		imdbRating, _ := strconv.ParseFloat(strings.TrimSpace(field(row, col, "IMDB_Rating")), 64)

		genres := SplitMultiValued(field(row, col, "Genre"))
		primary := ""
		if len(genres) > 0 {
			primary = genres[0]
		}

		var stars []string
		for _, starCol := range []string{"Star1", "Star2", "Star3", "Star4"} {
			if s := field(row, col, starCol); s != "" {
				stars = append(stars, s)
			}
		}

		titles = append(titles, models.ImdbTitle{
			Title:          field(row, col, "Series_Title"),
			PosterLink:     field(row, col, "Poster_Link"),
			ReleasedYear:   year,
			Certificate:    cert,
			RuntimeMinutes: runtimeMinutes(field(row, col, "Runtime")),
			Genres:         genres,
			PrimaryGenre:   primary,
			IMDBRating:     imdbRating,
			Overview:       field(row, col, "Overview"),
			MetaScore:      meta,
			Director:       field(row, col, "Director"),
			Stars:          stars,
			GrossMillions:  ParseGross(field(row, col, "Gross")),
		})
	}

	slog.Info("loaded top-rated dataset", "path", path, "records", len(titles), "dropped", dropped)
	return titles, nil
}

// runtimeMinutes extracts the numeric part of "142 min" style runtimes.
func runtimeMinutes(s string) *float64 {
	v, _ := splitDuration(s)
	return v
}

func readAll(r io.Reader) ([][]string, []string, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip it, never abort the whole load.
			continue
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func column(rows [][]string, col map[string]int, name string) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, field(row, col, name))
	}
	return out
}
