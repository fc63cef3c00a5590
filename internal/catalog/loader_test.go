package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const titlesHeader = "show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description\n"

func TestLoadTitles_DropsAndFills(t *testing.T) {
	csvData := titlesHeader +
		`s1,Movie,Alpha,Jane Doe,Some Actor,United States,"September 9, 2021",2020,PG-13,90 min,"Dramas, Comedies",d` + "\n" +
		`s2,TV Show,Beta,,,,"August 1, 2021",2019,,2 Seasons,Dramas,d` + "\n" +
		`s3,Movie,Gamma,Jane Doe,Some Actor,France,,2018,R,100 min,Dramas,d` + "\n" +
		`s4,Movie,Delta,Jane Doe,Some Actor,France,"July 1, 2021",2018,R,,Dramas,d` + "\n"

	records, err := LoadTitles(writeCSV(t, "titles.csv", csvData))
	if err != nil {
		t.Fatal(err)
	}

	// s3 has no date_added, s4 no duration; both are dropped.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	alpha, beta := records[0], records[1]
	if alpha.Title != "Alpha" || beta.Title != "Beta" {
		t.Fatalf("unexpected titles: %s, %s", alpha.Title, beta.Title)
	}

	// Blank rating and country on Beta are filled with the column mode of
	// the surviving rows; blank cast/director become Unknown.
	if beta.Rating != "PG-13" {
		t.Fatalf("expected mode-filled rating PG-13, got %q", beta.Rating)
	}
	if len(beta.Countries) != 1 || beta.Countries[0] != "United States" {
		t.Fatalf("expected mode-filled country, got %v", beta.Countries)
	}
	if beta.Cast != "Unknown" || beta.Director != "Unknown" {
		t.Fatalf("expected Unknown cast/director, got %q / %q", beta.Cast, beta.Director)
	}

	if alpha.RatingCategory != "Teen" {
		t.Fatalf("expected Teen, got %q", alpha.RatingCategory)
	}
	if len(alpha.Genres) != 2 || alpha.Genres[0] != "Dramas" {
		t.Fatalf("unexpected genres: %v", alpha.Genres)
	}
	if alpha.DateAdded == nil || alpha.DateAdded.Year() != 2021 {
		t.Fatalf("unexpected date: %v", alpha.DateAdded)
	}
	if alpha.DurationMinutes == nil || *alpha.DurationMinutes != 90 {
		t.Fatalf("unexpected duration: %v", alpha.DurationMinutes)
	}
	if beta.DurationMinutes == nil || *beta.DurationMinutes != 1200 {
		t.Fatalf("expected 2 seasons = 1200 min, got %v", beta.DurationMinutes)
	}
}

func TestLoadTitles_DropsBadReleaseYear(t *testing.T) {
	csvData := titlesHeader +
		`s1,Movie,Alpha,D,C,USA,"September 9, 2021",not-a-year,PG,90 min,Dramas,d` + "\n" +
		`s2,Movie,Beta,D,C,USA,"September 9, 2021",2020,PG,90 min,Dramas,d` + "\n"

	records, err := LoadTitles(writeCSV(t, "titles.csv", csvData))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Title != "Beta" {
		t.Fatalf("expected only Beta to survive, got %+v", records)
	}
}

func TestLoadTitles_MissingColumn(t *testing.T) {
	csvData := "show_id,type,title\ns1,Movie,Alpha\n"

	if _, err := LoadTitles(writeCSV(t, "titles.csv", csvData)); err == nil {
		t.Fatal("expected an error for a missing required column")
	}
}

func TestLoadTitles_MissingFile(t *testing.T) {
	if _, err := LoadTitles(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

const imdbHeader = "Poster_Link,Series_Title,Released_Year,Certificate,Runtime,Genre,IMDB_Rating,Overview,Meta_score,Director,Star1,Star2,Star3,Star4,No_of_Votes,Gross\n"

func TestLoadImdbTitles_Cleans(t *testing.T) {
	csvData := imdbHeader +
		`p1,The Big One,1994,R,142 min,"Drama, Crime",9.3,o,80,Frank,S1,S2,S3,S4,100,"28,341,469"` + "\n" +
		`p2,Stray Year,PG,,110 min,Drama,8.0,o,75,Anna,S1,,,,100,"1,000,000"` + "\n" +
		`p3,No Cert,2000,,100 min,Comedy,7.9,o,,Bill,S1,S2,,,100,` + "\n"

	titles, err := LoadImdbTitles(writeCSV(t, "imdb.csv", csvData))
	if err != nil {
		t.Fatal(err)
	}

	// The stray "PG" year is coerced and dropped.
	if len(titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(titles))
	}

	big := titles[0]
	if big.Title != "The Big One" || big.ReleasedYear != 1994 {
		t.Fatalf("unexpected first title: %+v", big)
	}
	if big.GrossMillions != 28.341469 {
		t.Fatalf("unexpected gross: %v", big.GrossMillions)
	}
	if big.PrimaryGenre != "Drama" || len(big.Genres) != 2 {
		t.Fatalf("unexpected genres: %v (primary %q)", big.Genres, big.PrimaryGenre)
	}
	if len(big.Stars) != 4 {
		t.Fatalf("expected 4 stars, got %v", big.Stars)
	}
	if big.RuntimeMinutes == nil || *big.RuntimeMinutes != 142 {
		t.Fatalf("unexpected runtime: %v", big.RuntimeMinutes)
	}

	noCert := titles[1]
	if noCert.Certificate != "Unrated" {
		t.Fatalf("expected Unrated, got %q", noCert.Certificate)
	}
	// Blank Meta_score fills with the column mode.
	if noCert.MetaScore != 80 {
		t.Fatalf("expected mode-filled meta score 80, got %v", noCert.MetaScore)
	}
	if noCert.GrossMillions != 0 {
		t.Fatalf("expected 0 gross for blank, got %v", noCert.GrossMillions)
	}
}
