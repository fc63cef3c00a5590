package tmdb

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPopularMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/popular" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("missing api key")
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("unexpected page: %s", r.URL.Query().Get("page"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":2,"results":[{"id":1,"title":"First","vote_average":7.5}],"total_pages":10,"total_results":200}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	movies, err := client.PopularMovies(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 1 || movies[0].Title != "First" || movies[0].VoteAverage != 7.5 {
		t.Fatalf("unexpected movies: %+v", movies)
	}
}

func TestSearchMovies_EscapesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "the big one" {
			t.Errorf("unexpected query: %q", got)
		}
		w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer srv.Close()

	client := NewClient("k", srv.URL)
	movies, err := client.SearchMovies("the big one", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 0 {
		t.Fatalf("expected no results, got %+v", movies)
	}
}

func TestGetMovieDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":42,"title":"Answer","runtime":120,"genres":[{"id":18,"name":"Drama"}]}`))
	}))
	defer srv.Close()

	client := NewClient("k", srv.URL)
	detail, err := client.GetMovieDetail(42)
	if err != nil {
		t.Fatal(err)
	}
	if detail.ID != 42 || detail.Runtime != 120 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if len(detail.Genres) != 1 || detail.Genres[0].Name != "Drama" {
		t.Fatalf("unexpected genres: %+v", detail.Genres)
	}
}

func TestDoGet_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))
	defer srv.Close()

	client := NewClient("bad", srv.URL)
	if _, err := client.PopularMovies(1); err == nil {
		t.Fatal("expected an error for a 401 response")
	}
}
