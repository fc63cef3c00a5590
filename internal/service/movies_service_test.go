package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-trends-dashboard/internal/tmdb"
)

func newTestMoviesService(t *testing.T, handler http.HandlerFunc) *MoviesService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMoviesService(tmdb.NewClient("k", srv.URL), nil)
}

func TestPopular_DegradesToEmpty(t *testing.T) {
	svc := newTestMoviesService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	movies := svc.Popular(1)
	if movies == nil || len(movies) != 0 {
		t.Fatalf("expected an empty non-nil list, got %v", movies)
	}
}

func TestSearch_DegradesToEmpty(t *testing.T) {
	svc := newTestMoviesService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	movies := svc.Search("anything", 1)
	if movies == nil || len(movies) != 0 {
		t.Fatalf("expected an empty non-nil list, got %v", movies)
	}
}

func TestSuggestions(t *testing.T) {
	svc := newTestMoviesService(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/movie/popular") {
			w.Write([]byte(`{"page":1,"results":[
				{"id":1,"title":"Batman"},
				{"id":2,"title":"Batman Returns"},
				{"id":3,"title":"Batman Forever"},
				{"id":4,"title":"Batman Begins"},
				{"id":5,"title":"Superman"}
			]}`))
			return
		}
		w.Write([]byte(`{"page":1,"results":[{"id":6,"title":"The Batman"}]}`))
	})

	suggestions := svc.Suggestions("batman")
	if len(suggestions) != 3 {
		t.Fatalf("expected at most 3 suggestions, got %v", suggestions)
	}
	for _, s := range suggestions {
		lower := strings.ToLower(s)
		if lower == "batman" {
			t.Fatalf("exact match must be excluded: %v", suggestions)
		}
		if !strings.Contains(lower, "batman") {
			t.Fatalf("suggestion does not contain the query: %q", s)
		}
	}
}

func TestSuggestions_BlankQuery(t *testing.T) {
	svc := newTestMoviesService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for a blank query")
	})

	if got := svc.Suggestions("   "); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}

func TestDetail_ErrorSurfaces(t *testing.T) {
	svc := newTestMoviesService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := svc.Detail(99); err == nil {
		t.Fatal("expected an error when the upstream fails")
	}
}
