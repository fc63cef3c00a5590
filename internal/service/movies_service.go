package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-trends-dashboard/internal/tmdb"
)

const (
	maxSuggestions = 3

	popularCacheTTL = 10 * time.Minute
	searchCacheTTL  = 5 * time.Minute
	detailCacheTTL  = time.Hour
)

// MoviesService wraps the metadata API client. Listing calls degrade to
// empty results when the upstream is unreachable, so browsing stays usable
// without metadata.
type MoviesService struct {
	client *tmdb.Client
	redis  *redis.Client
}

// NewMoviesService creates a new MoviesService.
func NewMoviesService(client *tmdb.Client, rdb *redis.Client) *MoviesService {
	return &MoviesService{client: client, redis: rdb}
}

// Popular returns a page of popular movies, or an empty list when the
// upstream call fails.
func (s *MoviesService) Popular(page int) []tmdb.Movie {
	cacheKey := "movies:popular:" + strconv.Itoa(page)
	if movies, ok := s.moviesFromCache(cacheKey); ok {
		return movies
	}

	movies, err := s.client.PopularMovies(page)
	if err != nil {
		slog.Warn("popular movies unavailable", "page", page, "error", err)
		return []tmdb.Movie{}
	}
	s.cacheMovies(cacheKey, movies, popularCacheTTL)
	return movies
}

// Search returns a page of search results, or an empty list when the
// upstream call fails.
func (s *MoviesService) Search(query string, page int) []tmdb.Movie {
	cacheKey := "movies:search:" + strings.ToLower(query) + ":" + strconv.Itoa(page)
	if movies, ok := s.moviesFromCache(cacheKey); ok {
		return movies
	}

	movies, err := s.client.SearchMovies(query, page)
	if err != nil {
		slog.Warn("movie search unavailable", "query", query, "error", err)
		return []tmdb.Movie{}
	}
	s.cacheMovies(cacheKey, movies, searchCacheTTL)
	return movies
}

// Detail returns the detailed record for one movie. Unlike the listings,
// a missing detail is an error the handler reports.
func (s *MoviesService) Detail(id int) (*tmdb.MovieDetail, error) {
	cacheKey := "movies:detail:" + strconv.Itoa(id)
	if s.redis != nil {
		if val, err := s.redis.Get(context.Background(), cacheKey).Result(); err == nil {
			var detail tmdb.MovieDetail
			if json.Unmarshal([]byte(val), &detail) == nil {
				return &detail, nil
			}
		}
	}

	detail, err := s.client.GetMovieDetail(id)
	if err != nil {
		return nil, err
	}
	if s.redis != nil {
		if data, err := json.Marshal(detail); err == nil {
			s.redis.Set(context.Background(), cacheKey, data, detailCacheTTL)
		}
	}
	return detail, nil
}

// Suggestions returns up to three titles containing the partial query,
// case-insensitively, excluding an exact match. The pool is the current
// popular page plus a search for the fragment.
func (s *MoviesService) Suggestions(query string) []string {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []string{}
	}

	pool := append(s.Popular(1), s.Search(query, 1)...)

	seen := make(map[string]struct{})
	suggestions := []string{}
	for _, m := range pool {
		lower := strings.ToLower(m.Title)
		if lower == needle || !strings.Contains(lower, needle) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		suggestions = append(suggestions, m.Title)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

func (s *MoviesService) moviesFromCache(key string) ([]tmdb.Movie, bool) {
	if s.redis == nil {
		return nil, false
	}
	val, err := s.redis.Get(context.Background(), key).Result()
	if err != nil {
		return nil, false
	}
	var movies []tmdb.Movie
	if err := json.Unmarshal([]byte(val), &movies); err != nil {
		return nil, false
	}
	slog.Debug("cache hit", "key", key)
	return movies, true
}

func (s *MoviesService) cacheMovies(key string, movies []tmdb.Movie, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(movies)
	if err != nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, data, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
