// Package tmdb is the client for the external movie-metadata API.
package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ImageBaseURL prefixes poster paths returned by the API.
const ImageBaseURL = "https://image.tmdb.org/t/p/w200"

// Client is the metadata API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new metadata API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SearchResponse is a page of movie results.
type SearchResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Movie is one item from a popular or search listing.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

// MovieDetail is the detailed record for one movie.
type MovieDetail struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Runtime     int     `json:"runtime"`
	Genres      []Genre `json:"genres"`
}

// Genre is a genre tag on a movie detail.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PopularMovies fetches a page of popular movies.
func (c *Client) PopularMovies(page int) ([]Movie, error) {
	reqURL := fmt.Sprintf(
		"%s/movie/popular?api_key=%s&language=en-US&page=%d",
		c.baseURL, c.apiKey, page,
	)

	slog.Debug("fetching popular movies", "page", page)
	resp, err := c.doGet(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode popular response: %w", err)
	}
	return result.Results, nil
}

// SearchMovies searches movies by free-text query.
func (c *Client) SearchMovies(query string, page int) ([]Movie, error) {
	reqURL := fmt.Sprintf(
		"%s/search/movie?api_key=%s&query=%s&page=%d",
		c.baseURL, c.apiKey, url.QueryEscape(query), page,
	)

	slog.Debug("searching movies", "query", query, "page", page)
	resp, err := c.doGet(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return result.Results, nil
}

// GetMovieDetail fetches the detailed record for one movie id.
func (c *Client) GetMovieDetail(id int) (*MovieDetail, error) {
	reqURL := fmt.Sprintf(
		"%s/movie/%d?api_key=%s&language=en-US",
		c.baseURL, id, c.apiKey,
	)

	slog.Debug("fetching movie detail", "id", id)
	resp, err := c.doGet(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result MovieDetail
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode detail response: %w", err)
	}
	return &result, nil
}

func (c *Client) doGet(reqURL string) (*http.Response, error) {
	resp, err := c.http.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("metadata API returned status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
