// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

// Package tmdb provides a typed client for The Movie Database v3 API.
//
// The client authenticates with the api_key query parameter on every call,
// decodes responses into typed structs, and wraps outbound requests in a
// circuit breaker so a failing TMDB does not tie up catalog handlers.
// There are no retries: a failed lookup is reported to the user as-is.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinelog/internal/config"
	"github.com/tomtom215/cinelog/internal/logging"
	"github.com/tomtom215/cinelog/internal/metrics"
)

// maxErrorBodySize limits how much of an error response body is read,
// preventing unbounded allocation on large upstream error pages.
const maxErrorBodySize = 64 * 1024 // 64KB

// descriptionPlaceholder is stored when TMDB has no overview for a movie.
const descriptionPlaceholder = "No description available."

const breakerName = "tmdb-api"

// Client handles communication with the TMDB v3 HTTP API.
//
// Thread Safety: safe for concurrent use; each request creates its own
// HTTP request and the circuit breaker is internally synchronized.
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	client       *http.Client
	breaker      *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a TMDB API client from configuration.
//
// Circuit breaker configuration:
//   - opens after 5 consecutive failures
//   - waits 60 seconds before attempting recovery
//   - allows 1 probe request in half-open state
func NewClient(cfg *config.TMDBConfig) *Client {
	metrics.SetCircuitBreakerState(breakerName, 0) // 0 = closed

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.SetCircuitBreakerState(name, stateToInt(to))
		},
	})

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: breaker,
	}
}

// SearchMovies queries TMDB for movies matching the given title.
// An empty result list is not an error.
func (c *Client) SearchMovies(ctx context.Context, title string) ([]SearchResult, error) {
	query := url.Values{}
	query.Set("query", title)

	body, err := c.makeRequest(ctx, "search_movie", "/search/movie", query)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return resp.Results, nil
}

// GetMovieDetails fetches a movie by TMDB id and maps it to catalog fields:
//
//   - Description falls back to a placeholder when TMDB has no overview.
//   - Year is the four-digit year of the release date; an empty or malformed
//     release date yields ErrInvalidReleaseDate.
//   - ImgURL is the full poster URL, nil when the movie has no poster.
//   - Rating is the TMDB vote average, Reviews the tagline; both default to
//     their zero values when absent.
func (c *Client) GetMovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	body, err := c.makeRequest(ctx, "movie_details", "/movie/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}

	var resp detailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode movie details: %w", err)
	}

	if resp.Title == "" {
		return nil, fmt.Errorf("tmdb movie %d has no title", id)
	}

	year, err := yearFromReleaseDate(resp.ReleaseDate)
	if err != nil {
		return nil, err
	}

	details := &MovieDetails{
		TMDBID:      resp.ID,
		Title:       resp.Title,
		Year:        year,
		Description: resp.Overview,
		Rating:      resp.VoteAverage,
		Reviews:     resp.Tagline,
	}
	if details.Description == "" {
		details.Description = descriptionPlaceholder
	}
	if resp.PosterPath != "" {
		imgURL := c.imageBaseURL + resp.PosterPath
		details.ImgURL = &imgURL
	}

	return details, nil
}

// makeRequest performs a GET against the TMDB API through the circuit
// breaker, records metrics, and returns the response body. Non-2xx
// responses come back as *StatusError carrying the upstream status.
func (c *Client) makeRequest(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + query.Encode()

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doRequest(ctx, endpoint, reqURL)
	})
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordTMDBRequest(endpoint, 0, duration)
			return nil, fmt.Errorf("tmdb unavailable (circuit open): %w", err)
		}
		if se, ok := AsStatusError(err); ok {
			metrics.RecordTMDBRequest(endpoint, se.StatusCode, duration)
			return nil, err
		}
		metrics.RecordTMDBRequest(endpoint, 0, duration)
		return nil, err
	}

	metrics.RecordTMDBRequest(endpoint, http.StatusOK, duration)
	return body, nil
}

// doRequest performs the raw HTTP exchange. It runs inside the breaker, so
// transport failures and upstream error statuses both count toward opening
// the circuit.
func (c *Client) doRequest(ctx context.Context, endpoint, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tmdb response: %w", err)
	}

	return body, nil
}

// yearFromReleaseDate extracts the four-digit year from a TMDB release date
// (YYYY-MM-DD). TMDB returns an empty string for unreleased or incomplete
// entries; both that and malformed values are reported as
// ErrInvalidReleaseDate so the import flow can reject them cleanly.
func yearFromReleaseDate(releaseDate string) (int, error) {
	if releaseDate == "" {
		return 0, fmt.Errorf("%w: release date is empty", ErrInvalidReleaseDate)
	}

	yearPart := releaseDate
	if idx := strings.IndexByte(releaseDate, '-'); idx >= 0 {
		yearPart = releaseDate[:idx]
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil || len(yearPart) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReleaseDate, releaseDate)
	}

	return year, nil
}

// readBodyForError reads up to maxErrorBodySize of a response body for
// error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// stateToInt maps a breaker state to the metric encoding
// (0=closed, 1=half-open, 2=open).
func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
