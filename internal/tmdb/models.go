// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package tmdb

// SearchResult is one candidate movie from a title search, as presented to
// the user on the selection page.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
}

// MovieDetails is the mapped result of a details lookup, ready to become a
// catalog MovieInput. Year is derived from the release date; ImgURL is nil
// when the movie has no poster.
type MovieDetails struct {
	TMDBID      int64
	Title       string
	Year        int
	Description string
	Rating      float64
	Reviews     string
	ImgURL      *string
}

// searchResponse is the wire shape of GET /search/movie.
type searchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// detailsResponse is the wire shape of GET /movie/{id}.
type detailsResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Tagline     string  `json:"tagline"`
}
