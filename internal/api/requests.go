// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package api

// Request structs validated with go-playground/validator tags. Both the JSON
// endpoints and the HTML form flows funnel into these, so the two surfaces
// enforce identical rules.

// MovieCreateRequest is a manual movie creation. All fields are required;
// a movie added by hand must be complete, unlike a TMDB import where the
// poster may be missing. The year lower bound is the first year motion
// pictures exist for.
type MovieCreateRequest struct {
	Title       string  `json:"title" validate:"required,max=150"`
	Year        int     `json:"year" validate:"required,min=1878,max=2100"`
	Description string  `json:"description" validate:"required,max=200"`
	Rating      float64 `json:"rating" validate:"required,min=0,max=10"`
	Reviews     string  `json:"reviews" validate:"required,max=150"`
	ImgURL      string  `json:"img_url" validate:"required,url,max=300"`
	Ranking     int     `json:"ranking" validate:"min=0,max=1000"`
}

// RateReviewRequest updates the two mutable fields of a movie.
type RateReviewRequest struct {
	Rating  float64 `json:"rating" validate:"required,min=0,max=10"`
	Reviews string  `json:"reviews" validate:"required,max=150"`
}

// SearchRequest is a TMDB title search.
type SearchRequest struct {
	Title string `json:"title" validate:"required,min=1,max=150"`
}

// ImportRequest imports a movie from TMDB by id.
type ImportRequest struct {
	TMDBID int64 `json:"tmdb_id" validate:"required,min=1"`
}
