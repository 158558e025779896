// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

// Package models defines the data structures shared across Cinelog:
// the Movie catalog entity and the standardized API response wrapper.
package models

import "time"

// Movie is the sole catalog entity, stored in the movies table.
//
// Identity and mutability:
//   - ID is assigned by the database on insert and never changes.
//   - Rating and Reviews are the only fields editable after creation.
//   - (Title, Year) acts as the de-duplication key for the TMDB import flow;
//     manual adds are not deduplicated.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"`
	Reviews     string    `json:"reviews"`
	ImgURL      *string   `json:"img_url"`
	Ranking     int       `json:"ranking"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovieInput carries the fields needed to create a movie, either from the
// manual-add form or mapped from a TMDB details lookup.
type MovieInput struct {
	Title       string
	Year        int
	Description string
	Rating      float64
	Reviews     string
	ImgURL      *string
	Ranking     int
}

// CatalogStats summarizes the catalog for the stats endpoint.
type CatalogStats struct {
	TotalMovies int64  `json:"total_movies"`
	TopRated    *Movie `json:"top_rated,omitempty"`
}
