// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

// Package catalog orchestrates the movie store and the TMDB metadata lookup.
// Its main job is the import flow: resolve a TMDB id to catalog fields and
// insert the movie unless its (title, year) pair already exists.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/cinelog/internal/database"
	"github.com/tomtom215/cinelog/internal/logging"
	"github.com/tomtom215/cinelog/internal/metrics"
	"github.com/tomtom215/cinelog/internal/models"
	"github.com/tomtom215/cinelog/internal/tmdb"
)

// Store is the catalog persistence interface, implemented by database.DB.
type Store interface {
	CreateMovie(ctx context.Context, input *models.MovieInput) (int64, error)
	ListMoviesByRating(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	UpdateRatingReview(ctx context.Context, id int64, rating float64, reviews string) error
	DeleteMovie(ctx context.Context, id int64) error
	FindMovieByTitleYear(ctx context.Context, title string, year int) (*models.Movie, error)
	CountMovies(ctx context.Context) (int64, error)
}

// MetadataLookup is the external metadata interface, implemented by
// tmdb.Client.
type MetadataLookup interface {
	SearchMovies(ctx context.Context, title string) ([]tmdb.SearchResult, error)
	GetMovieDetails(ctx context.Context, id int64) (*tmdb.MovieDetails, error)
}

// ImportOutcome tags the result of an import attempt so the presentation
// layer can choose its response shape.
type ImportOutcome string

const (
	// ImportInserted means the movie was added to the catalog.
	ImportInserted ImportOutcome = "inserted"

	// ImportAlreadyExists means a movie with the same (title, year) was
	// already present and nothing was inserted.
	ImportAlreadyExists ImportOutcome = "already_exists"
)

// ImportResult is the tagged outcome of ImportFromLookup. Movie is the
// inserted movie for ImportInserted, or the pre-existing one for
// ImportAlreadyExists.
type ImportResult struct {
	Outcome ImportOutcome
	Movie   *models.Movie
}

// Service wires the store and metadata lookup together.
type Service struct {
	store  Store
	lookup MetadataLookup
}

// NewService creates a catalog service.
func NewService(store Store, lookup MetadataLookup) *Service {
	return &Service{
		store:  store,
		lookup: lookup,
	}
}

// ImportFromLookup fetches movie details from TMDB and inserts the movie
// unless its (title, year) pair is already in the catalog.
//
// Lookup failures propagate unchanged: a *tmdb.StatusError for upstream
// non-2xx responses, tmdb.ErrInvalidReleaseDate for unusable release dates,
// and wrapped transport errors otherwise. The caller maps each to its
// response shape. Imported movies start with ranking 0.
func (s *Service) ImportFromLookup(ctx context.Context, tmdbID int64) (*ImportResult, error) {
	details, err := s.lookup.GetMovieDetails(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindMovieByTitleYear(ctx, details.Title, details.Year)
	if err == nil {
		logging.Ctx(ctx).Debug().
			Str("title", details.Title).
			Int("year", details.Year).
			Int64("existing_id", existing.ID).
			Msg("Import skipped, movie already in catalog")
		metrics.RecordImportOutcome(string(ImportAlreadyExists))
		return &ImportResult{Outcome: ImportAlreadyExists, Movie: existing}, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}

	input := &models.MovieInput{
		Title:       details.Title,
		Year:        details.Year,
		Description: details.Description,
		Rating:      details.Rating,
		Reviews:     details.Reviews,
		ImgURL:      details.ImgURL,
		Ranking:     0,
	}

	id, err := s.store.CreateMovie(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to store imported movie: %w", err)
	}

	movie, err := s.store.GetMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load imported movie %d: %w", id, err)
	}

	logging.Ctx(ctx).Info().
		Int64("id", id).
		Int64("tmdb_id", tmdbID).
		Str("title", movie.Title).
		Int("year", movie.Year).
		Msg("Movie imported")
	metrics.RecordImportOutcome(string(ImportInserted))

	return &ImportResult{Outcome: ImportInserted, Movie: movie}, nil
}

// Stats summarizes the catalog: total count plus the top-rated movie.
func (s *Service) Stats(ctx context.Context) (*models.CatalogStats, error) {
	count, err := s.store.CountMovies(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.CatalogStats{TotalMovies: count}
	if count > 0 {
		movies, err := s.store.ListMoviesByRating(ctx)
		if err != nil {
			return nil, err
		}
		if len(movies) > 0 {
			stats.TopRated = &movies[0]
		}
	}

	return stats, nil
}
