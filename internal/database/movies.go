// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/cinelog/internal/metrics"
	"github.com/tomtom215/cinelog/internal/models"
)

// CreateMovie inserts a new movie and returns its assigned id.
func (db *DB) CreateMovie(ctx context.Context, input *models.MovieInput) (int64, error) {
	start := time.Now()

	var id int64
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO movies (title, year, description, rating, reviews, img_url, ranking)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		input.Title, input.Year, input.Description, input.Rating,
		input.Reviews, input.ImgURL, input.Ranking,
	).Scan(&id)

	metrics.RecordDBQuery("create_movie", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to insert movie: %w", err)
	}

	return id, nil
}

// ListMoviesByRating returns all movies sorted by rating descending.
// Ties are broken by id ascending, so equally rated movies keep insertion
// order across calls.
func (db *DB) ListMoviesByRating(ctx context.Context) ([]models.Movie, error) {
	start := time.Now()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, year, description, rating, reviews, img_url, ranking, created_at
		 FROM movies
		 ORDER BY rating DESC, id ASC`)
	metrics.RecordDBQuery("list_movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer closeWithLog(rows, "movie rows")

	movies := make([]models.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, *movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movie row iteration failed: %w", err)
	}

	return movies, nil
}

// GetMovie fetches a single movie by id. Returns ErrNotFound when absent.
func (db *DB) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	start := time.Now()

	row := db.conn.QueryRowContext(ctx,
		`SELECT id, title, year, description, rating, reviews, img_url, ranking, created_at
		 FROM movies
		 WHERE id = ?`, id)

	movie, err := scanMovie(row)
	metrics.RecordDBQuery("get_movie", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	return movie, nil
}

// UpdateRatingReview overwrites the rating and reviews of a movie.
// These are the only mutable fields. Returns ErrNotFound when the id is
// absent. Repeating the same update is a no-op.
func (db *DB) UpdateRatingReview(ctx context.Context, id int64, rating float64, reviews string) error {
	start := time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE movies SET rating = ?, reviews = ? WHERE id = ?`,
		rating, reviews, id)
	metrics.RecordDBQuery("update_rating_review", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update movie %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteMovie removes a movie by id. Returns ErrNotFound when absent, so a
// second delete of the same id reports the missing row instead of succeeding.
func (db *DB) DeleteMovie(ctx context.Context, id int64) error {
	start := time.Now()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	metrics.RecordDBQuery("delete_movie", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// FindMovieByTitleYear looks a movie up by its (title, year) de-duplication
// key. Returns ErrNotFound when absent. Only the TMDB import flow uses this;
// manual adds are intentionally not deduplicated.
func (db *DB) FindMovieByTitleYear(ctx context.Context, title string, year int) (*models.Movie, error) {
	start := time.Now()

	row := db.conn.QueryRowContext(ctx,
		`SELECT id, title, year, description, rating, reviews, img_url, ranking, created_at
		 FROM movies
		 WHERE title = ? AND year = ?
		 ORDER BY id ASC
		 LIMIT 1`, title, year)

	movie, err := scanMovie(row)
	metrics.RecordDBQuery("find_movie_by_title_year", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up movie %q (%d): %w", title, year, err)
	}

	return movie, nil
}

// CountMovies returns the total number of movies in the catalog.
func (db *DB) CountMovies(ctx context.Context) (int64, error) {
	start := time.Now()

	var count int64
	err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM movies`).Scan(&count)
	metrics.RecordDBQuery("count_movies", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	return count, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMovie scans a movie row in the canonical column order.
func scanMovie(row rowScanner) (*models.Movie, error) {
	var (
		movie   models.Movie
		reviews sql.NullString
		imgURL  sql.NullString
	)

	err := row.Scan(&movie.ID, &movie.Title, &movie.Year, &movie.Description,
		&movie.Rating, &reviews, &imgURL, &movie.Ranking, &movie.CreatedAt)
	if err != nil {
		return nil, err
	}

	if reviews.Valid {
		movie.Reviews = reviews.String
	}
	if imgURL.Valid {
		movie.ImgURL = &imgURL.String
	}

	return &movie, nil
}
