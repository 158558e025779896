// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinelog/internal/catalog"
	"github.com/tomtom215/cinelog/internal/database"
	"github.com/tomtom215/cinelog/internal/logging"
	"github.com/tomtom215/cinelog/internal/models"
	"github.com/tomtom215/cinelog/internal/tmdb"
)

// ListMovies handles GET /api/v1/movies.
// Movies are always returned sorted by rating descending. Without a page
// parameter the full catalog is returned, matching the browser view; with
// one, page_size defaults to the configured size and is capped at the
// configured maximum.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	movies, err := h.store.ListMoviesByRating(r.Context())
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		movies, err = h.paginate(movies, pageStr, r.URL.Query().Get("page_size"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
	}

	respondSuccess(w, http.StatusOK, movies, start)
}

// paginate slices the movie list for the given 1-based page.
func (h *Handler) paginate(movies []models.Movie, pageStr, sizeStr string) ([]models.Movie, error) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return nil, fmt.Errorf("page must be a positive integer")
	}

	size := h.cfg.API.DefaultPageSize
	if sizeStr != "" {
		size, err = strconv.Atoi(sizeStr)
		if err != nil || size < 1 {
			return nil, fmt.Errorf("page_size must be a positive integer")
		}
	}
	if size > h.cfg.API.MaxPageSize {
		size = h.cfg.API.MaxPageSize
	}

	offset := (page - 1) * size
	if offset >= len(movies) {
		return []models.Movie{}, nil
	}
	end := offset + size
	if end > len(movies) {
		end = len(movies)
	}
	return movies[offset:end], nil
}

// CreateMovie handles POST /api/v1/movies.
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req MovieCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	imgURL := req.ImgURL
	input := &models.MovieInput{
		Title:       req.Title,
		Year:        req.Year,
		Description: req.Description,
		Rating:      req.Rating,
		Reviews:     req.Reviews,
		ImgURL:      &imgURL,
		Ranking:     req.Ranking,
	}

	id, err := h.store.CreateMovie(r.Context(), input)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	movie, err := h.store.GetMovie(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("id", id).
		Str("title", sanitizeLogValue(movie.Title)).
		Msg("Movie added manually")

	respondSuccess(w, http.StatusCreated, movie, start)
}

// GetMovie handles GET /api/v1/movies/{movieID}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := movieIDParam(chi.URLParam(r, "movieID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie id", nil)
		return
	}

	movie, err := h.store.GetMovie(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, movie, start)
}

// UpdateMovie handles PATCH /api/v1/movies/{movieID}.
// Only rating and reviews are mutable; everything else is ignored by design.
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := movieIDParam(chi.URLParam(r, "movieID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie id", nil)
		return
	}

	var req RateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	if err := h.store.UpdateRatingReview(r.Context(), id, req.Rating, req.Reviews); err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	movie, err := h.store.GetMovie(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, movie, start)
}

// DeleteMovie handles DELETE /api/v1/movies/{movieID}.
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := movieIDParam(chi.URLParam(r, "movieID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid movie id", nil)
		return
	}

	if err := h.store.DeleteMovie(r.Context(), id); err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("id", id).Msg("Movie deleted")
	respondSuccess(w, http.StatusOK, map[string]any{"deleted": id}, start)
}

// SearchMovies handles GET /api/v1/movies/search?title=...
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := SearchRequest{Title: r.URL.Query().Get("title")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	results, err := h.lookup.SearchMovies(r.Context(), req.Title)
	if err != nil {
		h.respondLookupError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, results, start)
}

// ImportMovie handles POST /api/v1/movies/import.
// The response reports the tagged import outcome, so a duplicate import is a
// successful no-op rather than an error.
func (h *Handler) ImportMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	result, err := h.catalog.ImportFromLookup(r.Context(), req.TMDBID)
	if err != nil {
		h.respondLookupError(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Outcome == catalog.ImportAlreadyExists {
		status = http.StatusOK
	}

	respondSuccess(w, status, map[string]any{
		"outcome": result.Outcome,
		"movie":   result.Movie,
	}, start)
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, stats, start)
}

// respondStoreError maps store errors to API responses.
func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found", nil)
		return
	}

	logging.CtxErr(r.Context(), err).Msg("Database operation failed")
	respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Database operation failed", nil)
}

// respondLookupError maps TMDB lookup errors to API responses. An upstream
// non-2xx becomes a 502 carrying that status; an unusable release date is
// the caller's data problem, reported as a validation error.
func (h *Handler) respondLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if se, ok := tmdb.AsStatusError(err); ok {
		logging.CtxErr(r.Context(), err).Int("upstream_status", se.StatusCode).Msg("TMDB request failed")
		respondError(w, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR",
			"Movie lookup failed", map[string]interface{}{"upstream_status": se.StatusCode})
		return
	}
	if errors.Is(err, tmdb.ErrInvalidReleaseDate) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Movie has no usable release date", nil)
		return
	}
	logging.CtxErr(r.Context(), err).Msg("Movie lookup failed")
	respondError(w, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR", "Movie lookup failed", nil)
}
