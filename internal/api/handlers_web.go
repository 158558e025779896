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

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinelog/internal/catalog"
	"github.com/tomtom215/cinelog/internal/database"
	"github.com/tomtom215/cinelog/internal/logging"
	"github.com/tomtom215/cinelog/internal/models"
	"github.com/tomtom215/cinelog/internal/tmdb"
	"github.com/tomtom215/cinelog/internal/validation"
)

// Browser-facing form routes. Successful POSTs redirect with 303 See Other
// so a refresh never resubmits the form; validation failures re-render the
// form with inline errors and the submitted values preserved.

// Home handles GET /.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	movies, err := h.store.ListMoviesByRating(r.Context())
	if err != nil {
		h.renderServerError(w, r, err)
		return
	}

	_ = h.renderer.Render(w, http.StatusOK, "index", map[string]any{"Movies": movies})
}

// AddManuallyForm handles GET /add/manually.
func (h *Handler) AddManuallyForm(w http.ResponseWriter, r *http.Request) {
	_ = h.renderer.Render(w, http.StatusOK, "add", map[string]any{
		"Form":   map[string]string{},
		"Errors": map[string]string{},
	})
}

// AddManually handles POST /add/manually.
func (h *Handler) AddManually(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderBadRequest(w, "Could not read the submitted form")
		return
	}

	form := map[string]string{
		"Title":       r.PostFormValue("title"),
		"Year":        r.PostFormValue("year"),
		"Description": r.PostFormValue("description"),
		"Rating":      r.PostFormValue("rating"),
		"Reviews":     r.PostFormValue("reviews"),
		"ImgURL":      r.PostFormValue("img_url"),
		"Ranking":     r.PostFormValue("ranking"),
	}

	req, fieldErrs := parseMovieCreateForm(form)
	if len(fieldErrs) > 0 {
		_ = h.renderer.Render(w, http.StatusBadRequest, "add", map[string]any{
			"Form":   form,
			"Errors": fieldErrs,
		})
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
		h.renderServerError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("id", id).
		Str("title", sanitizeLogValue(req.Title)).
		Msg("Movie added manually")

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SearchForm handles GET /add.
func (h *Handler) SearchForm(w http.ResponseWriter, r *http.Request) {
	_ = h.renderer.Render(w, http.StatusOK, "search", map[string]any{
		"Form":   map[string]string{},
		"Errors": map[string]string{},
	})
}

// Search handles POST /add: look the title up on TMDB and show candidates.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderBadRequest(w, "Could not read the submitted form")
		return
	}

	req := SearchRequest{Title: r.PostFormValue("title")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		_ = h.renderer.Render(w, http.StatusBadRequest, "search", map[string]any{
			"Form":   map[string]string{"Title": req.Title},
			"Errors": verr.FieldMessages(),
		})
		return
	}

	results, err := h.lookup.SearchMovies(r.Context(), req.Title)
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	_ = h.renderer.Render(w, http.StatusOK, "select", map[string]any{"Results": results})
}

// ImportByID handles GET and POST /movie/{movieID}: import the selected TMDB
// movie into the catalog. A (title, year) duplicate is a silent no-op; both
// outcomes land back on the catalog page.
func (h *Handler) ImportByID(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := movieIDParam(chi.URLParam(r, "movieID"))
	if err != nil {
		h.renderBadRequest(w, "Invalid movie id")
		return
	}

	result, err := h.catalog.ImportFromLookup(r.Context(), tmdbID)
	if err != nil {
		h.renderLookupError(w, r, err)
		return
	}

	if result.Outcome == catalog.ImportAlreadyExists {
		logging.Ctx(r.Context()).Debug().
			Int64("tmdb_id", tmdbID).
			Msg("Import skipped, movie already in catalog")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdateForm handles GET /update/{movieID}: edit form prefilled from the
// stored movie.
func (h *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.movieFromPath(w, r)
	if !ok {
		return
	}

	_ = h.renderer.Render(w, http.StatusOK, "edit", map[string]any{
		"Movie": movie,
		"Form": map[string]string{
			"Rating":  strconv.FormatFloat(movie.Rating, 'f', -1, 64),
			"Reviews": movie.Reviews,
		},
		"Errors": map[string]string{},
	})
}

// Update handles POST /update/{movieID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.movieFromPath(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderBadRequest(w, "Could not read the submitted form")
		return
	}

	form := map[string]string{
		"Rating":  r.PostFormValue("rating"),
		"Reviews": r.PostFormValue("reviews"),
	}

	req, fieldErrs := parseRateReviewForm(form)
	if len(fieldErrs) > 0 {
		_ = h.renderer.Render(w, http.StatusBadRequest, "edit", map[string]any{
			"Movie":  movie,
			"Form":   form,
			"Errors": fieldErrs,
		})
		return
	}

	if err := h.store.UpdateRatingReview(r.Context(), movie.ID, req.Rating, req.Reviews); err != nil {
		h.renderStoreError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteForm handles GET /delete/{movieID}: confirmation page.
func (h *Handler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.movieFromPath(w, r)
	if !ok {
		return
	}

	_ = h.renderer.Render(w, http.StatusOK, "delete", map[string]any{"Movie": movie})
}

// Delete handles POST /delete/{movieID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := movieIDParam(chi.URLParam(r, "movieID"))
	if err != nil {
		h.renderBadRequest(w, "Invalid movie id")
		return
	}

	if err := h.store.DeleteMovie(r.Context(), id); err != nil {
		h.renderStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("id", id).Msg("Movie deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// movieFromPath loads the movie named by {movieID}, rendering the
// appropriate error page when it cannot. The bool reports success.
func (h *Handler) movieFromPath(w http.ResponseWriter, r *http.Request) (*models.Movie, bool) {
	id, err := movieIDParam(chi.URLParam(r, "movieID"))
	if err != nil {
		h.renderBadRequest(w, "Invalid movie id")
		return nil, false
	}

	movie, err := h.store.GetMovie(r.Context(), id)
	if err != nil {
		h.renderStoreError(w, r, err)
		return nil, false
	}

	return movie, true
}

// parseMovieCreateForm converts raw form values into a MovieCreateRequest,
// merging strconv failures with validator field errors so the user sees one
// message per field.
func parseMovieCreateForm(form map[string]string) (*MovieCreateRequest, map[string]string) {
	fieldErrs := map[string]string{}

	req := &MovieCreateRequest{
		Title:       form["Title"],
		Description: form["Description"],
		Reviews:     form["Reviews"],
		ImgURL:      form["ImgURL"],
	}

	if form["Year"] == "" {
		fieldErrs["Year"] = "Year is required"
	} else if year, err := strconv.Atoi(form["Year"]); err != nil {
		fieldErrs["Year"] = "Year must be a whole number"
	} else {
		req.Year = year
	}

	if form["Rating"] == "" {
		fieldErrs["Rating"] = "Rating is required"
	} else if rating, err := strconv.ParseFloat(form["Rating"], 64); err != nil {
		fieldErrs["Rating"] = "Rating must be a number"
	} else {
		req.Rating = rating
	}

	if form["Ranking"] != "" {
		if ranking, err := strconv.Atoi(form["Ranking"]); err != nil {
			fieldErrs["Ranking"] = "Ranking must be a whole number"
		} else {
			req.Ranking = ranking
		}
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		for field, msg := range verr.FieldMessages() {
			if _, seen := fieldErrs[field]; !seen {
				fieldErrs[field] = msg
			}
		}
	}

	return req, fieldErrs
}

// parseRateReviewForm converts raw form values into a RateReviewRequest.
func parseRateReviewForm(form map[string]string) (*RateReviewRequest, map[string]string) {
	fieldErrs := map[string]string{}

	req := &RateReviewRequest{Reviews: form["Reviews"]}

	if form["Rating"] == "" {
		fieldErrs["Rating"] = "Rating is required"
	} else if rating, err := strconv.ParseFloat(form["Rating"], 64); err != nil {
		fieldErrs["Rating"] = "Rating must be a number"
	} else {
		req.Rating = rating
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		for field, msg := range verr.FieldMessages() {
			if _, seen := fieldErrs[field]; !seen {
				fieldErrs[field] = msg
			}
		}
	}

	return req, fieldErrs
}

// renderStoreError renders a store failure as a page: 404 for a missing
// movie, 500 otherwise.
func (h *Handler) renderStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, database.ErrNotFound) {
		_ = h.renderer.Render(w, http.StatusNotFound, "error", map[string]any{
			"Message": "That movie is not in your catalog.",
		})
		return
	}
	h.renderServerError(w, r, err)
}

// renderLookupError renders a TMDB failure: 502 carrying the upstream
// status, or 400 for a movie whose release date cannot produce a year.
func (h *Handler) renderLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if se, ok := tmdb.AsStatusError(err); ok {
		logging.CtxErr(r.Context(), err).Int("upstream_status", se.StatusCode).Msg("TMDB request failed")
		_ = h.renderer.Render(w, http.StatusBadGateway, "error", map[string]any{
			"Message":        "Movie lookup failed.",
			"UpstreamStatus": se.StatusCode,
		})
		return
	}
	if errors.Is(err, tmdb.ErrInvalidReleaseDate) {
		_ = h.renderer.Render(w, http.StatusBadRequest, "error", map[string]any{
			"Message": "That movie has no usable release date, so it cannot be imported.",
		})
		return
	}

	logging.CtxErr(r.Context(), err).Msg("Movie lookup failed")
	_ = h.renderer.Render(w, http.StatusBadGateway, "error", map[string]any{
		"Message": "Movie lookup failed.",
	})
}

func (h *Handler) renderServerError(w http.ResponseWriter, r *http.Request, err error) {
	logging.CtxErr(r.Context(), err).Msg("Request failed")
	_ = h.renderer.Render(w, http.StatusInternalServerError, "error", map[string]any{
		"Message": "Something went wrong on our side.",
	})
}

func (h *Handler) renderBadRequest(w http.ResponseWriter, message string) {
	_ = h.renderer.Render(w, http.StatusBadRequest, "error", map[string]any{
		"Message": fmt.Sprintf("%s.", message),
	})
}
