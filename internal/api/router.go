// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinelog/internal/middleware"
)

// NewRouter wires the browser routes, the JSON API and the operational
// endpoints onto a single chi router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if !h.cfg.Security.RateLimitDisabled {
		r.Use(httprate.LimitByIP(
			h.cfg.Security.RateLimitReqs,
			h.cfg.Security.RateLimitWindow,
		))
	}
	r.Use(middleware.PrometheusMetrics)

	// Browser form flows.
	r.Get("/", h.Home)
	r.Get("/add/manually", h.AddManuallyForm)
	r.Post("/add/manually", h.AddManually)
	r.Get("/add", h.SearchForm)
	r.Post("/add", h.Search)
	r.Get("/movie/{movieID}", h.ImportByID)
	r.Post("/movie/{movieID}", h.ImportByID)
	r.Get("/update/{movieID}", h.UpdateForm)
	r.Post("/update/{movieID}", h.Update)
	r.Get("/delete/{movieID}", h.DeleteForm)
	r.Post("/delete/{movieID}", h.Delete)

	// JSON API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/stats", h.Stats)
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", h.ListMovies)
			r.Post("/", h.CreateMovie)
			r.Get("/search", h.SearchMovies)
			r.Post("/import", h.ImportMovie)
			r.Get("/{movieID}", h.GetMovie)
			r.Patch("/{movieID}", h.UpdateMovie)
			r.Delete("/{movieID}", h.DeleteMovie)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// NewServer builds the http.Server around the router with the configured
// timeouts.
func NewServer(h *Handler) *http.Server {
	return &http.Server{
		Addr:              h.cfg.Server.Addr(),
		Handler:           NewRouter(h),
		ReadTimeout:       h.cfg.Server.Timeout,
		WriteTimeout:      h.cfg.Server.Timeout,
		IdleTimeout:       2 * h.cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
