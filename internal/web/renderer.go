// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

// Package web renders the browser-facing HTML pages from templates embedded
// in the binary. The handlers only depend on the Render method, so the
// visual layer can be swapped without touching them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/tomtom215/cinelog/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes embedded HTML templates by view name.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. It fails fast so a broken
// template is caught at startup rather than on first page view.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render writes the named view to the response with the given data and
// status code. Template execution errors after the header is written can
// only be logged.
func (r *Renderer) Render(w http.ResponseWriter, status int, view string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := r.templates.ExecuteTemplate(w, view+".html", data); err != nil {
		logging.Error().Err(err).Str("view", view).Msg("Template execution failed")
		return fmt.Errorf("failed to render %s: %w", view, err)
	}
	return nil
}
