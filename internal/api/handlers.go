// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

// Package api provides the HTTP surface of Cinelog: the browser-facing form
// routes of the original catalog app and a JSON API mirroring them, all on a
// chi router.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinelog/internal/catalog"
	"github.com/tomtom215/cinelog/internal/config"
)

// Renderer abstracts HTML page rendering; internal/web provides the embedded
// template implementation. Handlers only choose the view name, status and
// data, keeping the visual layer replaceable.
type Renderer interface {
	Render(w http.ResponseWriter, status int, view string, data any) error
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	store     catalog.Store
	catalog   *catalog.Service
	lookup    catalog.MetadataLookup
	renderer  Renderer
	cfg       *config.Config
	pinger    Pinger
	startTime time.Time
}

// NewHandler creates the HTTP handler set.
func NewHandler(store catalog.Store, svc *catalog.Service, lookup catalog.MetadataLookup,
	renderer Renderer, cfg *config.Config, pinger Pinger) *Handler {
	return &Handler{
		store:     store,
		catalog:   svc,
		lookup:    lookup,
		renderer:  renderer,
		cfg:       cfg,
		pinger:    pinger,
		startTime: time.Now(),
	}
}
