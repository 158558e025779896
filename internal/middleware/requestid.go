// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

// Package middleware provides HTTP middleware for the Cinelog router:
// request ID propagation and Prometheus request instrumentation.
// Rate limiting and CORS come from go-chi/httprate and go-chi/cors and are
// wired directly in the router.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tomtom215/cinelog/internal/logging"
)

// RequestID generates a unique ID for each request and adds it to both the
// response header and the request context, so handlers can correlate log
// lines with client-visible responses.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Honor an ID set by an upstream proxy
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from a request's context.
func GetRequestID(r *http.Request) string {
	return logging.RequestIDFromContext(r.Context())
}
