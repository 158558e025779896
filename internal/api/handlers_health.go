// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinelog/internal/logging"
)

// Health handles GET /api/v1/health. Degraded means the process is up but
// the database is not answering pings.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := "healthy"
	httpStatus := http.StatusOK
	checks := map[string]string{"database": "ok"}

	if err := h.pinger.Ping(r.Context()); err != nil {
		logging.CtxErr(r.Context(), err).Msg("Database ping failed")
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
		checks["database"] = "unreachable"
	}

	respondSuccess(w, httpStatus, map[string]any{
		"status":         status,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"checks":         checks,
	}, start)
}
