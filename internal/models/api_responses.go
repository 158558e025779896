// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package models

import (
	"time"
)

// APIResponse is the standardized wrapper used by all JSON endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"id": 1, "title": "Heat", ...}],
//	  "metadata": {"timestamp": "2026-08-30T12:00:00Z", "query_time_ms": 3}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_FOUND", "message": "Movie not found"},
//	  "metadata": {"timestamp": "2026-08-30T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured details.
//
// Error codes used by Cinelog:
//   - VALIDATION_ERROR: invalid input parameters
//   - NOT_FOUND: movie doesn't exist
//   - DATABASE_ERROR: query execution failure
//   - EXTERNAL_SERVICE_ERROR: TMDB request failed (details carry the upstream status)
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
