// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/cinelog/internal/logging"
)

// ErrNotFound is returned when a movie does not exist.
// Callers match it with errors.Is to map to a 404.
var ErrNotFound = errors.New("movie not found")

// closeWithLog closes a resource and logs any error.
// Use this where a Close failure should be acknowledged but not propagated.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
