// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package tmdb

import (
	"errors"
	"fmt"
)

// ErrInvalidReleaseDate is returned by GetMovieDetails when TMDB reports an
// empty or malformed release date, so the year cannot be derived. Handlers
// map it to a validation error rather than an upstream failure.
var ErrInvalidReleaseDate = errors.New("invalid release date")

// StatusError reports a non-2xx response from the TMDB API. It carries the
// upstream status code so handlers can surface it to the user.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s returned status %d", e.Endpoint, e.StatusCode)
}

// AsStatusError unwraps err to a *StatusError if one is in the chain.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
