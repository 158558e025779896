// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package catalog

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/tomtom215/cinelog/internal/database"
	"github.com/tomtom215/cinelog/internal/models"
	"github.com/tomtom215/cinelog/internal/tmdb"
)

// memoryStore is an in-memory Store implementation for service tests.
type memoryStore struct {
	nextID int64
	movies map[int64]models.Movie
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1, movies: make(map[int64]models.Movie)}
}

func (m *memoryStore) CreateMovie(_ context.Context, input *models.MovieInput) (int64, error) {
	id := m.nextID
	m.nextID++
	m.movies[id] = models.Movie{
		ID:          id,
		Title:       input.Title,
		Year:        input.Year,
		Description: input.Description,
		Rating:      input.Rating,
		Reviews:     input.Reviews,
		ImgURL:      input.ImgURL,
		Ranking:     input.Ranking,
	}
	return id, nil
}

func (m *memoryStore) ListMoviesByRating(_ context.Context) ([]models.Movie, error) {
	out := make([]models.Movie, 0, len(m.movies))
	for _, movie := range m.movies {
		out = append(out, movie)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memoryStore) GetMovie(_ context.Context, id int64) (*models.Movie, error) {
	movie, ok := m.movies[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &movie, nil
}

func (m *memoryStore) UpdateRatingReview(_ context.Context, id int64, rating float64, reviews string) error {
	movie, ok := m.movies[id]
	if !ok {
		return database.ErrNotFound
	}
	movie.Rating = rating
	movie.Reviews = reviews
	m.movies[id] = movie
	return nil
}

func (m *memoryStore) DeleteMovie(_ context.Context, id int64) error {
	if _, ok := m.movies[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.movies, id)
	return nil
}

func (m *memoryStore) FindMovieByTitleYear(_ context.Context, title string, year int) (*models.Movie, error) {
	var found *models.Movie
	for _, movie := range m.movies {
		if movie.Title == title && movie.Year == year {
			if found == nil || movie.ID < found.ID {
				copied := movie
				found = &copied
			}
		}
	}
	if found == nil {
		return nil, database.ErrNotFound
	}
	return found, nil
}

func (m *memoryStore) CountMovies(_ context.Context) (int64, error) {
	return int64(len(m.movies)), nil
}

// fakeLookup is a canned MetadataLookup for service tests.
type fakeLookup struct {
	details map[int64]*tmdb.MovieDetails
	err     error
}

func (f *fakeLookup) SearchMovies(_ context.Context, _ string) ([]tmdb.SearchResult, error) {
	return nil, f.err
}

func (f *fakeLookup) GetMovieDetails(_ context.Context, id int64) (*tmdb.MovieDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	details, ok := f.details[id]
	if !ok {
		return nil, &tmdb.StatusError{StatusCode: 404, Endpoint: "movie_details"}
	}
	return details, nil
}

func heatDetails() *tmdb.MovieDetails {
	img := "https://image.tmdb.org/t/p/w500/heat.jpg"
	return &tmdb.MovieDetails{
		TMDBID:      949,
		Title:       "Heat",
		Year:        1995,
		Description: "A crew of thieves.",
		Rating:      7.9,
		Reviews:     "A Los Angeles crime saga.",
		ImgURL:      &img,
	}
}

func TestImportFromLookupInserts(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, &fakeLookup{details: map[int64]*tmdb.MovieDetails{949: heatDetails()}})

	result, err := svc.ImportFromLookup(context.Background(), 949)
	if err != nil {
		t.Fatalf("ImportFromLookup: %v", err)
	}

	if result.Outcome != ImportInserted {
		t.Errorf("outcome = %q, want %q", result.Outcome, ImportInserted)
	}
	if result.Movie == nil || result.Movie.Title != "Heat" || result.Movie.Year != 1995 {
		t.Errorf("unexpected movie: %+v", result.Movie)
	}
	if result.Movie.Ranking != 0 {
		t.Errorf("imported ranking = %d, want 0", result.Movie.Ranking)
	}

	count, _ := store.CountMovies(context.Background())
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestImportFromLookupDuplicate(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, &fakeLookup{details: map[int64]*tmdb.MovieDetails{949: heatDetails()}})
	ctx := context.Background()

	first, err := svc.ImportFromLookup(ctx, 949)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}

	second, err := svc.ImportFromLookup(ctx, 949)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	if second.Outcome != ImportAlreadyExists {
		t.Errorf("outcome = %q, want %q", second.Outcome, ImportAlreadyExists)
	}
	if second.Movie.ID != first.Movie.ID {
		t.Errorf("duplicate returned id %d, want existing id %d", second.Movie.ID, first.Movie.ID)
	}

	count, _ := store.CountMovies(ctx)
	if count != 1 {
		t.Errorf("count after duplicate import = %d, want 1", count)
	}
}

func TestImportSameTitleDifferentYear(t *testing.T) {
	store := newMemoryStore()
	remake := &tmdb.MovieDetails{TMDBID: 1000, Title: "Heat", Year: 2024, Description: "Remake.", Rating: 6.0}
	svc := NewService(store, &fakeLookup{details: map[int64]*tmdb.MovieDetails{
		949:  heatDetails(),
		1000: remake,
	}})
	ctx := context.Background()

	if _, err := svc.ImportFromLookup(ctx, 949); err != nil {
		t.Fatalf("import original: %v", err)
	}
	result, err := svc.ImportFromLookup(ctx, 1000)
	if err != nil {
		t.Fatalf("import remake: %v", err)
	}

	if result.Outcome != ImportInserted {
		t.Errorf("outcome = %q, want %q for different year", result.Outcome, ImportInserted)
	}
	count, _ := store.CountMovies(ctx)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestImportLookupFailurePropagates(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, &fakeLookup{err: &tmdb.StatusError{StatusCode: 503, Endpoint: "movie_details"}})

	_, err := svc.ImportFromLookup(context.Background(), 949)
	if err == nil {
		t.Fatal("expected lookup error")
	}

	se, ok := tmdb.AsStatusError(err)
	if !ok {
		t.Fatalf("err = %v, want *tmdb.StatusError", err)
	}
	if se.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", se.StatusCode)
	}

	count, _ := store.CountMovies(context.Background())
	if count != 0 {
		t.Errorf("count after failed lookup = %d, want 0", count)
	}
}

func TestImportInvalidReleaseDatePropagates(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, &fakeLookup{err: tmdb.ErrInvalidReleaseDate})

	_, err := svc.ImportFromLookup(context.Background(), 949)
	if !errors.Is(err, tmdb.ErrInvalidReleaseDate) {
		t.Errorf("err = %v, want ErrInvalidReleaseDate", err)
	}
}

func TestStats(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, &fakeLookup{})
	ctx := context.Background()

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalMovies != 0 || stats.TopRated != nil {
		t.Errorf("empty catalog stats = %+v", stats)
	}

	_, _ = store.CreateMovie(ctx, &models.MovieInput{Title: "Low", Year: 2000, Description: "d", Rating: 3.0})
	_, _ = store.CreateMovie(ctx, &models.MovieInput{Title: "High", Year: 2001, Description: "d", Rating: 9.0})

	stats, err = svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalMovies != 2 {
		t.Errorf("TotalMovies = %d, want 2", stats.TotalMovies)
	}
	if stats.TopRated == nil || stats.TopRated.Title != "High" {
		t.Errorf("TopRated = %+v, want High", stats.TopRated)
	}
}
