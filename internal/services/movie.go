package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"cinematicketing/internal/domain"
)

const (
	defaultMovieLimit = 20
	maxMovieLimit     = 100
)

type movieService struct {
	movieRepo      domain.MovieRepository
	contextTimeout time.Duration
}

// NewMovieService creates a MovieService backed by the given repository.
func NewMovieService(movieRepo domain.MovieRepository, timeout time.Duration) domain.MovieService {
	return &movieService{movieRepo: movieRepo, contextTimeout: timeout}
}

func (s *movieService) AddMovie(ctx context.Context, movie *domain.Movie) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	movie.Title = strings.TrimSpace(movie.Title)
	if movie.Title == "" {
		return fmt.Errorf("%w: movie title is required", domain.ErrValidation)
	}
	if movie.Duration <= 0 {
		return fmt.Errorf("%w: movie duration must be positive", domain.ErrValidation)
	}
	movie.Slug = slug.Make(movie.Title)

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

func (s *movieService) ListMovies(ctx context.Context, limit, offset int) ([]*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 {
		limit = defaultMovieLimit
	}
	if limit > maxMovieLimit {
		limit = maxMovieLimit
	}
	if offset < 0 {
		offset = 0
	}

	movies, err := s.movieRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	if movies == nil {
		movies = []*domain.Movie{}
	}
	return movies, nil
}

func (s *movieService) ListMoviesByDate(ctx context.Context, date string) ([]*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}

	movies, err := s.movieRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list movies by date: %w", err)
	}
	if movies == nil {
		movies = []*domain.Movie{}
	}
	return movies, nil
}
