package domain

import "context"

// Movie represents a film in the catalog. Duration is in minutes and is
// the sole driver of a session's end time and on-timeline width.
type Movie struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Duration int    `json:"duration"`
	Origin   string `json:"origin"`
	Poster   string `json:"poster"`
	Synopsis string `json:"synopsis"`
}

// NewMovie returns a new Movie. ID is set by the repository on create and
// Slug is derived from the title by the service.
func NewMovie(title string, duration int, origin, poster, synopsis string) *Movie {
	return &Movie{
		Title:    title,
		Duration: duration,
		Origin:   origin,
		Poster:   poster,
		Synopsis: synopsis,
	}
}

// MovieIndex resolves movie ids to movies, typically for duration lookups.
type MovieIndex map[int64]*Movie

// IndexMovies builds a MovieIndex from a movie list.
func IndexMovies(movies []*Movie) MovieIndex {
	idx := make(MovieIndex, len(movies))
	for _, m := range movies {
		idx[m.ID] = m
	}
	return idx
}

// MovieRepository defines the interface for movie storage.
type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id int64) (*Movie, error)
	List(ctx context.Context, limit, offset int) ([]*Movie, error)
	ListByDate(ctx context.Context, date string) ([]*Movie, error)
}

// MovieService defines the business logic for the movie catalog.
type MovieService interface {
	AddMovie(ctx context.Context, movie *Movie) error
	ListMovies(ctx context.Context, limit, offset int) ([]*Movie, error)
	ListMoviesByDate(ctx context.Context, date string) ([]*Movie, error)
}
