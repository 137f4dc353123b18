package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cinematicketing/internal/domain"
)

type movieRepository struct {
	DB *sql.DB
}

func NewMovieRepository(db *sql.DB) domain.MovieRepository {
	return &movieRepository{DB: db}
}

func (r *movieRepository) Create(ctx context.Context, m *domain.Movie) error {
	query := `
		INSERT INTO movies (title, slug, duration, origin, poster, synopsis)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, m.Title, m.Slug, m.Duration, m.Origin, m.Poster, m.Synopsis).Scan(&m.ID)
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `
		SELECT id, title, slug, duration, origin, poster, synopsis
		FROM movies
		WHERE id = $1
	`
	m := &domain.Movie{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Title, &m.Slug, &m.Duration, &m.Origin, &m.Poster, &m.Synopsis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *movieRepository) List(ctx context.Context, limit, offset int) ([]*domain.Movie, error) {
	query := `
		SELECT id, title, slug, duration, origin, poster, synopsis
		FROM movies
		ORDER BY title
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovies(rows)
}

// ListByDate returns movies that have at least one open session on the date.
func (r *movieRepository) ListByDate(ctx context.Context, date string) ([]*domain.Movie, error) {
	query := `
		SELECT DISTINCT m.id, m.title, m.slug, m.duration, m.origin, m.poster, m.synopsis
		FROM movies m
		INNER JOIN sessions s ON s.movie_id = m.id
		WHERE s.date = $1 AND s.status = 'open'
		ORDER BY m.title
	`
	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovies(rows)
}

func collectMovies(rows *sql.Rows) ([]*domain.Movie, error) {
	var movies []*domain.Movie
	for rows.Next() {
		m := &domain.Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Slug, &m.Duration, &m.Origin, &m.Poster, &m.Synopsis); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
