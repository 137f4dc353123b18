package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cinematicketing/internal/domain"
)

type hallRepository struct {
	DB *sql.DB
}

func NewHallRepository(db *sql.DB) domain.HallRepository {
	return &hallRepository{DB: db}
}

func (r *hallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	seats, err := hall.Seats.Encode()
	if err != nil {
		return err
	}
	query := `
		INSERT INTO halls (name, seats, price_regular, price_vip)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, hall.Name, seats, hall.PriceRegular, hall.PriceVIP).Scan(&hall.ID)
}

func (r *hallRepository) GetByID(ctx context.Context, id int64) (*domain.Hall, error) {
	query := `
		SELECT id, name, seats, price_regular, price_vip
		FROM halls
		WHERE id = $1
	`
	return scanHall(r.DB.QueryRowContext(ctx, query, id))
}

func (r *hallRepository) List(ctx context.Context) ([]*domain.Hall, error) {
	query := `
		SELECT id, name, seats, price_regular, price_vip
		FROM halls
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var halls []*domain.Hall
	for rows.Next() {
		hall, err := scanHall(rows)
		if err != nil {
			return nil, err
		}
		halls = append(halls, hall)
	}
	return halls, rows.Err()
}

func (r *hallRepository) UpdateSeats(ctx context.Context, id int64, seats domain.SeatGrid) error {
	raw, err := seats.Encode()
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `UPDATE halls SET seats = $2 WHERE id = $1`, id, raw)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

func (r *hallRepository) UpdatePrices(ctx context.Context, id int64, regular, vip float64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE halls SET price_regular = $2, price_vip = $3 WHERE id = $1`,
		id, regular, vip)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

func (r *hallRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM halls WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHall(row rowScanner) (*domain.Hall, error) {
	hall := &domain.Hall{}
	var seats string
	err := row.Scan(&hall.ID, &hall.Name, &seats, &hall.PriceRegular, &hall.PriceVIP)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	hall.Seats, err = domain.ParseSeatGrid(seats)
	if err != nil {
		return nil, fmt.Errorf("hall %d has a corrupt seat grid: %w", hall.ID, err)
	}
	return hall, nil
}

func oneRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
