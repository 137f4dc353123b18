package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cinematicketing/internal/domain"

	"github.com/lib/pq"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	return createSession(ctx, r.DB, s)
}

func (r *sessionRepository) Update(ctx context.Context, s *domain.Session) error {
	return updateSession(ctx, r.DB, s)
}

func (r *sessionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

func (r *sessionRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	query := `
		SELECT id, hall_id, movie_id, date, time, seats_status, status
		FROM sessions
		WHERE id = $1
	`
	return scanSession(r.DB.QueryRowContext(ctx, query, id))
}

func (r *sessionRepository) ListByDate(ctx context.Context, date string) ([]*domain.Session, error) {
	query := `
		SELECT id, hall_id, movie_id, date, time, seats_status, status
		FROM sessions
		WHERE date = $1
		ORDER BY time, hall_id
	`
	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *sessionRepository) ListByHall(ctx context.Context, hallID int64, date string) ([]*domain.Session, error) {
	query := `
		SELECT id, hall_id, movie_id, date, time, seats_status, status
		FROM sessions
		WHERE hall_id = $1 AND date = $2
		ORDER BY time
	`
	rows, err := r.DB.QueryContext(ctx, query, hallID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *sessionRepository) SetStatusByHall(ctx context.Context, hallID int64, status string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sessions SET status = $2 WHERE hall_id = $1`,
		hallID, status)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sessionRepository) ListSoldTickets(ctx context.Context, sessionID int64) ([]domain.SoldTicket, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT seat_row, seat_column FROM sold_tickets WHERE session_id = $1 ORDER BY seat_row, seat_column`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets := []domain.SoldTicket{}
	for rows.Next() {
		var t domain.SoldTicket
		if err := rows.Scan(&t.SeatRow, &t.SeatColumn); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *sessionRepository) CreateSoldTickets(ctx context.Context, sessionID int64, seats []domain.SoldTicket) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, seat := range seats {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sold_tickets (session_id, seat_row, seat_column) VALUES ($1, $2, $3)`,
			sessionID, seat.SeatRow, seat.SeatColumn)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
				return domain.ErrSeatTaken
			}
			return err
		}
	}
	return tx.Commit()
}

func (r *sessionRepository) CloseFinished(ctx context.Context, beforeDate string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sessions SET status = 'closed' WHERE status = 'open' AND date < $1`,
		beforeDate)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ApplyPlan commits a partitioned schedule save as one transaction: bulk
// update, then deletes, then bulk create. Any failure rolls back the whole
// plan.
func (r *sessionRepository) ApplyPlan(ctx context.Context, updates []*domain.Session, deleteIDs []int64, creates []*domain.Session) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range updates {
		if err := updateSession(ctx, tx, s); err != nil {
			return fmt.Errorf("update session %s: %w", s.ID, err)
		}
	}
	if len(deleteIDs) > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ANY($1)`, pq.Array(deleteIDs)); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
	}
	for _, s := range creates {
		if err := createSession(ctx, tx, s); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
	}
	return tx.Commit()
}

type execQueryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func createSession(ctx context.Context, db execQueryer, s *domain.Session) error {
	query := `
		INSERT INTO sessions (hall_id, movie_id, date, time, seats_status, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	if err := db.QueryRowContext(ctx, query, s.HallID, s.MovieID, s.Date, s.Time, s.SeatsStatus, s.Status).Scan(&id); err != nil {
		return err
	}
	s.ID = domain.PersistedRef(id)
	return nil
}

func updateSession(ctx context.Context, db execQueryer, s *domain.Session) error {
	id, ok := s.ID.ID()
	if !ok {
		return fmt.Errorf("cannot update a pending session %s", s.ID)
	}
	res, err := db.ExecContext(ctx,
		`UPDATE sessions SET hall_id = $2, movie_id = $3, date = $4, time = $5, seats_status = $6, status = $7 WHERE id = $1`,
		id, s.HallID, s.MovieID, s.Date, s.Time, s.SeatsStatus, s.Status)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

func scanSession(row rowScanner) (*domain.Session, error) {
	s := &domain.Session{}
	var id int64
	err := row.Scan(&id, &s.HallID, &s.MovieID, &s.Date, &s.Time, &s.SeatsStatus, &s.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.ID = domain.PersistedRef(id)
	return s, nil
}

func collectSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		s := &domain.Session{}
		var id int64
		if err := rows.Scan(&id, &s.HallID, &s.MovieID, &s.Date, &s.Time, &s.SeatsStatus, &s.Status); err != nil {
			return nil, err
		}
		s.ID = domain.PersistedRef(id)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
