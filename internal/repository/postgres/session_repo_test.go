package postgres

import (
	"context"
	"database/sql"
	"testing"

	"cinematicketing/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		session *domain.Session
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name: "success",
			session: &domain.Session{
				HallID:      1,
				MovieID:     2,
				Date:        "2025-06-01",
				Time:        "10:00:00",
				SeatsStatus: `[["standart"]]`,
				Status:      domain.SessionClosed,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WithArgs(int64(1), int64(2), "2025-06-01", "10:00:00", `[["standart"]]`, "closed").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
			},
			wantID: 11,
		},
		{
			name:    "db error",
			session: &domain.Session{HallID: 1, MovieID: 2},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO sessions`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSessionRepository(db)
			err = repo.Create(ctx, tt.session)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			id, ok := tt.session.ID.ID()
			require.True(t, ok)
			assert.Equal(t, tt.wantID, id)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE sessions SET`).
			WithArgs(int64(7), int64(1), int64(2), "2025-06-01", "12:30:00", `[]`, "closed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSessionRepository(db)
		err = repo.Update(ctx, &domain.Session{
			ID: domain.PersistedRef(7), HallID: 1, MovieID: 2,
			Date: "2025-06-01", Time: "12:30:00", SeatsStatus: `[]`, Status: domain.SessionClosed,
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE sessions SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSessionRepository(db)
		err = repo.Update(ctx, &domain.Session{ID: domain.PersistedRef(99), SeatsStatus: `[]`, Status: "closed"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("pending session is rejected", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewSessionRepository(db)
		err = repo.Update(ctx, &domain.Session{ID: domain.NewPendingRef()})
		require.Error(t, err)
	})
}

func TestSessionRepository_ListByDate(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "hall_id", "movie_id", "date", "time", "seats_status", "status"}).
		AddRow(int64(1), int64(1), int64(2), "2025-06-01", "10:00:00", `[]`, "open").
		AddRow(int64(2), int64(1), int64(3), "2025-06-01", "14:00:00", `[]`, "closed")
	mock.ExpectQuery(`SELECT id, hall_id, movie_id, date, time, seats_status, status\s+FROM sessions\s+WHERE date`).
		WithArgs("2025-06-01").
		WillReturnRows(rows)

	repo := NewSessionRepository(db)
	sessions, err := repo.ListByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	id, ok := sessions[0].ID.ID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "open", sessions[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_ApplyPlan(t *testing.T) {
	ctx := context.Background()

	update := &domain.Session{
		ID: domain.PersistedRef(1), HallID: 1, MovieID: 2,
		Date: "2025-06-01", Time: "10:00:00", SeatsStatus: `[]`, Status: "closed",
	}
	create := &domain.Session{
		ID: domain.NewPendingRef(), HallID: 1, MovieID: 3,
		Date: "2025-06-01", Time: "13:00:00", SeatsStatus: `[]`, Status: "closed",
	}

	t.Run("commits all three phases in one tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE sessions SET`).
			WithArgs(int64(1), int64(1), int64(2), "2025-06-01", "10:00:00", `[]`, "closed").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM sessions WHERE id = ANY`).
			WithArgs(pq.Array([]int64{5})).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO sessions`).
			WithArgs(int64(1), int64(3), "2025-06-01", "13:00:00", `[]`, "closed").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
		mock.ExpectCommit()

		repo := NewSessionRepository(db)
		err = repo.ApplyPlan(ctx, []*domain.Session{update}, []int64{5}, []*domain.Session{create})
		require.NoError(t, err)

		id, ok := create.ID.ID()
		require.True(t, ok, "created session gains a persisted ref")
		assert.Equal(t, int64(42), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE sessions SET`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewSessionRepository(db)
		err = repo.ApplyPlan(ctx, []*domain.Session{update}, nil, nil)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_SoldTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT seat_row, seat_column FROM sold_tickets`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"seat_row", "seat_column"}).AddRow(0, 1).AddRow(2, 4))

		repo := NewSessionRepository(db)
		tickets, err := repo.ListSoldTickets(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, []domain.SoldTicket{{SeatRow: 0, SeatColumn: 1}, {SeatRow: 2, SeatColumn: 4}}, tickets)
	})

	t.Run("duplicate seat maps to ErrSeatTaken", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO sold_tickets`).
			WithArgs(int64(3), 0, 1).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		repo := NewSessionRepository(db)
		err = repo.CreateSoldTickets(ctx, 3, []domain.SoldTicket{{SeatRow: 0, SeatColumn: 1}})
		require.ErrorIs(t, err, domain.ErrSeatTaken)
	})
}
