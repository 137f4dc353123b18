package controllers

import (
	"context"
	"io"
	"log/slog"

	"cinematicketing/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHallService returns canned values and records calls.
type fakeHallService struct {
	halls      []*domain.Hall
	savedSeats string
	err        error
}

func (f *fakeHallService) CreateHall(ctx context.Context, name string) (*domain.Hall, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Hall{ID: 1, Name: name, Seats: domain.SeatGrid{}}, nil
}

func (f *fakeHallService) ListHalls(ctx context.Context) ([]*domain.Hall, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.halls, nil
}

func (f *fakeHallService) GetHallConfig(ctx context.Context, id int64) (domain.SeatGrid, error) {
	if f.err != nil {
		return nil, f.err
	}
	return domain.SeatGrid{{domain.SeatStandard, domain.SeatVIP}}, nil
}

func (f *fakeHallService) SaveHallConfig(ctx context.Context, id int64, rawSeats string) error {
	if f.err != nil {
		return f.err
	}
	f.savedSeats = rawSeats
	return nil
}

func (f *fakeHallService) SetPrices(ctx context.Context, id int64, regular, vip float64) error {
	return f.err
}

func (f *fakeHallService) DeleteHall(ctx context.Context, id int64) error {
	return f.err
}

// fakeScheduleService records the sessions handed to it.
type fakeScheduleService struct {
	sessions []*domain.Session
	updated  []*domain.Session
	created  []*domain.Session
	applied  bool
	err      error
}

func (f *fakeScheduleService) SessionsByDate(ctx context.Context, date string) ([]*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

func (f *fakeScheduleService) BulkUpdate(ctx context.Context, sessions []*domain.Session) error {
	if f.err != nil {
		return f.err
	}
	f.updated = sessions
	return nil
}

func (f *fakeScheduleService) BulkCreate(ctx context.Context, sessions []*domain.Session) error {
	if f.err != nil {
		return f.err
	}
	for i, s := range sessions {
		s.ID = domain.PersistedRef(int64(i + 1))
	}
	f.created = sessions
	return nil
}

func (f *fakeScheduleService) DeleteSession(ctx context.Context, id int64) error {
	return f.err
}

func (f *fakeScheduleService) SetHallStatus(ctx context.Context, hallID int64, status string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "2 sessions set to " + status, nil
}

func (f *fakeScheduleService) ApplyPlan(ctx context.Context, updates []*domain.Session, deleteIDs []int64, creates []*domain.Session) error {
	if f.err != nil {
		return f.err
	}
	f.updated, f.created = updates, creates
	f.applied = true
	return nil
}

// fakeMovieService assigns ids and records added movies.
type fakeMovieService struct {
	movies []*domain.Movie
	added  []*domain.Movie
	limit  int
	offset int
	err    error
}

func (f *fakeMovieService) AddMovie(ctx context.Context, movie *domain.Movie) error {
	if f.err != nil {
		return f.err
	}
	movie.ID = int64(len(f.added) + 1)
	f.added = append(f.added, movie)
	return nil
}

func (f *fakeMovieService) ListMovies(ctx context.Context, limit, offset int) ([]*domain.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.limit, f.offset = limit, offset
	return f.movies, nil
}

func (f *fakeMovieService) ListMoviesByDate(ctx context.Context, date string) ([]*domain.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.movies, nil
}

// fakeBookingService returns a canned view and booking.
type fakeBookingService struct {
	view    *domain.SessionView
	booking *domain.Booking
	err     error
}

func (f *fakeBookingService) GetSessionView(ctx context.Context, sessionID int64) (*domain.SessionView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

func (f *fakeBookingService) BookSeats(ctx context.Context, sessionID int64, seats []string, email string) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

// fakeAuthService implements domain.AuthService with canned responses.
type fakeAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func (f *fakeAuthService) Refresh(ctx context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}
