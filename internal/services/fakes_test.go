package services

import (
	"context"
	"time"

	"cinematicketing/internal/domain"
)

// fakeHallRepo is an in-memory HallRepository for tests.
type fakeHallRepo struct {
	halls  map[int64]*domain.Hall
	nextID int64
	err    error // if set, every call returns this error
}

func newFakeHallRepo() *fakeHallRepo {
	return &fakeHallRepo{halls: make(map[int64]*domain.Hall), nextID: 1}
}

func (f *fakeHallRepo) Create(ctx context.Context, hall *domain.Hall) error {
	if f.err != nil {
		return f.err
	}
	hall.ID = f.nextID
	f.nextID++
	f.halls[hall.ID] = hall
	return nil
}

func (f *fakeHallRepo) GetByID(ctx context.Context, id int64) (*domain.Hall, error) {
	if f.err != nil {
		return nil, f.err
	}
	if h, ok := f.halls[id]; ok {
		return h, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeHallRepo) List(ctx context.Context) ([]*domain.Hall, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Hall
	for _, h := range f.halls {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHallRepo) UpdateSeats(ctx context.Context, id int64, seats domain.SeatGrid) error {
	h, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	h.Seats = seats
	return nil
}

func (f *fakeHallRepo) UpdatePrices(ctx context.Context, id int64, regular, vip float64) error {
	h, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	h.PriceRegular, h.PriceVIP = regular, vip
	return nil
}

func (f *fakeHallRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.halls[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.halls, id)
	return nil
}

// fakeMovieRepo is an in-memory MovieRepository for tests.
type fakeMovieRepo struct {
	movies map[int64]*domain.Movie
	nextID int64
	err    error
}

func newFakeMovieRepo(movies ...*domain.Movie) *fakeMovieRepo {
	f := &fakeMovieRepo{movies: make(map[int64]*domain.Movie), nextID: 1}
	for _, m := range movies {
		f.movies[m.ID] = m
		if m.ID >= f.nextID {
			f.nextID = m.ID + 1
		}
	}
	return f
}

func (f *fakeMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	if f.err != nil {
		return f.err
	}
	movie.ID = f.nextID
	f.nextID++
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	if m, ok := f.movies[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMovieRepo) List(ctx context.Context, limit, offset int) ([]*domain.Movie, error) {
	var out []*domain.Movie
	for _, m := range f.movies {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMovieRepo) ListByDate(ctx context.Context, date string) ([]*domain.Movie, error) {
	return f.List(ctx, 0, 0)
}

// fakeSessionRepo is an in-memory SessionRepository for tests.
type fakeSessionRepo struct {
	sessions map[int64]*domain.Session
	sold     map[int64][]domain.SoldTicket
	nextID   int64
	err      error
	applied  int // how many times ApplyPlan ran
}

func newFakeSessionRepo(sessions ...*domain.Session) *fakeSessionRepo {
	f := &fakeSessionRepo{
		sessions: make(map[int64]*domain.Session),
		sold:     make(map[int64][]domain.SoldTicket),
		nextID:   1,
	}
	for _, s := range sessions {
		id, _ := s.ID.ID()
		f.sessions[id] = s
		if id >= f.nextID {
			f.nextID = id + 1
		}
	}
	return f
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	if f.err != nil {
		return f.err
	}
	s.ID = domain.PersistedRef(f.nextID)
	f.sessions[f.nextID] = s
	f.nextID++
	return nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, s *domain.Session) error {
	if f.err != nil {
		return f.err
	}
	id, ok := s.ID.ID()
	if !ok {
		return domain.ErrValidation
	}
	if _, exists := f.sessions[id]; !exists {
		return domain.ErrNotFound
	}
	f.sessions[id] = s
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) ListByDate(ctx context.Context, date string) ([]*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Session
	for _, s := range f.sessions {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByHall(ctx context.Context, hallID int64, date string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.sessions {
		if s.HallID == hallID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) SetStatusByHall(ctx context.Context, hallID int64, status string) (int64, error) {
	var n int64
	for _, s := range f.sessions {
		if s.HallID == hallID {
			s.Status = status
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionRepo) ListSoldTickets(ctx context.Context, sessionID int64) ([]domain.SoldTicket, error) {
	return f.sold[sessionID], nil
}

func (f *fakeSessionRepo) CreateSoldTickets(ctx context.Context, sessionID int64, seats []domain.SoldTicket) error {
	if f.err != nil {
		return f.err
	}
	existing := make(map[domain.SoldTicket]bool)
	for _, t := range f.sold[sessionID] {
		existing[t] = true
	}
	for _, t := range seats {
		if existing[t] {
			return domain.ErrSeatTaken
		}
	}
	f.sold[sessionID] = append(f.sold[sessionID], seats...)
	return nil
}

func (f *fakeSessionRepo) CloseFinished(ctx context.Context, beforeDate string) (int64, error) {
	var n int64
	for _, s := range f.sessions {
		if s.Status == domain.SessionOpen && s.Date < beforeDate {
			s.Status = domain.SessionClosed
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionRepo) ApplyPlan(ctx context.Context, updates []*domain.Session, deleteIDs []int64, creates []*domain.Session) error {
	if f.err != nil {
		return f.err
	}
	for _, s := range updates {
		if err := f.Update(ctx, s); err != nil {
			return err
		}
	}
	for _, id := range deleteIDs {
		if err := f.Delete(ctx, id); err != nil {
			return err
		}
	}
	for _, s := range creates {
		if err := f.Create(ctx, s); err != nil {
			return err
		}
	}
	f.applied++
	return nil
}

// fakeHoldStore records holds without any TTL behavior.
type fakeHoldStore struct {
	held     map[string]bool
	released []string
	denyAll  bool
	err      error
}

func newFakeHoldStore() *fakeHoldStore {
	return &fakeHoldStore{held: make(map[string]bool)}
}

func (f *fakeHoldStore) Hold(ctx context.Context, sessionID int64, seat domain.SeatSelection, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.denyAll {
		return false, nil
	}
	key := seat.String()
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeHoldStore) Release(ctx context.Context, sessionID int64, seat domain.SeatSelection) error {
	delete(f.held, seat.String())
	f.released = append(f.released, seat.String())
	return nil
}

func (f *fakeHoldStore) SweepExpired(ctx context.Context) (int64, error) { return 0, nil }

// fakePublisher records published booking events.
type fakePublisher struct {
	events []domain.BookingEvent
}

func (f *fakePublisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

// fakeEmailSender records booking confirmation sends.
type fakeEmailSender struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailSender) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
