// Package editor holds the headless state behind the admin screens: the
// schedule grid with its drag-and-drop plan, the seat-map configurator, and
// the customer seat-picking page. Each type talks to the backend through a
// small client interface so the screens can be tested without a server.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cinematicketing/internal/domain"
)

// ErrSaveFailed is the generic error shown when a schedule save fails
// partway. The scratch state is left as-is; nothing is rolled back.
var ErrSaveFailed = errors.New("saving the schedule failed")

// ScheduleClient is the backend surface the schedule grid needs.
type ScheduleClient interface {
	SessionsByDate(ctx context.Context, date string) ([]*domain.Session, error)
	ListHalls(ctx context.Context) ([]*domain.Hall, error)
	ListMovies(ctx context.Context) ([]*domain.Movie, error)
	UpdateSessions(ctx context.Context, sessions []*domain.Session) error
	CreateSessions(ctx context.Context, sessions []*domain.Session) error
	DeleteSession(ctx context.Context, id int64) error
	SetHallStatus(ctx context.Context, hallID int64, status string) (string, error)
	ApplyPlan(ctx context.Context, updates []*domain.Session, deleteIDs []int64, creates []*domain.Session) error
}

// SessionGrid is the scratch schedule for one selected date. Edits
// accumulate locally (placed, moved, deleted sessions) and reach the
// backend only on Save.
type SessionGrid struct {
	client ScheduleClient

	mu       sync.Mutex
	gen      uint64
	date     string
	sessions []*domain.Session
	deleted  []int64
	movies   domain.MovieIndex
	halls    []*domain.Hall
}

func NewSessionGrid(client ScheduleClient) *SessionGrid {
	return &SessionGrid{client: client, movies: domain.MovieIndex{}}
}

// Load fetches the schedule for a date and replaces the scratch state,
// dropping any unsaved edits. Each call bumps a generation counter; a
// response that comes back after a newer Load started is discarded so a
// slow fetch can never clobber a faster one.
func (g *SessionGrid) Load(ctx context.Context, date string) error {
	g.mu.Lock()
	g.gen++
	gen := g.gen
	g.mu.Unlock()

	sessions, err := g.client.SessionsByDate(ctx, date)
	if err != nil {
		return err
	}
	halls, err := g.client.ListHalls(ctx)
	if err != nil {
		return err
	}
	movies, err := g.client.ListMovies(ctx)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen {
		return nil
	}
	g.date = date
	g.sessions = sessions
	g.deleted = nil
	g.halls = halls
	g.movies = domain.IndexMovies(movies)
	return nil
}

// Date returns the currently loaded date.
func (g *SessionGrid) Date() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.date
}

// Sessions returns the scratch sessions. Deleted sessions are not in it.
func (g *SessionGrid) Sessions() []*domain.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*domain.Session(nil), g.sessions...)
}

// Halls returns the hall list as of the last Load.
func (g *SessionGrid) Halls() []*domain.Hall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*domain.Hall(nil), g.halls...)
}

// Movies returns the movie catalog index as of the last Load.
func (g *SessionGrid) Movies() domain.MovieIndex {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.movies
}

// Dirty reports whether the scratch state has unsaved edits.
func (g *SessionGrid) Dirty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.deleted) > 0 {
		return true
	}
	for _, s := range g.sessions {
		if s.ID.Pending() {
			return true
		}
	}
	return false
}

// AddSession places a new pending session from a movie drop. The hall's
// current seat grid becomes the session's occupancy snapshot. The drop is
// rejected with a notification error when it would overlap a session in
// the same hall.
func (g *SessionGrid) AddSession(hallID, movieID int64, startTime string) (*domain.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	hall := g.hallByID(hallID)
	if hall == nil {
		return nil, fmt.Errorf("%w: hall %d", domain.ErrNotFound, hallID)
	}
	seats, err := hall.Seats.Encode()
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{
		ID:          domain.NewPendingRef(),
		HallID:      hallID,
		MovieID:     movieID,
		Date:        g.date,
		Time:        startTime,
		SeatsStatus: seats,
		Status:      domain.SessionClosed,
	}
	if domain.OverlapsExisting(sess, g.sessions, g.movies) {
		return nil, fmt.Errorf("cannot place a session at %s: %w", startTime, domain.ErrSessionOverlap)
	}
	g.sessions = append(g.sessions, sess)
	return sess, nil
}

// MoveSession sets a session's start time and reports whether the move was
// applied. Moving an open session returns a notification error; a move
// that would overlap is a silent no-op and the block simply snaps back.
func (g *SessionGrid) MoveSession(ref domain.SessionRef, newTime string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.indexOf(ref)
	if i < 0 {
		return false, domain.ErrNotFound
	}
	if !g.sessions[i].Closed() {
		return false, fmt.Errorf("%w: open sessions cannot be moved", domain.ErrSessionNotClosed)
	}
	candidate := *g.sessions[i]
	candidate.Time = newTime
	if domain.OverlapsExisting(&candidate, g.sessions, g.movies) {
		return false, nil
	}
	g.sessions[i].Time = newTime
	return true, nil
}

// DeleteSession removes a session from the scratch schedule. Pending
// sessions vanish locally and never reach the backend; persisted ones are
// queued for deletion on Save. Open sessions cannot be deleted.
func (g *SessionGrid) DeleteSession(ref domain.SessionRef) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.indexOf(ref)
	if i < 0 {
		return domain.ErrNotFound
	}
	if !g.sessions[i].Closed() {
		return fmt.Errorf("%w: open sessions cannot be deleted", domain.ErrSessionNotClosed)
	}
	if id, ok := ref.ID(); ok {
		g.deleted = append(g.deleted, id)
	}
	g.sessions = append(g.sessions[:i], g.sessions[i+1:]...)
	return nil
}

// Partition splits the scratch state into the three phases of a save:
// updates are persisted closed sessions, deletes are the queued persisted
// ids, creates are the pending sessions. Open sessions are on sale and are
// never written back.
func (g *SessionGrid) Partition() (updates []*domain.Session, deleteIDs []int64, creates []*domain.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, s := range g.sessions {
		if !s.Closed() {
			continue
		}
		if s.ID.Pending() {
			creates = append(creates, s)
		} else {
			updates = append(updates, s)
		}
	}
	deleteIDs = append([]int64(nil), g.deleted...)
	return updates, deleteIDs, creates
}

// Save pushes the scratch state to the backend in three sequential phases:
// updates, then deletes, then creates. The first failure aborts the
// remaining phases and surfaces a generic error; phases that already ran
// stay applied. On success the grid reloads to pick up server-assigned ids.
func (g *SessionGrid) Save(ctx context.Context) error {
	updates, deleteIDs, creates := g.Partition()

	if len(updates) > 0 {
		if err := g.client.UpdateSessions(ctx, updates); err != nil {
			return ErrSaveFailed
		}
	}
	for _, id := range deleteIDs {
		if err := g.client.DeleteSession(ctx, id); err != nil {
			return ErrSaveFailed
		}
	}
	if len(creates) > 0 {
		if err := g.client.CreateSessions(ctx, stripIDs(creates)); err != nil {
			return ErrSaveFailed
		}
	}
	return g.Load(ctx, g.Date())
}

// SaveAtomic pushes the whole plan through the transactional apply
// endpoint, so either every phase lands or none does.
func (g *SessionGrid) SaveAtomic(ctx context.Context) error {
	updates, deleteIDs, creates := g.Partition()
	if len(updates) == 0 && len(deleteIDs) == 0 && len(creates) == 0 {
		return nil
	}
	if err := g.client.ApplyPlan(ctx, updates, deleteIDs, stripIDs(creates)); err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrSessionOverlap) {
			return err
		}
		return ErrSaveFailed
	}
	return g.Load(ctx, g.Date())
}

// SetHallStatus opens or closes every session of a hall and returns the
// backend's summary message. The local copies follow along.
func (g *SessionGrid) SetHallStatus(ctx context.Context, hallID int64, status string) (string, error) {
	msg, err := g.client.SetHallStatus(ctx, hallID, status)
	if err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, s := range g.sessions {
		if s.HallID == hallID {
			s.Status = status
		}
	}
	return msg, nil
}

func (g *SessionGrid) hallByID(id int64) *domain.Hall {
	for _, h := range g.halls {
		if h.ID == id {
			return h
		}
	}
	return nil
}

func (g *SessionGrid) indexOf(ref domain.SessionRef) int {
	for i, s := range g.sessions {
		if s.ID == ref {
			return i
		}
	}
	return -1
}

// stripIDs copies the sessions without their pending ids, the form the
// create endpoint accepts.
func stripIDs(sessions []*domain.Session) []*domain.Session {
	out := make([]*domain.Session, len(sessions))
	for i, s := range sessions {
		c := *s
		c.ID = domain.SessionRef{}
		out[i] = &c
	}
	return out
}
