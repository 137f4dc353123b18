package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Session lifecycle statuses. Closed sessions are still editable by the
// operator; open sessions are on sale and immutable in the editor.
const (
	SessionClosed = "closed"
	SessionOpen   = "open"
)

// Wire formats for dates and clock times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

const pendingPrefix = "temp-"

// SessionRef identifies a session: either persisted under a server-assigned
// integer id, or pending under a client-local temporary id. The zero value
// is an empty persisted ref (id 0), which repositories treat as unassigned.
type SessionRef struct {
	id    int64
	local string
}

// PersistedRef returns a reference to a server-assigned session id.
func PersistedRef(id int64) SessionRef {
	return SessionRef{id: id}
}

// NewPendingRef returns a fresh client-local reference for a session that
// has not been persisted yet.
func NewPendingRef() SessionRef {
	return SessionRef{local: pendingPrefix + uuid.NewString()}
}

// Pending reports whether the reference is a client-local temporary id.
func (r SessionRef) Pending() bool { return r.local != "" }

// ID returns the server-assigned id and whether the reference carries one.
func (r SessionRef) ID() (int64, bool) {
	if r.Pending() {
		return 0, false
	}
	return r.id, true
}

func (r SessionRef) String() string {
	if r.Pending() {
		return r.local
	}
	return fmt.Sprintf("%d", r.id)
}

// MarshalJSON writes persisted refs as numbers and pending refs as their
// temp string, matching the original wire format.
func (r SessionRef) MarshalJSON() ([]byte, error) {
	if r.Pending() {
		return json.Marshal(r.local)
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON accepts either a number or a "temp-" prefixed string. The
// prefix check lives here and nowhere else.
func (r *SessionRef) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*r = SessionRef{id: id}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("session id must be a number or a temp string: %w", err)
	}
	if !strings.HasPrefix(s, pendingPrefix) {
		return fmt.Errorf("invalid session id %q", s)
	}
	*r = SessionRef{local: s}
	return nil
}

// Session is a time-boxed booking of one movie into one hall on one date,
// with a seat-occupancy snapshot taken at creation time.
type Session struct {
	ID          SessionRef `json:"id"`
	HallID      int64      `json:"hall_id"`
	MovieID     int64      `json:"movie_id"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Time        string     `json:"time"` // HH:MM:SS
	SeatsStatus string     `json:"seats_status"`
	Status      string     `json:"status"`
}

// Closed reports whether the session is still editable by the operator.
func (s *Session) Closed() bool { return s.Status == SessionClosed }

// SoldTicket is one sold seat of a session, in the customer-facing
// coordinate space (seat_column is a visible index).
type SoldTicket struct {
	SeatRow    int `json:"seat_row"`
	SeatColumn int `json:"seat_column"`
}

// SessionRepository defines the interface for session and ticket storage.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Session, error)
	ListByDate(ctx context.Context, date string) ([]*Session, error)
	ListByHall(ctx context.Context, hallID int64, date string) ([]*Session, error)
	SetStatusByHall(ctx context.Context, hallID int64, status string) (int64, error)
	ListSoldTickets(ctx context.Context, sessionID int64) ([]SoldTicket, error)
	CreateSoldTickets(ctx context.Context, sessionID int64, seats []SoldTicket) error
	CloseFinished(ctx context.Context, beforeDate string) (int64, error)

	// ApplyPlan runs a partitioned save (updates, deletes, creates) in a
	// single transaction.
	ApplyPlan(ctx context.Context, updates []*Session, deleteIDs []int64, creates []*Session) error
}

// ScheduleService defines the business logic for the session schedule.
type ScheduleService interface {
	SessionsByDate(ctx context.Context, date string) ([]*Session, error)
	BulkUpdate(ctx context.Context, sessions []*Session) error
	BulkCreate(ctx context.Context, sessions []*Session) error
	DeleteSession(ctx context.Context, id int64) error
	SetHallStatus(ctx context.Context, hallID int64, status string) (string, error)
	ApplyPlan(ctx context.Context, updates []*Session, deleteIDs []int64, creates []*Session) error
}
