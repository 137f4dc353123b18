package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SeatSelection identifies one chosen seat in the customer-facing
// coordinate space: the raw row index and the visible column index
// (disabled cells excluded from the index space).
type SeatSelection struct {
	Row        int
	VisibleCol int
}

// ParseSeatSelection parses the "row-seat" wire form.
func ParseSeatSelection(s string) (SeatSelection, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return SeatSelection{}, fmt.Errorf("%w: seat %q must be \"row-seat\"", ErrValidation, s)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return SeatSelection{}, fmt.Errorf("%w: bad row in seat %q", ErrValidation, s)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return SeatSelection{}, fmt.Errorf("%w: bad seat in seat %q", ErrValidation, s)
	}
	return SeatSelection{Row: row, VisibleCol: col}, nil
}

// String returns the "row-seat" wire form.
func (s SeatSelection) String() string {
	return fmt.Sprintf("%d-%d", s.Row, s.VisibleCol)
}

// SessionPrices carries per-kind ticket prices on the public session
// payload. The json name "standart" is the legacy wire spelling.
type SessionPrices struct {
	Standard float64 `json:"standart"`
	VIP      float64 `json:"vip"`
}

// SessionView is the composite payload of GET /session: everything a
// customer needs to pick seats.
type SessionView struct {
	Movie       *Movie        `json:"movie"`
	Hall        string        `json:"hall"`
	Time        string        `json:"time"`
	Date        string        `json:"date"`
	Seats       SeatGrid      `json:"seats"`
	Prices      SessionPrices `json:"prices"`
	SoldTickets []SoldTicket  `json:"soldTickets"`
}

// Booking is the result of committing a seat hold.
type Booking struct {
	SessionID int64
	Seats     []SeatSelection
	Total     float64
	Reference string
}

// SeatHoldStore places and releases short-lived holds on seats while a
// booking is being committed.
type SeatHoldStore interface {
	// Hold places a TTL-bound hold on the seat and reports false when the
	// seat is already held.
	Hold(ctx context.Context, sessionID int64, seat SeatSelection, ttl time.Duration) (bool, error)
	Release(ctx context.Context, sessionID int64, seat SeatSelection) error
	// SweepExpired removes hold-index entries whose backing keys expired
	// and returns how many were removed.
	SweepExpired(ctx context.Context) (int64, error)
}

// BookingEvent is published after a booking commits.
type BookingEvent struct {
	SessionID int64    `json:"session_id"`
	Seats     []string `json:"seats"`
	Total     float64  `json:"total"`
	Reference string   `json:"reference"`
	BookedAt  string   `json:"booked_at"`
}

// BookingPublisher publishes booking events to interested consumers.
type BookingPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingEvent) error
}

// BookingService defines the business logic for the customer booking flow.
type BookingService interface {
	GetSessionView(ctx context.Context, sessionID int64) (*SessionView, error)
	BookSeats(ctx context.Context, sessionID int64, seats []string, email string) (*Booking, error)
}
