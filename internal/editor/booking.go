package editor

import (
	"context"
	"errors"
	"sort"

	"cinematicketing/internal/domain"
)

// ErrNoSeatsSelected is returned when Book is called with nothing picked.
var ErrNoSeatsSelected = errors.New("no seats selected")

// BookingClient is the backend surface the seat-picking page needs.
type BookingClient interface {
	SessionView(ctx context.Context, sessionID int64) (*domain.SessionView, error)
	BookSeats(ctx context.Context, sessionID int64, seats []string, email string) (*domain.Booking, error)
}

// HallPage is the customer seat-picking page for one session. Seats are
// addressed by row and visible column; disabled cells have no visible
// index and cannot be selected, and sold seats are locked.
type HallPage struct {
	client BookingClient

	sessionID int64
	view      *domain.SessionView
	taken     map[domain.SeatSelection]bool
	selected  map[domain.SeatSelection]domain.SeatKind
}

func NewHallPage(client BookingClient) *HallPage {
	return &HallPage{client: client}
}

// Load fetches the session payload and resets the selection.
func (p *HallPage) Load(ctx context.Context, sessionID int64) error {
	view, err := p.client.SessionView(ctx, sessionID)
	if err != nil {
		return err
	}
	p.sessionID = sessionID
	p.view = view
	p.taken = make(map[domain.SeatSelection]bool, len(view.SoldTickets))
	for _, t := range view.SoldTickets {
		p.taken[domain.SeatSelection{Row: t.SeatRow, VisibleCol: t.SeatColumn}] = true
	}
	p.selected = make(map[domain.SeatSelection]domain.SeatKind)
	return nil
}

// View returns the loaded session payload.
func (p *HallPage) View() *domain.SessionView { return p.view }

// Taken reports whether the seat at (row, rawCol) is already sold. Before
// a successful Load there are no seats and nothing is taken.
func (p *HallPage) Taken(row, rawCol int) bool {
	if p.view == nil {
		return false
	}
	visible := p.view.Seats.VisibleIndex(row, rawCol)
	if visible < 0 {
		return false
	}
	return p.taken[domain.SeatSelection{Row: row, VisibleCol: visible}]
}

// ToggleSeat selects or deselects the seat at (row, rawCol) and reports
// whether the click changed anything. Clicks on disabled cells and sold
// seats do nothing, as do clicks before a successful Load.
func (p *HallPage) ToggleSeat(row, rawCol int) bool {
	if p.view == nil {
		return false
	}
	visible := p.view.Seats.VisibleIndex(row, rawCol)
	if visible < 0 {
		return false
	}
	sel := domain.SeatSelection{Row: row, VisibleCol: visible}
	if p.taken[sel] {
		return false
	}
	if _, ok := p.selected[sel]; ok {
		delete(p.selected, sel)
	} else {
		p.selected[sel] = p.view.Seats[row][rawCol]
	}
	return true
}

// Selected returns the current selection in wire form, ordered by row
// then seat.
func (p *HallPage) Selected() []string {
	seats := make([]domain.SeatSelection, 0, len(p.selected))
	for sel := range p.selected {
		seats = append(seats, sel)
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].VisibleCol < seats[j].VisibleCol
	})
	out := make([]string, len(seats))
	for i, sel := range seats {
		out[i] = sel.String()
	}
	return out
}

// Total returns the running price of the selection.
func (p *HallPage) Total() float64 {
	var total float64
	for _, kind := range p.selected {
		if kind == domain.SeatVIP {
			total += p.view.Prices.VIP
		} else {
			total += p.view.Prices.Standard
		}
	}
	return total
}

// Book submits the selection. On success the booked seats become taken
// and the selection clears.
func (p *HallPage) Book(ctx context.Context, email string) (*domain.Booking, error) {
	seats := p.Selected()
	if len(seats) == 0 {
		return nil, ErrNoSeatsSelected
	}
	booking, err := p.client.BookSeats(ctx, p.sessionID, seats, email)
	if err != nil {
		return nil, err
	}
	for sel := range p.selected {
		p.taken[sel] = true
	}
	p.selected = make(map[domain.SeatSelection]domain.SeatKind)
	return booking, nil
}
