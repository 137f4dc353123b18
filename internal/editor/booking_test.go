package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinematicketing/internal/domain"
)

func loadedHallPage(t *testing.T) (*HallPage, *fakeBookingClient) {
	t.Helper()
	client := &fakeBookingClient{
		view: &domain.SessionView{
			Movie: &domain.Movie{ID: 1, Title: "Stalker", Duration: 162},
			Hall:  "Hall 1",
			Time:  "19:30:00",
			Date:  "2025-06-01",
			Seats: domain.SeatGrid{
				{domain.SeatStandard, domain.SeatDisabled, domain.SeatVIP},
				{domain.SeatStandard, domain.SeatDisabled, domain.SeatVIP},
			},
			Prices: domain.SessionPrices{Standard: 100, VIP: 200},
			// Row 0's standart seat is sold.
			SoldTickets: []domain.SoldTicket{{SeatRow: 0, SeatColumn: 0}},
		},
		booking: &domain.Booking{Reference: "BK-TEST1234", Total: 300},
	}
	page := NewHallPage(client)
	require.NoError(t, page.Load(context.Background(), 1))
	return page, client
}

func TestHallPage_BeforeLoad(t *testing.T) {
	page := NewHallPage(&fakeBookingClient{})

	// Clicks before a successful Load are inert.
	assert.False(t, page.Taken(0, 0))
	assert.False(t, page.ToggleSeat(0, 0))
	assert.Empty(t, page.Selected())
}

func TestHallPage_ToggleSeat(t *testing.T) {
	page, _ := loadedHallPage(t)

	t.Run("disabled cells are not seats", func(t *testing.T) {
		assert.False(t, page.ToggleSeat(0, 1))
	})

	t.Run("sold seats are locked", func(t *testing.T) {
		assert.True(t, page.Taken(0, 0))
		assert.False(t, page.ToggleSeat(0, 0))
	})

	t.Run("selection uses visible indexes and sums prices", func(t *testing.T) {
		// The VIP seat at raw column 2 is visible seat 1.
		require.True(t, page.ToggleSeat(0, 2))
		require.True(t, page.ToggleSeat(1, 0))
		assert.Equal(t, []string{"0-1", "1-0"}, page.Selected())
		assert.Equal(t, 300.0, page.Total())

		// Clicking again deselects.
		require.True(t, page.ToggleSeat(0, 2))
		assert.Equal(t, []string{"1-0"}, page.Selected())
		assert.Equal(t, 100.0, page.Total())
	})
}

func TestHallPage_Book(t *testing.T) {
	t.Run("submits the selection and locks the seats", func(t *testing.T) {
		page, client := loadedHallPage(t)

		require.True(t, page.ToggleSeat(0, 2))
		require.True(t, page.ToggleSeat(1, 0))

		booking, err := page.Book(context.Background(), "guest@example.com")
		require.NoError(t, err)
		assert.Equal(t, "BK-TEST1234", booking.Reference)
		assert.Equal(t, []string{"0-1", "1-0"}, client.booked)

		assert.Empty(t, page.Selected())
		assert.True(t, page.Taken(0, 2))
		assert.False(t, page.ToggleSeat(0, 2))
	})

	t.Run("empty selection", func(t *testing.T) {
		page, _ := loadedHallPage(t)

		_, err := page.Book(context.Background(), "")
		assert.ErrorIs(t, err, ErrNoSeatsSelected)
	})

	t.Run("a rejected booking keeps the selection", func(t *testing.T) {
		page, client := loadedHallPage(t)

		require.True(t, page.ToggleSeat(1, 0))
		client.err = domain.ErrSeatTaken

		_, err := page.Book(context.Background(), "")
		require.ErrorIs(t, err, domain.ErrSeatTaken)
		assert.Equal(t, []string{"1-0"}, page.Selected())
	})
}
