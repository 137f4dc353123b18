package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"cinematicketing/internal/domain"
)

const qrSize = 256

type bookingService struct {
	sessionRepo    domain.SessionRepository
	hallRepo       domain.HallRepository
	movieRepo      domain.MovieRepository
	holds          domain.SeatHoldStore
	publisher      domain.BookingPublisher
	emailService   domain.EmailService
	logger         *slog.Logger
	holdTTL        time.Duration
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService for the customer-facing flow.
func NewBookingService(
	sessionRepo domain.SessionRepository,
	hallRepo domain.HallRepository,
	movieRepo domain.MovieRepository,
	holds domain.SeatHoldStore,
	publisher domain.BookingPublisher,
	emailService domain.EmailService,
	logger *slog.Logger,
	holdTTL time.Duration,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		sessionRepo:    sessionRepo,
		hallRepo:       hallRepo,
		movieRepo:      movieRepo,
		holds:          holds,
		publisher:      publisher,
		emailService:   emailService,
		logger:         logger,
		holdTTL:        holdTTL,
		contextTimeout: timeout,
	}
}

func (s *bookingService) loadSession(ctx context.Context, sessionID int64) (*domain.Session, *domain.Hall, *domain.Movie, error) {
	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	hall, err := s.hallRepo.GetByID(ctx, sess.HallID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get hall: %w", err)
	}
	movie, err := s.movieRepo.GetByID(ctx, sess.MovieID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get movie: %w", err)
	}
	return sess, hall, movie, nil
}

func (s *bookingService) GetSessionView(ctx context.Context, sessionID int64) (*domain.SessionView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sess, hall, movie, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	grid, err := domain.ParseSeatGrid(sess.SeatsStatus)
	if err != nil {
		return nil, fmt.Errorf("parse session seats: %w", err)
	}
	sold, err := s.sessionRepo.ListSoldTickets(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list sold tickets: %w", err)
	}
	if sold == nil {
		sold = []domain.SoldTicket{}
	}

	return &domain.SessionView{
		Movie: movie,
		Hall:  hall.Name,
		Time:  sess.Time,
		Date:  sess.Date,
		Seats: grid,
		Prices: domain.SessionPrices{
			Standard: hall.PriceRegular,
			VIP:      hall.PriceVIP,
		},
		SoldTickets: sold,
	}, nil
}

// rawColForVisible maps a customer-facing seat index back to the raw grid
// column. Returns -1 when the row has no such visible seat.
func rawColForVisible(grid domain.SeatGrid, row, visibleCol int) int {
	if row < 0 || row >= grid.Rows() {
		return -1
	}
	for col := 0; col < grid.Cols(); col++ {
		if grid.VisibleIndex(row, col) == visibleCol {
			return col
		}
	}
	return -1
}

func (s *bookingService) BookSeats(ctx context.Context, sessionID int64, seats []string, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(seats) == 0 {
		return nil, fmt.Errorf("%w: no seats selected", domain.ErrValidation)
	}

	sess, hall, movie, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionOpen {
		return nil, fmt.Errorf("%w: session is not open for booking", domain.ErrValidation)
	}

	grid, err := domain.ParseSeatGrid(sess.SeatsStatus)
	if err != nil {
		return nil, fmt.Errorf("parse session seats: %w", err)
	}
	sold, err := s.sessionRepo.ListSoldTickets(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list sold tickets: %w", err)
	}
	taken := make(map[domain.SoldTicket]bool, len(sold))
	for _, t := range sold {
		taken[t] = true
	}

	selections := make([]domain.SeatSelection, 0, len(seats))
	var total float64
	for _, raw := range seats {
		sel, err := domain.ParseSeatSelection(raw)
		if err != nil {
			return nil, err
		}
		rawCol := rawColForVisible(grid, sel.Row, sel.VisibleCol)
		if rawCol < 0 {
			return nil, fmt.Errorf("%w: seat %s does not exist", domain.ErrValidation, sel)
		}
		if taken[domain.SoldTicket{SeatRow: sel.Row, SeatColumn: sel.VisibleCol}] {
			return nil, fmt.Errorf("%w: seat %s", domain.ErrSeatTaken, sel)
		}
		selections = append(selections, sel)
		total += hall.PriceFor(grid[sel.Row][rawCol])
	}

	held := make([]domain.SeatSelection, 0, len(selections))
	releaseHeld := func() {
		for _, sel := range held {
			if err := s.holds.Release(ctx, sessionID, sel); err != nil {
				s.logger.Warn("failed to release seat hold", "session_id", sessionID, "seat", sel.String(), "error", err)
			}
		}
	}
	for _, sel := range selections {
		ok, err := s.holds.Hold(ctx, sessionID, sel, s.holdTTL)
		if err != nil {
			releaseHeld()
			return nil, fmt.Errorf("place seat hold: %w", err)
		}
		if !ok {
			releaseHeld()
			return nil, fmt.Errorf("%w: seat %s is being booked by someone else", domain.ErrSeatTaken, sel)
		}
		held = append(held, sel)
	}

	tickets := make([]domain.SoldTicket, len(selections))
	for i, sel := range selections {
		tickets[i] = domain.SoldTicket{SeatRow: sel.Row, SeatColumn: sel.VisibleCol}
	}
	if err := s.sessionRepo.CreateSoldTickets(ctx, sessionID, tickets); err != nil {
		releaseHeld()
		return nil, err
	}
	releaseHeld()

	booking := &domain.Booking{
		SessionID: sessionID,
		Seats:     selections,
		Total:     total,
		Reference: newBookingReference(),
	}

	seatStrings := make([]string, len(selections))
	for i, sel := range selections {
		seatStrings[i] = sel.String()
	}
	event := domain.BookingEvent{
		SessionID: sessionID,
		Seats:     seatStrings,
		Total:     total,
		Reference: booking.Reference,
		BookedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.logger.Warn("failed to publish booking event", "reference", booking.Reference, "error", err)
	}

	if email != "" {
		data := &domain.BookingConfirmationEmailData{
			Email:      email,
			MovieTitle: movie.Title,
			Hall:       hall.Name,
			Date:       sess.Date,
			Time:       sess.Time,
			Seats:      seatStrings,
			Total:      total,
			Reference:  booking.Reference,
		}
		if uri, err := qrDataURI(booking.Reference); err == nil {
			data.QRDataURI = uri
		} else {
			s.logger.Warn("failed to render booking qr code", "reference", booking.Reference, "error", err)
		}
		if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
			s.logger.Warn("failed to send booking confirmation", "reference", booking.Reference, "error", err)
		}
	}

	return booking, nil
}

func newBookingReference() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

func qrDataURI(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
