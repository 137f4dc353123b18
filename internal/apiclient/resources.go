package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"cinematicketing/internal/domain"
	"cinematicketing/internal/editor"
)

// The client covers every screen's backend surface.
var (
	_ editor.ScheduleClient   = (*Client)(nil)
	_ editor.HallConfigClient = (*Client)(nil)
	_ editor.BookingClient    = (*Client)(nil)
)

// catalogPageSize is the page size used when loading the movie catalog
// for the editor. Matches the server's maximum.
const catalogPageSize = 100

type sessionPayload struct {
	HallID      int64  `json:"hall_id"`
	MovieID     int64  `json:"movie_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	SeatsStatus string `json:"seats_status"`
	Status      string `json:"status"`
}

func toPayload(s *domain.Session) sessionPayload {
	return sessionPayload{
		HallID:      s.HallID,
		MovieID:     s.MovieID,
		Date:        s.Date,
		Time:        s.Time,
		SeatsStatus: s.SeatsStatus,
		Status:      s.Status,
	}
}

type updateSessionPayload struct {
	ID domain.SessionRef `json:"id"`
	sessionPayload
}

func toUpdatePayloads(sessions []*domain.Session) []updateSessionPayload {
	out := make([]updateSessionPayload, len(sessions))
	for i, s := range sessions {
		out[i] = updateSessionPayload{ID: s.ID, sessionPayload: toPayload(s)}
	}
	return out
}

func toCreatePayloads(sessions []*domain.Session) []sessionPayload {
	out := make([]sessionPayload, len(sessions))
	for i, s := range sessions {
		out[i] = toPayload(s)
	}
	return out
}

func (c *Client) SessionsByDate(ctx context.Context, date string) ([]*domain.Session, error) {
	var out []*domain.Session
	err := c.do(ctx, http.MethodGet, "/sessions/by-date?date="+url.QueryEscape(date), nil, &out)
	return out, err
}

func (c *Client) UpdateSessions(ctx context.Context, sessions []*domain.Session) error {
	return c.do(ctx, http.MethodPut, "/sessions", toUpdatePayloads(sessions), nil)
}

// CreateSessions posts the sessions and copies the server-assigned ids
// back onto them.
func (c *Client) CreateSessions(ctx context.Context, sessions []*domain.Session) error {
	var created []*domain.Session
	if err := c.do(ctx, http.MethodPost, "/sessions", toCreatePayloads(sessions), &created); err != nil {
		return err
	}
	for i := range created {
		if i < len(sessions) {
			sessions[i].ID = created[i].ID
		}
	}
	return nil
}

func (c *Client) DeleteSession(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/sessions/%d", id), nil, nil)
}

type setStatusRequest struct {
	HallID int64  `json:"hallId"`
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) SetHallStatus(ctx context.Context, hallID int64, status string) (string, error) {
	var out messageResponse
	err := c.do(ctx, http.MethodPost, "/sessions/status", setStatusRequest{HallID: hallID, Status: status}, &out)
	return out.Message, err
}

type applyPlanRequest struct {
	Updates []updateSessionPayload `json:"updates"`
	Deletes []int64                `json:"deletes"`
	Creates []sessionPayload       `json:"creates"`
}

func (c *Client) ApplyPlan(ctx context.Context, updates []*domain.Session, deleteIDs []int64, creates []*domain.Session) error {
	req := applyPlanRequest{
		Updates: toUpdatePayloads(updates),
		Deletes: deleteIDs,
		Creates: toCreatePayloads(creates),
	}
	return c.do(ctx, http.MethodPost, "/sessions/apply", req, nil)
}

func (c *Client) ListHalls(ctx context.Context) ([]*domain.Hall, error) {
	var out []*domain.Hall
	err := c.do(ctx, http.MethodGet, "/halls", nil, &out)
	return out, err
}

type createHallRequest struct {
	Name string `json:"name"`
}

func (c *Client) CreateHall(ctx context.Context, name string) (*domain.Hall, error) {
	var out domain.Hall
	if err := c.do(ctx, http.MethodPost, "/halls", createHallRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteHall(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/halls/%d", id), nil, nil)
}

type hallConfigResponse struct {
	Seats domain.SeatGrid `json:"seats"`
}

func (c *Client) HallConfig(ctx context.Context, hallID int64) (domain.SeatGrid, error) {
	var out hallConfigResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/halls/%d", hallID), nil, &out)
	return out.Seats, err
}

type saveConfigRequest struct {
	Seats string `json:"seats"`
}

func (c *Client) SaveHallConfig(ctx context.Context, hallID int64, rawSeats string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/halls/%d/config", hallID), saveConfigRequest{Seats: rawSeats}, nil)
}

type setPricesRequest struct {
	RegularPrice float64 `json:"regularPrice"`
	VIPPrice     float64 `json:"vipPrice"`
}

func (c *Client) SetHallPrices(ctx context.Context, hallID int64, regular, vip float64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/halls/%d/prices", hallID), setPricesRequest{RegularPrice: regular, VIPPrice: vip}, nil)
}

func (c *Client) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	var out []*domain.Movie
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/movies?limit=%d", catalogPageSize), nil, &out)
	return out, err
}

type addMovieRequest struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Origin   string `json:"origin"`
	Poster   string `json:"poster"`
	Synopsis string `json:"synopsis"`
}

func (c *Client) AddMovie(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	req := addMovieRequest{
		Title:    movie.Title,
		Duration: movie.Duration,
		Origin:   movie.Origin,
		Poster:   movie.Poster,
		Synopsis: movie.Synopsis,
	}
	var out domain.Movie
	if err := c.do(ctx, http.MethodPost, "/movies", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MoviesByDate(ctx context.Context, date string) ([]*domain.Movie, error) {
	var out []*domain.Movie
	err := c.do(ctx, http.MethodGet, "/movies/by-date?date="+url.QueryEscape(date), nil, &out)
	return out, err
}

func (c *Client) SessionView(ctx context.Context, sessionID int64) (*domain.SessionView, error) {
	var out domain.SessionView
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/session?sessionId=%d", sessionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type updateSeatsRequest struct {
	SessionID     int64    `json:"sessionId"`
	SelectedSeats []string `json:"selectedSeats"`
	Email         string   `json:"email"`
}

type bookingResponse struct {
	Reference string   `json:"reference"`
	Seats     []string `json:"seats"`
	Total     float64  `json:"total"`
}

func (c *Client) BookSeats(ctx context.Context, sessionID int64, seats []string, email string) (*domain.Booking, error) {
	req := updateSeatsRequest{SessionID: sessionID, SelectedSeats: seats, Email: email}
	var out bookingResponse
	if err := c.do(ctx, http.MethodPost, "/update-seats", req, &out); err != nil {
		return nil, err
	}
	booking := &domain.Booking{
		SessionID: sessionID,
		Total:     out.Total,
		Reference: out.Reference,
	}
	for _, s := range out.Seats {
		sel, err := domain.ParseSeatSelection(s)
		if err != nil {
			continue
		}
		booking.Seats = append(booking.Seats, sel)
	}
	return booking, nil
}
