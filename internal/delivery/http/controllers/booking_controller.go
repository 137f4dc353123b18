package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	h "cinematicketing/internal/delivery/http/helpers"
	"cinematicketing/internal/domain"
)

// UpdateSeatsRequest is the request body for POST /update-seats. Seats use
// the "row-seat" form with the seat index counting visible seats only.
type UpdateSeatsRequest struct {
	SessionID     int64    `json:"sessionId"`
	SelectedSeats []string `json:"selectedSeats"`
	Email         string   `json:"email"`
}

// Validate implements Validator.
func (req UpdateSeatsRequest) Validate() []string {
	var errs []string
	if req.SessionID <= 0 {
		errs = append(errs, "sessionId is required")
	}
	if len(req.SelectedSeats) == 0 {
		errs = append(errs, "selectedSeats is required")
	}
	for _, s := range req.SelectedSeats {
		if _, err := domain.ParseSeatSelection(s); err != nil {
			errs = append(errs, "seat "+s+" must be \"row-seat\"")
		}
	}
	if req.Email != "" && !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(req.Email))) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// BookingResponse is the response body for POST /update-seats
type BookingResponse struct {
	Reference string   `json:"reference"`
	Seats     []string `json:"seats"`
	Total     float64  `json:"total"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// GetSession godoc
// @Summary Get a session for booking
// @Description Public. Returns everything the seat picker needs: movie, hall name, date, time, seat grid, prices, and sold seats.
// @Tags booking
// @Produce json
// @Param sessionId query int true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains the session view"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /session [get]
func (c *BookingController) GetSession(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("sessionId")
	if raw == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing sessionId")
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid sessionId")
		return
	}
	view, err := c.Service.GetSessionView(r.Context(), id)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, view)
}

// UpdateSeats godoc
// @Summary Book seats
// @Description Public. Books the selected seats on an open session. Already sold or concurrently held seats fail the whole request. When an email is supplied a confirmation with a QR code is sent.
// @Tags booking
// @Accept json
// @Produce json
// @Param body body UpdateSeatsRequest true "Session, seats, and optional email"
// @Success 200 {object} helpers.APIResponse "data contains reference, seats, and total"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /update-seats [post]
func (c *BookingController) UpdateSeats(w http.ResponseWriter, r *http.Request) {
	var req UpdateSeatsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.BookSeats(r.Context(), req.SessionID, req.SelectedSeats, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	seats := make([]string, len(booking.Seats))
	for i, s := range booking.Seats {
		seats[i] = s.String()
	}
	h.WriteJSONSuccess(w, http.StatusOK, BookingResponse{
		Reference: booking.Reference,
		Seats:     seats,
		Total:     booking.Total,
	})
}
