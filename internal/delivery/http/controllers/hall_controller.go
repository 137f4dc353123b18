package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "cinematicketing/internal/delivery/http/helpers"
	"cinematicketing/internal/domain"
)

// CreateHallRequest is the request body for POST /halls
type CreateHallRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (req CreateHallRequest) Validate() []string {
	if strings.TrimSpace(req.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// SaveConfigRequest is the request body for POST /halls/{hallID}/config.
// Seats carries the grid as a JSON string, the form the seat-map editor
// has always submitted.
type SaveConfigRequest struct {
	Seats string `json:"seats"`
}

// Validate implements Validator.
func (req SaveConfigRequest) Validate() []string {
	if req.Seats == "" {
		return []string{"seats is required"}
	}
	return nil
}

// SetPricesRequest is the request body for POST /halls/{hallID}/prices
type SetPricesRequest struct {
	RegularPrice float64 `json:"regularPrice"`
	VIPPrice     float64 `json:"vipPrice"`
}

// Validate implements Validator.
func (req SetPricesRequest) Validate() []string {
	var errs []string
	if req.RegularPrice < 0 {
		errs = append(errs, "regularPrice must not be negative")
	}
	if req.VIPPrice < 0 {
		errs = append(errs, "vipPrice must not be negative")
	}
	return errs
}

// HallConfigResponse is the response body for GET /halls/{hallID}
type HallConfigResponse struct {
	Seats domain.SeatGrid `json:"seats"`
}

type HallController struct {
	Logger  *slog.Logger
	Service domain.HallService
}

func NewHallController(logger *slog.Logger, svc domain.HallService) *HallController {
	return &HallController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List halls
// @Description Returns all halls ordered by name, including seat layouts and prices.
// @Tags halls
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the hall list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /halls [get]
func (c *HallController) List(w http.ResponseWriter, r *http.Request) {
	halls, err := c.Service.ListHalls(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, halls)
}

// GetConfig godoc
// @Summary Get a hall's seat layout
// @Tags halls
// @Produce json
// @Security BearerAuth
// @Param hallID path int true "Hall ID"
// @Success 200 {object} helpers.APIResponse "data contains {seats}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /halls/{hallID} [get]
func (c *HallController) GetConfig(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "hallID")
	if !ok {
		return
	}
	seats, err := c.Service.GetHallConfig(r.Context(), id)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, HallConfigResponse{Seats: seats})
}

// Create godoc
// @Summary Create a hall
// @Description Create a hall with an empty seat layout. Only name is accepted.
// @Tags halls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateHallRequest true "Hall data (name only)"
// @Success 201 {object} helpers.APIResponse "data contains the created hall"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /halls [post]
func (c *HallController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateHallRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	hall, err := c.Service.CreateHall(r.Context(), req.Name)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, hall)
}

// Delete godoc
// @Summary Delete a hall
// @Tags halls
// @Produce json
// @Security BearerAuth
// @Param hallID path int true "Hall ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /halls/{hallID} [delete]
func (c *HallController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "hallID")
	if !ok {
		return
	}
	if err := c.Service.DeleteHall(r.Context(), id); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "hall deleted"})
}

// SaveConfig godoc
// @Summary Save a hall's seat layout
// @Description Replace the hall's seat grid. The grid must be rectangular and every cell one of "standart", "vip", "disabled". Validation failures return a 400 whose message the editor shows as-is.
// @Tags halls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hallID path int true "Hall ID"
// @Param body body SaveConfigRequest true "Seat grid as a JSON string"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /halls/{hallID}/config [post]
func (c *HallController) SaveConfig(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "hallID")
	if !ok {
		return
	}
	var req SaveConfigRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SaveHallConfig(r.Context(), id, req.Seats); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "configuration saved"})
}

// SetPrices godoc
// @Summary Set a hall's ticket prices
// @Tags halls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hallID path int true "Hall ID"
// @Param body body SetPricesRequest true "Regular and VIP prices"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /halls/{hallID}/prices [post]
func (c *HallController) SetPrices(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "hallID")
	if !ok {
		return
	}
	var req SetPricesRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetPrices(r.Context(), id, req.RegularPrice, req.VIPPrice); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "prices saved"})
}
