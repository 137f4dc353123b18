package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "cinematicketing/internal/delivery/http/helpers"
	"cinematicketing/internal/domain"
)

// AddMovieRequest is the request body for POST /movies
type AddMovieRequest struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Origin   string `json:"origin"`
	Poster   string `json:"poster"`
	Synopsis string `json:"synopsis"`
}

// Validate implements Validator.
func (req AddMovieRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, "title is required")
	}
	if req.Duration <= 0 {
		errs = append(errs, "duration must be a positive number of minutes")
	}
	return errs
}

type MovieController struct {
	Logger  *slog.Logger
	Service domain.MovieService
}

func NewMovieController(logger *slog.Logger, svc domain.MovieService) *MovieController {
	return &MovieController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List movies
// @Description Returns the movie catalog ordered by title. Supports limit and offset query parameters.
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset into the catalog"
// @Success 200 {object} helpers.APIResponse "data contains the movie list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /movies [get]
func (c *MovieController) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.ParseLimitOffset(r)
	movies, err := c.Service.ListMovies(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, movies)
}

// Add godoc
// @Summary Add a movie
// @Description Add a movie to the catalog. The slug is generated from the title.
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddMovieRequest true "Movie data"
// @Success 201 {object} helpers.APIResponse "data contains the created movie"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /movies [post]
func (c *MovieController) Add(w http.ResponseWriter, r *http.Request) {
	var req AddMovieRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	movie := domain.NewMovie(req.Title, req.Duration, req.Origin, req.Poster, req.Synopsis)
	if err := c.Service.AddMovie(r.Context(), movie); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, movie)
}

// ListByDate godoc
// @Summary List movies showing on a date
// @Description Public. Returns the movies that have at least one open session on the given date.
// @Tags movies
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} helpers.APIResponse "data contains the movie list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /movies/by-date [get]
func (c *MovieController) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing date")
		return
	}
	movies, err := c.Service.ListMoviesByDate(r.Context(), date)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, movies)
}
