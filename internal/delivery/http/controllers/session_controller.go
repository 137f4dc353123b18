package controllers

import (
	"log/slog"
	"net/http"
	"time"

	h "cinematicketing/internal/delivery/http/helpers"
	"cinematicketing/internal/domain"
)

// SessionPayload carries the writable session fields. Create requests must
// not include an id; updates add one via UpdateSessionPayload.
type SessionPayload struct {
	HallID      int64  `json:"hall_id"`
	MovieID     int64  `json:"movie_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	SeatsStatus string `json:"seats_status"`
	Status      string `json:"status"`
}

func (p SessionPayload) validate() []string {
	var errs []string
	if p.HallID <= 0 {
		errs = append(errs, "hall_id is required")
	}
	if p.MovieID <= 0 {
		errs = append(errs, "movie_id is required")
	}
	if _, err := time.Parse(domain.DateLayout, p.Date); err != nil {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(domain.TimeLayout, p.Time); err != nil {
		errs = append(errs, "time must be HH:MM:SS")
	}
	return errs
}

func (p SessionPayload) toDomain() *domain.Session {
	return &domain.Session{
		HallID:      p.HallID,
		MovieID:     p.MovieID,
		Date:        p.Date,
		Time:        p.Time,
		SeatsStatus: p.SeatsStatus,
		Status:      p.Status,
	}
}

// UpdateSessionPayload is one session of a PUT /sessions body.
type UpdateSessionPayload struct {
	ID domain.SessionRef `json:"id"`
	SessionPayload
}

// BulkUpdateRequest is the request body for PUT /sessions
type BulkUpdateRequest []UpdateSessionPayload

// Validate implements Validator.
func (req BulkUpdateRequest) Validate() []string {
	var errs []string
	if len(req) == 0 {
		errs = append(errs, "at least one session is required")
	}
	for _, p := range req {
		if _, ok := p.ID.ID(); !ok {
			errs = append(errs, "session id must be a persisted id")
		}
		errs = append(errs, p.validate()...)
	}
	return errs
}

// BulkCreateRequest is the request body for POST /sessions
type BulkCreateRequest []SessionPayload

// Validate implements Validator.
func (req BulkCreateRequest) Validate() []string {
	var errs []string
	if len(req) == 0 {
		errs = append(errs, "at least one session is required")
	}
	for _, p := range req {
		errs = append(errs, p.validate()...)
	}
	return errs
}

// SetStatusRequest is the request body for POST /sessions/status
type SetStatusRequest struct {
	HallID int64  `json:"hallId"`
	Status string `json:"status"`
}

// Validate implements Validator.
func (req SetStatusRequest) Validate() []string {
	var errs []string
	if req.HallID <= 0 {
		errs = append(errs, "hallId is required")
	}
	if req.Status != domain.SessionOpen && req.Status != domain.SessionClosed {
		errs = append(errs, "status must be \"open\" or \"closed\"")
	}
	return errs
}

// ApplyPlanRequest is the request body for POST /sessions/apply: the
// partitioned form of one editor save, applied in a single transaction.
type ApplyPlanRequest struct {
	Updates []UpdateSessionPayload `json:"updates"`
	Deletes []int64                `json:"deletes"`
	Creates []SessionPayload       `json:"creates"`
}

// Validate implements Validator.
func (req ApplyPlanRequest) Validate() []string {
	var errs []string
	if len(req.Updates) == 0 && len(req.Deletes) == 0 && len(req.Creates) == 0 {
		errs = append(errs, "plan is empty")
	}
	for _, p := range req.Updates {
		if _, ok := p.ID.ID(); !ok {
			errs = append(errs, "session id must be a persisted id")
		}
		errs = append(errs, p.validate()...)
	}
	for _, id := range req.Deletes {
		if id <= 0 {
			errs = append(errs, "delete ids must be positive")
		}
	}
	for _, p := range req.Creates {
		errs = append(errs, p.validate()...)
	}
	return errs
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewSessionController(logger *slog.Logger, svc domain.ScheduleService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// ListByDate godoc
// @Summary List sessions on a date
// @Description Returns every hall's sessions for the given date, for the schedule timeline.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} helpers.APIResponse "data contains the session list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /sessions/by-date [get]
func (c *SessionController) ListByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing date")
		return
	}
	sessions, err := c.Service.SessionsByDate(r.Context(), date)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// BulkUpdate godoc
// @Summary Update sessions
// @Description Update existing sessions in bulk. Every session is checked against the no-overlap rule for its hall before anything is written.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkUpdateRequest true "Sessions to update"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /sessions [put]
func (c *SessionController) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	sessions := make([]*domain.Session, len(req))
	for i, p := range req {
		sessions[i] = p.toDomain()
		sessions[i].ID = p.ID
	}
	if err := c.Service.BulkUpdate(r.Context(), sessions); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "sessions updated"})
}

// BulkCreate godoc
// @Summary Create sessions
// @Description Create sessions in bulk. Ids are server-assigned; the created sessions are returned with their ids.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkCreateRequest true "Sessions to create"
// @Success 201 {object} helpers.APIResponse "data contains the created sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /sessions [post]
func (c *SessionController) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	sessions := make([]*domain.Session, len(req))
	for i, p := range req {
		sessions[i] = p.toDomain()
	}
	if err := c.Service.BulkCreate(r.Context(), sessions); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, sessions)
}

// Delete godoc
// @Summary Delete a session
// @Description Delete a closed session. Open sessions cannot be deleted.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path int true "Session ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /sessions/{sessionID} [delete]
func (c *SessionController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	if err := c.Service.DeleteSession(r.Context(), id); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "session deleted"})
}

// SetStatus godoc
// @Summary Open or close a hall's sessions
// @Description Sets the status of every session in the hall. Open sessions are on sale and locked in the editor.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetStatusRequest true "Hall and target status"
// @Success 200 {object} helpers.APIResponse "data contains {message}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /sessions/status [post]
func (c *SessionController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req SetStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	msg, err := c.Service.SetHallStatus(r.Context(), req.HallID, req.Status)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": msg})
}

// Apply godoc
// @Summary Apply a schedule plan
// @Description Applies one editor save as a single transaction: updates, then deletes, then creates. Either the whole plan lands or none of it does.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ApplyPlanRequest true "Partitioned plan"
// @Success 200 {object} helpers.APIResponse "data contains the created sessions with their new ids"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /sessions/apply [post]
func (c *SessionController) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyPlanRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	updates := make([]*domain.Session, len(req.Updates))
	for i, p := range req.Updates {
		updates[i] = p.toDomain()
		updates[i].ID = p.ID
	}
	creates := make([]*domain.Session, len(req.Creates))
	for i, p := range req.Creates {
		creates[i] = p.toDomain()
	}
	if err := c.Service.ApplyPlan(r.Context(), updates, req.Deletes, creates); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]any{"created": creates})
}
