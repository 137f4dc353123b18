package domain

import "errors"

// Sentinel errors shared across services and controllers.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// ErrSessionOverlap is returned when a session's time interval would
	// intersect another session in the same hall.
	ErrSessionOverlap = errors.New("session overlaps an existing session")

	// ErrSessionNotClosed is returned when the editor tries to move or
	// delete a session that is already on sale.
	ErrSessionNotClosed = errors.New("session is not closed")

	// ErrSeatTaken is returned when a booking selects a seat that already
	// has a sold ticket or an active hold.
	ErrSeatTaken = errors.New("seat already taken")
)
