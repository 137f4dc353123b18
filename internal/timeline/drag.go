package timeline

import (
	"errors"

	"cinematicketing/internal/domain"
)

// ErrNoDrag is returned when a candidate time is requested with no drag in
// progress.
var ErrNoDrag = errors.New("no drag in progress")

type dragKind int

const (
	dragNone dragKind = iota
	dragSession
	dragMovie
)

// DragController tracks one drag gesture on the schedule timeline. Two
// gestures exist: moving an existing session along its hall row, and
// dropping a movie from the catalog onto a hall row to place a new session.
// The controller is pure geometry; whether a candidate time is accepted is
// the schedule's call.
type DragController struct {
	kind      dragKind
	session   domain.SessionRef
	movieID   int64
	rect      Rect
	startX    float64
	startTime string
}

// StartSessionDrag begins moving an existing session. startTime is the
// session's start time when the gesture began; candidate times are computed
// from the pointer's displacement since then, so the grab point inside the
// block does not matter.
func (d *DragController) StartSessionDrag(ref domain.SessionRef, startTime string, p Pointer, r Rect) {
	d.kind = dragSession
	d.session = ref
	d.rect = r
	d.startX = p.X
	d.startTime = startTime
}

// StartMovieDrag begins dragging a movie from the catalog over a hall row.
func (d *DragController) StartMovieDrag(movieID int64, r Rect) {
	d.kind = dragMovie
	d.movieID = movieID
	d.rect = r
}

// Active reports whether a drag is in progress.
func (d *DragController) Active() bool { return d.kind != dragNone }

// Session returns the ref of the session being moved, if any.
func (d *DragController) Session() (domain.SessionRef, bool) {
	return d.session, d.kind == dragSession
}

// Movie returns the id of the movie being placed, if any.
func (d *DragController) Movie() (int64, bool) {
	return d.movieID, d.kind == dragMovie
}

// CandidateTime converts the current pointer position into a start time.
// For a session drag it is the original start shifted by the pointer's
// displacement; for a movie drag it is the drop position itself. Both wrap
// within the day.
func (d *DragController) CandidateTime(p Pointer) (string, error) {
	switch d.kind {
	case dragSession:
		return ShiftClock(d.startTime, DeltaMinutes(p.X-d.startX, d.rect.Width))
	case dragMovie:
		return TimeAtOffset(p.OffsetIn(d.rect), d.rect.Width), nil
	default:
		return "", ErrNoDrag
	}
}

// End clears all drag state.
func (d *DragController) End() {
	*d = DragController{}
}
