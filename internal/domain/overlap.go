package domain

import "time"

// sessionInterval resolves a session's [start, end) interval as same-day
// instants. Only the time of day matters for overlap checks; the date
// component is deliberately ignored.
func sessionInterval(s *Session, movies MovieIndex) (start, end time.Time, ok bool) {
	movie, found := movies[s.MovieID]
	if !found {
		return time.Time{}, time.Time{}, false
	}
	clock, err := time.Parse(TimeLayout, s.Time)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return clock, clock.Add(time.Duration(movie.Duration) * time.Minute), true
}

// SessionsOverlap reports whether the half-open intervals of two sessions
// intersect. Touching endpoints do not overlap. If either session's movie
// cannot be resolved the check fails open and reports no overlap.
func SessionsOverlap(a, b *Session, movies MovieIndex) bool {
	start1, end1, ok := sessionInterval(a, movies)
	if !ok {
		return false
	}
	start2, end2, ok := sessionInterval(b, movies)
	if !ok {
		return false
	}
	return start1.Before(end2) && start2.Before(end1)
}

// OverlapsExisting reports whether candidate overlaps any session in the
// same hall, excluding the candidate's own identity. Returns true on the
// first hit.
func OverlapsExisting(candidate *Session, sessions []*Session, movies MovieIndex) bool {
	for _, s := range sessions {
		if s.HallID != candidate.HallID {
			continue
		}
		if s.ID == candidate.ID {
			continue
		}
		if SessionsOverlap(s, candidate, movies) {
			return true
		}
	}
	return false
}
