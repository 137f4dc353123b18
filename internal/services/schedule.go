package services

import (
	"context"
	"fmt"
	"time"

	"cinematicketing/internal/domain"
)

type scheduleService struct {
	sessionRepo    domain.SessionRepository
	movieRepo      domain.MovieRepository
	hallRepo       domain.HallRepository
	contextTimeout time.Duration
}

// NewScheduleService creates a ScheduleService over the session, movie, and
// hall repositories.
func NewScheduleService(
	sessionRepo domain.SessionRepository,
	movieRepo domain.MovieRepository,
	hallRepo domain.HallRepository,
	timeout time.Duration,
) domain.ScheduleService {
	return &scheduleService{
		sessionRepo:    sessionRepo,
		movieRepo:      movieRepo,
		hallRepo:       hallRepo,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) SessionsByDate(ctx context.Context, date string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}

	sessions, err := s.sessionRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}

// movieIndexFor resolves the movies referenced by the given sessions.
// Unresolvable ids are simply absent, which makes overlap checks fail open.
func (s *scheduleService) movieIndexFor(ctx context.Context, sessions ...*domain.Session) (domain.MovieIndex, error) {
	idx := make(domain.MovieIndex)
	for _, sess := range sessions {
		if _, ok := idx[sess.MovieID]; ok {
			continue
		}
		movie, err := s.movieRepo.GetByID(ctx, sess.MovieID)
		if err != nil {
			continue
		}
		idx[sess.MovieID] = movie
	}
	return idx, nil
}

// checkBatchOverlap validates every batch member against the batch's final
// shape, not the stored state: stored sessions the batch deletes or
// rewrites no longer count, and members see each other at their new times.
// Without this, sessions trading slots within one save would reject each
// other against their own stale rows.
func (s *scheduleService) checkBatchOverlap(ctx context.Context, updates, creates []*domain.Session, deleted map[int64]bool) error {
	for _, candidate := range append(append([]*domain.Session{}, updates...), creates...) {
		existing, err := s.sessionRepo.ListByHall(ctx, candidate.HallID, candidate.Date)
		if err != nil {
			return fmt.Errorf("list hall sessions: %w", err)
		}
		final := make([]*domain.Session, 0, len(existing)+len(updates)+len(creates))
		for _, sess := range existing {
			id, _ := sess.ID.ID()
			if deleted[id] || planRewrites(updates, id) {
				continue
			}
			final = append(final, sess)
		}
		for _, sess := range updates {
			if sess != candidate && sess.HallID == candidate.HallID && sess.Date == candidate.Date {
				final = append(final, sess)
			}
		}
		for _, sess := range creates {
			if sess != candidate && sess.HallID == candidate.HallID && sess.Date == candidate.Date {
				final = append(final, sess)
			}
		}

		movies, err := s.movieIndexFor(ctx, append(final, candidate)...)
		if err != nil {
			return err
		}
		if domain.OverlapsExisting(candidate, final, movies) {
			return fmt.Errorf("%w: session at %s overlaps another session in this hall", domain.ErrSessionOverlap, candidate.Time)
		}
	}
	return nil
}

func validateSessionFields(sess *domain.Session) error {
	if sess.HallID == 0 {
		return fmt.Errorf("%w: hall_id is required", domain.ErrValidation)
	}
	if sess.MovieID == 0 {
		return fmt.Errorf("%w: movie_id is required", domain.ErrValidation)
	}
	if _, err := time.Parse(domain.DateLayout, sess.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if _, err := time.Parse(domain.TimeLayout, sess.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:MM:SS", domain.ErrValidation)
	}
	if sess.Status != domain.SessionOpen && sess.Status != domain.SessionClosed {
		return fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation, domain.SessionOpen, domain.SessionClosed)
	}
	return nil
}

func (s *scheduleService) BulkUpdate(ctx context.Context, sessions []*domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	for _, sess := range sessions {
		if _, ok := sess.ID.ID(); !ok {
			return fmt.Errorf("%w: cannot update a session without a persisted id", domain.ErrValidation)
		}
		if err := validateSessionFields(sess); err != nil {
			return err
		}
	}
	if err := s.checkBatchOverlap(ctx, sessions, nil, nil); err != nil {
		return err
	}
	for _, sess := range sessions {
		if err := s.sessionRepo.Update(ctx, sess); err != nil {
			return fmt.Errorf("update session %s: %w", sess.ID, err)
		}
	}
	return nil
}

func (s *scheduleService) BulkCreate(ctx context.Context, sessions []*domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	for _, sess := range sessions {
		// ids are server-assigned; whatever the client sent is discarded.
		// Distinct pending refs keep the batch members comparable to each
		// other in the overlap check.
		sess.ID = domain.NewPendingRef()
		if sess.Status == "" {
			sess.Status = domain.SessionClosed
		}
		if err := validateSessionFields(sess); err != nil {
			return err
		}
	}
	if err := s.checkBatchOverlap(ctx, nil, sessions, nil); err != nil {
		return err
	}
	for _, sess := range sessions {
		if err := s.sessionRepo.Create(ctx, sess); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
	}
	return nil
}

func (s *scheduleService) DeleteSession(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sess, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !sess.Closed() {
		return domain.ErrSessionNotClosed
	}
	return s.sessionRepo.Delete(ctx, id)
}

func (s *scheduleService) SetHallStatus(ctx context.Context, hallID int64, status string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.SessionOpen && status != domain.SessionClosed {
		return "", fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation, domain.SessionOpen, domain.SessionClosed)
	}
	if _, err := s.hallRepo.GetByID(ctx, hallID); err != nil {
		return "", err
	}

	updated, err := s.sessionRepo.SetStatusByHall(ctx, hallID, status)
	if err != nil {
		return "", fmt.Errorf("set hall status: %w", err)
	}
	return fmt.Sprintf("%d sessions set to %s", updated, status), nil
}

// ApplyPlan validates a partitioned save and applies it in one transaction.
func (s *scheduleService) ApplyPlan(ctx context.Context, updates []*domain.Session, deleteIDs []int64, creates []*domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	for _, sess := range updates {
		if _, ok := sess.ID.ID(); !ok {
			return fmt.Errorf("%w: cannot update a session without a persisted id", domain.ErrValidation)
		}
		if err := validateSessionFields(sess); err != nil {
			return err
		}
	}
	for _, sess := range creates {
		// distinct pending refs keep the plan's creates comparable to each
		// other in the overlap check; the repository assigns real ids
		sess.ID = domain.NewPendingRef()
		if sess.Status == "" {
			sess.Status = domain.SessionClosed
		}
		if err := validateSessionFields(sess); err != nil {
			return err
		}
	}

	deleted := make(map[int64]bool, len(deleteIDs))
	for _, id := range deleteIDs {
		deleted[id] = true
	}

	if err := s.checkBatchOverlap(ctx, updates, creates, deleted); err != nil {
		return err
	}

	return s.sessionRepo.ApplyPlan(ctx, updates, deleteIDs, creates)
}

func planRewrites(updates []*domain.Session, id int64) bool {
	for _, sess := range updates {
		if updateID, ok := sess.ID.ID(); ok && updateID == id {
			return true
		}
	}
	return false
}
