// Package scheduler runs the periodic maintenance jobs: sweeping expired
// seat holds out of their index sets and closing past-dated sessions.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"cinematicketing/internal/domain"
)

const jobTimeout = 30 * time.Second

// Scheduler owns the cron jobs and their lifecycle.
type Scheduler struct {
	cron     gocron.Scheduler
	logger   *slog.Logger
	holds    domain.SeatHoldStore
	sessions domain.SessionRepository
}

// New builds the scheduler with both jobs registered: the hold sweep every
// sweepInterval and the session close daily shortly after midnight.
func New(logger *slog.Logger, holds domain.SeatHoldStore, sessions domain.SessionRepository, sweepInterval time.Duration) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	s := &Scheduler{
		cron:     cron,
		logger:   logger,
		holds:    holds,
		sessions: sessions,
	}

	_, err = cron.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(s.sweepHolds),
	)
	if err != nil {
		return nil, err
	}

	_, err = cron.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(s.closeFinishedSessions),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running the jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}

// sweepHolds drops hold-index entries whose backing keys already expired,
// so the index set does not grow without bound.
func (s *Scheduler) sweepHolds() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.holds.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("seat hold sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Info("swept expired seat holds", "removed", removed)
	}
}

// closeFinishedSessions closes every open session dated before today.
// Past sessions must not remain bookable.
func (s *Scheduler) closeFinishedSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	today := time.Now().Format(domain.DateLayout)
	closed, err := s.sessions.CloseFinished(ctx, today)
	if err != nil {
		s.logger.Error("closing finished sessions failed", "error", err)
		return
	}
	if closed > 0 {
		s.logger.Info("closed finished sessions", "closed", closed)
	}
}
