package editor

import (
	"context"
	"fmt"

	"cinematicketing/internal/domain"
)

type fakeScheduleClient struct {
	sessionsByDate map[string][]*domain.Session
	halls          []*domain.Hall
	movies         []*domain.Movie

	updated []*domain.Session
	created []*domain.Session
	deleted []int64
	applied int
	phases  []string

	updateErr error
	deleteErr error
	createErr error
	applyErr  error

	onSessions func(date string)
}

func (f *fakeScheduleClient) SessionsByDate(_ context.Context, date string) ([]*domain.Session, error) {
	if f.onSessions != nil {
		hook := f.onSessions
		f.onSessions = nil
		hook(date)
	}
	sessions := f.sessionsByDate[date]
	out := make([]*domain.Session, len(sessions))
	for i, s := range sessions {
		c := *s
		out[i] = &c
	}
	return out, nil
}

func (f *fakeScheduleClient) ListHalls(context.Context) ([]*domain.Hall, error) {
	return f.halls, nil
}

func (f *fakeScheduleClient) ListMovies(context.Context) ([]*domain.Movie, error) {
	return f.movies, nil
}

func (f *fakeScheduleClient) UpdateSessions(_ context.Context, sessions []*domain.Session) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.phases = append(f.phases, "update")
	f.updated = append(f.updated, sessions...)
	return nil
}

func (f *fakeScheduleClient) CreateSessions(_ context.Context, sessions []*domain.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.phases = append(f.phases, "create")
	f.created = append(f.created, sessions...)
	return nil
}

func (f *fakeScheduleClient) DeleteSession(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.phases = append(f.phases, "delete")
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeScheduleClient) SetHallStatus(_ context.Context, _ int64, status string) (string, error) {
	return fmt.Sprintf("2 sessions set to %s", status), nil
}

func (f *fakeScheduleClient) ApplyPlan(_ context.Context, updates []*domain.Session, deleteIDs []int64, creates []*domain.Session) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied++
	f.updated = append(f.updated, updates...)
	f.deleted = append(f.deleted, deleteIDs...)
	f.created = append(f.created, creates...)
	return nil
}

type fakeHallConfigClient struct {
	grid    domain.SeatGrid
	saved   []string
	saveErr error
}

func (f *fakeHallConfigClient) HallConfig(context.Context, int64) (domain.SeatGrid, error) {
	return f.grid.Clone(), nil
}

func (f *fakeHallConfigClient) SaveHallConfig(_ context.Context, _ int64, rawSeats string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, rawSeats)
	return nil
}

type fakeBookingClient struct {
	view    *domain.SessionView
	booking *domain.Booking
	booked  []string
	err     error
}

func (f *fakeBookingClient) SessionView(context.Context, int64) (*domain.SessionView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

func (f *fakeBookingClient) BookSeats(_ context.Context, _ int64, seats []string, _ string) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.booked = append(f.booked, seats...)
	return f.booking, nil
}
