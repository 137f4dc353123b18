package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinematicketing/internal/domain"
)

type hallService struct {
	hallRepo       domain.HallRepository
	contextTimeout time.Duration
}

// NewHallService creates a HallService backed by the given repository.
func NewHallService(hallRepo domain.HallRepository, timeout time.Duration) domain.HallService {
	return &hallService{hallRepo: hallRepo, contextTimeout: timeout}
}

func (s *hallService) CreateHall(ctx context.Context, name string) (*domain.Hall, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: hall name is required", domain.ErrValidation)
	}

	hall := domain.NewHall(name)
	if err := s.hallRepo.Create(ctx, hall); err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}
	return hall, nil
}

func (s *hallService) ListHalls(ctx context.Context) ([]*domain.Hall, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	halls, err := s.hallRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list halls: %w", err)
	}
	if halls == nil {
		halls = []*domain.Hall{}
	}
	return halls, nil
}

func (s *hallService) GetHallConfig(ctx context.Context, id int64) (domain.SeatGrid, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	hall, err := s.hallRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return hall.Seats, nil
}

// SaveHallConfig parses and validates the JSON-string grid form the
// configurator submits, then persists it.
func (s *hallService) SaveHallConfig(ctx context.Context, id int64, rawSeats string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	grid, err := domain.ParseSeatGrid(rawSeats)
	if err != nil {
		return err
	}
	if err := s.hallRepo.UpdateSeats(ctx, id, grid); err != nil {
		return err
	}
	return nil
}

func (s *hallService) SetPrices(ctx context.Context, id int64, regular, vip float64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if regular < 0 || vip < 0 {
		return fmt.Errorf("%w: prices must not be negative", domain.ErrValidation)
	}
	return s.hallRepo.UpdatePrices(ctx, id, regular, vip)
}

func (s *hallService) DeleteHall(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.hallRepo.Delete(ctx, id)
}
