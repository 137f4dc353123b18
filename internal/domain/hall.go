package domain

import "context"

// Hall represents a physical auditorium with a seat layout and per-kind
// ticket prices.
type Hall struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Seats        SeatGrid `json:"seats"`
	PriceRegular float64  `json:"price_regular"`
	PriceVIP     float64  `json:"price_vip"`
}

// NewHall returns a new Hall with an empty seat grid. ID is set by the
// repository on create.
func NewHall(name string) *Hall {
	return &Hall{Name: name, Seats: SeatGrid{}}
}

// PriceFor returns the ticket price for a seat kind. Disabled cells have
// no seat and therefore no price.
func (h *Hall) PriceFor(kind SeatKind) float64 {
	if kind == SeatVIP {
		return h.PriceVIP
	}
	if kind == SeatDisabled {
		return 0
	}
	return h.PriceRegular
}

// HallRepository defines the interface for hall storage.
type HallRepository interface {
	Create(ctx context.Context, hall *Hall) error
	GetByID(ctx context.Context, id int64) (*Hall, error)
	List(ctx context.Context) ([]*Hall, error)
	UpdateSeats(ctx context.Context, id int64, seats SeatGrid) error
	UpdatePrices(ctx context.Context, id int64, regular, vip float64) error
	Delete(ctx context.Context, id int64) error
}

// HallService defines the business logic for hall management and the
// seat-map configurator.
type HallService interface {
	CreateHall(ctx context.Context, name string) (*Hall, error)
	ListHalls(ctx context.Context) ([]*Hall, error)
	GetHallConfig(ctx context.Context, id int64) (SeatGrid, error)
	SaveHallConfig(ctx context.Context, id int64, rawSeats string) error
	SetPrices(ctx context.Context, id int64, regular, vip float64) error
	DeleteHall(ctx context.Context, id int64) error
}
