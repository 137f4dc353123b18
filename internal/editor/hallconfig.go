package editor

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"

	"cinematicketing/internal/domain"
)

// ErrConfigSaveFailed is the generic error shown when a seat-map save
// fails for any reason other than a validation rejection.
var ErrConfigSaveFailed = errors.New("saving the hall configuration failed")

// HallConfigClient is the backend surface the seat-map editor needs.
type HallConfigClient interface {
	HallConfig(ctx context.Context, hallID int64) (domain.SeatGrid, error)
	SaveHallConfig(ctx context.Context, hallID int64, rawSeats string) error
}

// HallConfig is the seat-map editor for one hall. Edits happen on a
// working grid; Cancel reverts to a snapshot taken at load time. The
// snapshot is refreshed only by a successful fetch, never by a save, so
// Cancel after a save still reverts to the last loaded layout.
type HallConfig struct {
	client HallConfigClient

	hallID   int64
	grid     domain.SeatGrid
	snapshot domain.SeatGrid
}

func NewHallConfig(client HallConfigClient) *HallConfig {
	return &HallConfig{client: client}
}

// Load fetches the hall's seat grid and takes the revert snapshot.
func (c *HallConfig) Load(ctx context.Context, hallID int64) error {
	grid, err := c.client.HallConfig(ctx, hallID)
	if err != nil {
		return err
	}
	var snapshot domain.SeatGrid
	if err := copier.Copy(&snapshot, &grid); err != nil {
		return err
	}
	c.hallID = hallID
	c.grid = grid
	c.snapshot = snapshot
	return nil
}

// Grid returns the working grid.
func (c *HallConfig) Grid() domain.SeatGrid { return c.grid }

// SetRows resizes the grid to the given row count. Surviving cells keep
// their kind; new rows are filled with standart seats.
func (c *HallConfig) SetRows(rows int) {
	c.grid = c.grid.Resize(rows, c.grid.Cols())
}

// SetSeatsPerRow resizes every row to the given seat count.
func (c *HallConfig) SetSeatsPerRow(cols int) {
	c.grid = c.grid.Resize(c.grid.Rows(), cols)
}

// CycleSeat advances the clicked seat one step in the kind cycle.
func (c *HallConfig) CycleSeat(row, col int) {
	c.grid.CycleSeat(row, col)
}

// Cancel discards the working grid and restores the snapshot.
func (c *HallConfig) Cancel() {
	c.grid = c.snapshot.Clone()
}

// Save pushes the working grid to the backend. A validation rejection
// surfaces the server's message verbatim; any other failure is generic.
// The revert snapshot is left untouched either way.
func (c *HallConfig) Save(ctx context.Context) error {
	raw, err := c.grid.Encode()
	if err != nil {
		return ErrConfigSaveFailed
	}
	if err := c.client.SaveHallConfig(ctx, c.hallID, raw); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		return ErrConfigSaveFailed
	}
	return nil
}
