package domain

import (
	"encoding/json"
	"fmt"
)

// SeatKind is the tag a single cell of a hall's seat grid carries.
// "standart" keeps the spelling the wire format has always used.
type SeatKind string

const (
	SeatStandard SeatKind = "standart"
	SeatVIP      SeatKind = "vip"
	SeatDisabled SeatKind = "disabled"
)

// Valid reports whether k is one of the three known seat kinds.
func (k SeatKind) Valid() bool {
	return k == SeatStandard || k == SeatVIP || k == SeatDisabled
}

// Cycle returns the next kind in the editor's click cycle:
// standart -> vip -> disabled -> standart. Unknown kinds reset to standart.
func (k SeatKind) Cycle() SeatKind {
	switch k {
	case SeatStandard:
		return SeatVIP
	case SeatVIP:
		return SeatDisabled
	default:
		return SeatStandard
	}
}

// SeatGrid is a hall's seat layout: ordered rows of seat kinds.
// A configured grid is always rectangular.
type SeatGrid [][]SeatKind

// NewSeatGrid returns a rows x cols grid with every cell standart.
func NewSeatGrid(rows, cols int) SeatGrid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g := make(SeatGrid, rows)
	for r := range g {
		g[r] = make([]SeatKind, cols)
		for c := range g[r] {
			g[r][c] = SeatStandard
		}
	}
	return g
}

// Rows returns the number of rows in the grid.
func (g SeatGrid) Rows() int { return len(g) }

// Cols returns the number of seats per row, 0 for an empty grid.
func (g SeatGrid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Resize returns a rows x cols grid that keeps existing tags at matching
// (row, col) positions and fills every new cell with standart.
func (g SeatGrid) Resize(rows, cols int) SeatGrid {
	out := NewSeatGrid(rows, cols)
	for r := range out {
		for c := range out[r] {
			if r < len(g) && c < len(g[r]) {
				out[r][c] = g[r][c]
			}
		}
	}
	return out
}

// CycleSeat advances the kind of the cell at (row, col) one step in the
// click cycle. Out-of-range coordinates are ignored.
func (g SeatGrid) CycleSeat(row, col int) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return
	}
	g[row][col] = g[row][col].Cycle()
}

// Validate checks that the grid is rectangular and contains only known
// seat kinds. The returned error message is safe to surface to operators.
func (g SeatGrid) Validate() error {
	cols := g.Cols()
	for r, row := range g {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d seats, expected %d", ErrValidation, r+1, len(row), cols)
		}
		for c, kind := range row {
			if !kind.Valid() {
				return fmt.Errorf("%w: unknown seat kind %q at row %d seat %d", ErrValidation, kind, r+1, c+1)
			}
		}
	}
	return nil
}

// VisibleIndex returns the customer-facing index of the seat at (row, col):
// its position in the row counting only non-disabled seats. It returns -1
// for disabled cells and out-of-range coordinates.
func (g SeatGrid) VisibleIndex(row, col int) int {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return -1
	}
	if g[row][col] == SeatDisabled {
		return -1
	}
	visible := 0
	for c := 0; c < col; c++ {
		if g[row][c] != SeatDisabled {
			visible++
		}
	}
	return visible
}

// Clone returns a deep copy of the grid.
func (g SeatGrid) Clone() SeatGrid {
	out := make(SeatGrid, len(g))
	for r, row := range g {
		out[r] = append([]SeatKind(nil), row...)
	}
	return out
}

// Encode serializes the grid to the JSON string form used by
// POST /halls/{id}/config and Session.SeatsStatus.
func (g SeatGrid) Encode() (string, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode seat grid: %w", err)
	}
	return string(b), nil
}

// ParseSeatGrid decodes a grid from its JSON string form and validates it.
func ParseSeatGrid(raw string) (SeatGrid, error) {
	var g SeatGrid
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, fmt.Errorf("%w: seats must be a JSON array of rows: %v", ErrValidation, err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
