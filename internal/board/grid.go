// internal/board/grid.go
//
// Board types for the memory game.
// Defines:
//   - Cell: the content of one square (Empty, Black, White).
//   - Grid: a square board of cells, indexed Cells[row][col].
//   - Counts: number of black and white stones on a grid.
//
// Row 0 is the top row as seen on screen; column 0 is the leftmost column.

package board

import (
	"errors"
	"strings"
)

// Cell is the content of a single square.
// The sign carries the colour: Black is +1, White is -1, Empty is 0, so the
// product of two cells is positive for a colour match and negative for a
// colour mismatch.
type Cell int8

const (
	Empty Cell = 0
	Black Cell = 1
	White Cell = -1
)

// Opposite returns the other stone colour. Empty stays Empty.
func (c Cell) Opposite() Cell { return -c }

// String returns "empty", "black" or "white".
func (c Cell) String() string {
	switch {
	case c > 0:
		return "black"
	case c < 0:
		return "white"
	default:
		return "empty"
	}
}

// ParseCell accepts "black"/"b", "white"/"w" and "empty"/"" (case-insensitive).
func ParseCell(s string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	case "empty", "":
		return Empty, nil
	}
	return Empty, errors.New("unknown cell colour")
}

// Counts holds the number of stones of each colour.
type Counts struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Of returns the count for the given colour (0 for Empty).
func (c Counts) Of(color Cell) int {
	switch {
	case color > 0:
		return c.Black
	case color < 0:
		return c.White
	}
	return 0
}

// Total is Black + White.
func (c Counts) Total() int { return c.Black + c.White }

// Grid is a square board of side Size.
type Grid struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"` // Cells[row][col]
}

// NewGrid returns an all-Empty grid of the given side length.
// A non-positive size yields an empty 0×0 grid.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	cells := make([][]Cell, size)
	for row := range cells {
		cells[row] = make([]Cell, size)
	}
	return &Grid{Size: size, Cells: cells}
}

// InBounds reports whether (col, row) addresses a square of the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Size && row >= 0 && row < g.Size
}

// At returns the cell at (col, row), or Empty when out of bounds.
func (g *Grid) At(col, row int) Cell {
	if !g.InBounds(col, row) {
		return Empty
	}
	return g.Cells[row][col]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(col, row int, c Cell) {
	if g.InBounds(col, row) {
		g.Cells[row][col] = c
	}
}

// Count tallies the stones on the grid.
func (g *Grid) Count() Counts {
	var n Counts
	for _, row := range g.Cells {
		for _, c := range row {
			switch {
			case c > 0:
				n.Black++
			case c < 0:
				n.White++
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Size)
	for row := range g.Cells {
		copy(out.Cells[row], g.Cells[row])
	}
	return out
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.Size != o.Size {
		return false
	}
	for row := range g.Cells {
		for col := range g.Cells[row] {
			if g.Cells[row][col] != o.Cells[row][col] {
				return false
			}
		}
	}
	return true
}

// String renders the grid one row per line: 'B' black, 'W' white, '.' empty.
func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.Cells {
		for _, c := range row {
			switch {
			case c > 0:
				sb.WriteByte('B')
			case c < 0:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
