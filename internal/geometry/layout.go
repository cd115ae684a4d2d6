// internal/geometry/layout.go
//
// Screen geometry shared by the renderer and input hit-testing.
//
// Coordinates are viewport pixels with (0,0) at the top-left corner and y
// growing downward. Board origins are offsets of the board centre from the
// viewport centre in the same orientation. Row 0 of a board is its top row;
// nothing in this package flips the vertical axis.

package geometry

import "math"

const (
	// Padding is the gap between squares relative to a square's side, and
	// the margin kept around each board.
	Padding = 0.05
	// UsableHeight is the share of the viewport height left after the
	// control bars.
	UsableHeight = 0.9
)

// Point is a position or offset in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout places the truth and solution boards in a viewport.
type Layout struct {
	Viewport       Point   `json:"viewport"`
	Vertical       bool    `json:"vertical"`
	BoardSide      float64 `json:"boardSide"`
	SquareSide     float64 `json:"squareSide"`
	StoneRadius    float64 `json:"stoneRadius"`
	TruthOrigin    Point   `json:"truthOrigin"`
	SolutionOrigin Point   `json:"solutionOrigin"`
}

// Compute lays out two boards of boardSize squares in a width×height
// viewport. Boards are stacked (truth on top) when the usable area is taller
// than wide, otherwise placed side by side (truth on the left). Each board is
// the largest square that fits its half of the usable area, less Padding.
func Compute(width, height float64, boardSize int) Layout {
	l := Layout{Viewport: Point{X: width, Y: height}}
	if width <= 0 || height <= 0 {
		return l
	}
	l.Vertical = UsableHeight*height > width
	if l.Vertical {
		l.BoardSide = (1 - Padding) * math.Min(width, UsableHeight*0.5*height)
	} else {
		l.BoardSide = (1 - Padding) * math.Min(UsableHeight*height, 0.5*width)
	}

	shift := 0.5 * l.BoardSide * (1 + Padding)
	if l.Vertical {
		l.TruthOrigin, l.SolutionOrigin = Point{Y: -shift}, Point{Y: shift}
	} else {
		l.TruthOrigin, l.SolutionOrigin = Point{X: -shift}, Point{X: shift}
	}

	if boardSize > 0 {
		l.SquareSide = l.BoardSide / (float64(boardSize) + Padding)
		l.StoneRadius = 0.5 * l.SquareSide / (1 + 4*Padding)
	}
	return l
}

// CellCenter returns the viewport position of the centre of square
// (col, row) on a board centred at origin.
func (l Layout) CellCenter(origin Point, boardSize, col, row int) Point {
	half := 0.5 * float64(boardSize-1)
	return Point{
		X: 0.5*l.Viewport.X + origin.X + (float64(col)-half)*l.SquareSide,
		Y: 0.5*l.Viewport.Y + origin.Y + (float64(row)-half)*l.SquareSide,
	}
}

// HitSolution maps a cursor position onto the solution board.
func (l Layout) HitSolution(cursor Point, boardSize int) (col, row int, ok bool) {
	return Map(cursor, l.Viewport, l.SolutionOrigin, l.BoardSide, boardSize)
}
