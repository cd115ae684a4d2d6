package geometry

import "math"

// Map converts a cursor position into the square of a board with boardSize
// squares per side, whose centre sits at origin (relative to the viewport
// centre) and whose edge-to-edge length is side pixels.
//
// The fractional column is boardSize·(0.5 + (cursor.X − viewport.X/2 − origin.X)/side)
// and the row likewise on Y. ok is false when either fraction falls outside
// [0, boardSize).
func Map(cursor, viewport, origin Point, side float64, boardSize int) (col, row int, ok bool) {
	if side <= 0 || boardSize <= 0 {
		return 0, 0, false
	}
	n := float64(boardSize)
	i := n * (0.5 + (cursor.X-0.5*viewport.X-origin.X)/side)
	j := n * (0.5 + (cursor.Y-0.5*viewport.Y-origin.Y)/side)
	// written so NaN also lands outside
	if !(i >= 0 && i < n && j >= 0 && j < n) {
		return 0, 0, false
	}
	return int(math.Floor(i)), int(math.Floor(j)), true
}
