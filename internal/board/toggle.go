package board

// Toggle returns the new value of a solution square that the player clicked
// with the requested colour.
//
//   - Empty square: becomes requested, or the opposite colour when requested
//     is already at capacity, or stays Empty when both are full.
//   - Occupied square (either colour): becomes Empty.
//
// placed must reflect the solution grid as it is right now; caps are the
// configured stone counts. Requesting Empty leaves the square unchanged.
func Toggle(current, requested Cell, placed, caps Counts) Cell {
	if requested == Empty {
		return current
	}
	if current != Empty {
		return Empty
	}
	if placed.Of(requested) < caps.Of(requested) {
		return requested
	}
	if alt := requested.Opposite(); placed.Of(alt) < caps.Of(alt) {
		return alt
	}
	return Empty
}

// Place applies Toggle to the square at (col, row), recounting the stones
// on the grid first so the capacity check never drifts. It returns the new
// value and whether the square changed. Out-of-bounds squares are ignored.
func (g *Grid) Place(col, row int, requested Cell, caps Counts) (Cell, bool) {
	if !g.InBounds(col, row) {
		return Empty, false
	}
	cur := g.Cells[row][col]
	next := Toggle(cur, requested, g.Count(), caps)
	if next == cur {
		return cur, false
	}
	g.Cells[row][col] = next
	return next, true
}
