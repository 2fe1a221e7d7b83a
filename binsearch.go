package legalize

// legalSite reports whether cell's w x h footprint can legally occupy
// the grid block at (x, y): in bounds, free, group-compatible, and —
// for a multi-row (even-height) cell, which can't mirror to fit either
// rail — power-compatible with the anchor row's polarity.
func legalSite(g *Grid, rows []*Row, cell *Cell, x, y, w, h int) bool {
	if !g.IsFree(x, y, w, h, cell.Group) {
		return false
	}
	if h%2 == 0 && !RowMatchesCell(rowAt(rows, y), cell) {
		return false
	}
	return true
}

// binSearch scans a window of sites on one row around a target x
// coordinate, looking for a free, power-legal block wide and tall
// enough for cell, and returns the legal site closest to targetX.
// Candidates are tried outward from targetX the same way on both sides
// (0, -1, +1, -2, +2, ...): at equal distance the left candidate wins,
// and the scan has no other directional preference.
//
// width is the number of sites considered on either side of targetX
// (diamondSearch passes ring*div*10); cellWidth and cellHeight are the cell's
// site/row footprint (including placement padding) the candidate block
// must accommodate — row is the anchor (bottom) row of that footprint,
// so every row the cell would actually cover is checked, not just row
// itself.
func binSearch(g *Grid, rows []*Row, cell *Cell, row, targetX, width, cellWidth, cellHeight int) (siteX int, ok bool) {
	if row < 0 || row+cellHeight > g.Rows() {
		return 0, false
	}

	for offset := 0; offset <= width; offset++ {
		if offset == 0 {
			if legalSite(g, rows, cell, targetX, row, cellWidth, cellHeight) {
				return targetX, true
			}
			continue
		}

		left := targetX - offset
		if left >= 0 && legalSite(g, rows, cell, left, row, cellWidth, cellHeight) {
			return left, true
		}

		right := targetX + offset
		if legalSite(g, rows, cell, right, row, cellWidth, cellHeight) {
			return right, true
		}
	}
	return 0, false
}
