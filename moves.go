package legalize

// distBenefit measures how much moving cell from its current grid
// position to candidate (grid coordinates) would change its displacement
// from its global-placement origin. It is measured in grid units against
// the cell's current grid index (SiteIndex, RowIndex) — a negative result
// means the move reduces displacement.
func distBenefit(geo Geometry, c *Cell, candidateX, candidateY int) int {
	initX, initY := InitLocation(geo, c)
	before := manhattan(c.SiteIndex, c.RowIndex, initX, initY)
	after := manhattan(candidateX, candidateY, initX, initY)
	return after - before
}

func manhattan(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// sameGroupAffiliation reports whether a and b are both assigned to some
// group, or both unconstrained — the looser test shiftMove's neighbor
// eviction uses, rather than requiring the exact same *Group.
func sameGroupAffiliation(a, b *Cell) bool {
	return (a.Group != nil) == (b.Group != nil)
}

// shiftMove clears space for cell by evicting every movable neighbor of
// matching group affiliation whose footprint intersects a region scaled
// by Options.ShiftMoveRegionScale around cell's global-placement
// location (3x cell's padded width/height by default, a 6w x 6h box
// total), re-places cell there via mapMove, then replays each evicted
// neighbor via mapMove at its own global-placement location. It returns
// true only if cell and every evicted neighbor were successfully
// replaced; if placing cell itself fails, the eviction is rolled back
// and nothing moves. A failed neighbor replay is not rolled back — it
// leaves that neighbor unplaced, matching map_move's own no-rollback
// contract.
func shiftMove(g *Grid, geo Geometry, rows []*Row, opts Options, div int, c *Cell) bool {
	w, h := PaddedWidth(geo, opts, c), geo.RowsTall(c.Macro.Height)
	initGridX, initGridY := InitLocation(geo, c)
	initX, initY := geo.DbuX(initGridX), geo.DbuY(initGridY)

	widthDBU := w * geo.SiteWidth
	heightDBU := h * geo.RowHeight
	scale := opts.ShiftMoveRegionScale

	region := Rect{
		LLX: clamp(initX-widthDBU*scale, geo.CoreLLX, geo.CoreURX),
		LLY: clamp(initY-heightDBU*scale, geo.CoreLLY, geo.CoreURY),
		URX: clamp(initX+widthDBU*scale, geo.CoreLLX, geo.CoreURX),
		URY: clamp(initY+heightDBU*scale, geo.CoreLLY, geo.CoreURY),
	}

	var evicted []*Cell
	for _, n := range GetCellsFromBoundary(g, geo, region) {
		if n == c || !sameGroupAffiliation(c, n) {
			continue
		}
		nw, nh := PaddedWidth(geo, opts, n), geo.RowsTall(n.Macro.Height)
		g.Vacate(n.SiteIndex, n.RowIndex, nw, nh)
		evicted = append(evicted, n)
	}

	g.Vacate(c.SiteIndex, c.RowIndex, w, h)
	if err := mapMove(g, geo, rows, opts, div, c); err != nil {
		g.Occupy(c, c.SiteIndex, c.RowIndex, w, h)
		for _, n := range evicted {
			nw, nh := PaddedWidth(geo, opts, n), geo.RowsTall(n.Macro.Height)
			g.Occupy(n, n.SiteIndex, n.RowIndex, nw, nh)
		}
		return false
	}

	ok := true
	for _, n := range evicted {
		if err := mapMove(g, geo, rows, opts, div, n); err != nil {
			n.Placed = false
			ok = false
		}
	}
	return ok
}

// swapMove exchanges the positions of two same-row-compatible cells when
// doing so strictly reduces total displacement (sum of both cells'
// distBenefit must be negative — ties are not swapped, matching the
// original's strict-less-than rejection rule rather than "no worse").
// Multi-row cells additionally require the row each would land on to
// match their macro's bottom-edge polarity, since swapping rows can
// cross a power boundary a single-row cell would simply mirror around.
func swapMove(g *Grid, geo Geometry, rows []*Row, a, b *Cell) bool {
	if a.Group != b.Group {
		return false
	}
	aw, ah := PaddedWidthOf(geo, a), geo.RowsTall(a.Macro.Height)
	bw, bh := PaddedWidthOf(geo, b), geo.RowsTall(b.Macro.Height)
	if aw != bw || ah != bh {
		return false
	}
	if ah%2 == 0 {
		if !RowMatchesCell(rowAt(rows, b.RowIndex), a) || !RowMatchesCell(rowAt(rows, a.RowIndex), b) {
			return false
		}
	}

	benefit := distBenefit(geo, a, b.SiteIndex, b.RowIndex) + distBenefit(geo, b, a.SiteIndex, a.RowIndex)
	if benefit >= 0 {
		return false
	}

	ax, ay := a.SiteIndex, a.RowIndex
	bx, by := b.SiteIndex, b.RowIndex

	g.Vacate(ax, ay, aw, ah)
	g.Vacate(bx, by, bw, bh)
	g.Occupy(a, bx, by, aw, ah)
	g.Occupy(b, ax, ay, bw, bh)

	a.SiteIndex, a.RowIndex = bx, by
	b.SiteIndex, b.RowIndex = ax, ay
	a.X, a.Y = geo.DbuX(bx), geo.DbuY(by)
	b.X, b.Y = geo.DbuX(ax), geo.DbuY(ay)
	return true
}

// PaddedWidthOf is PaddedWidth with the Options argument pre-applied to
// zero padding; callers that need a placed cell's footprint width after
// initial placement (padding was already baked into where it landed)
// use this instead of recomputing against Options.
func PaddedWidthOf(geo Geometry, c *Cell) int {
	return geo.SitesWide(c.Macro.Width)
}

// refineMove tries to move cell to candidate (x, y), subject to the
// max-displacement-rows constraint: a move whose resulting row distance
// from the cell's current row exceeds opts.MaxDisplacementRows is
// rejected outright regardless of benefit. Otherwise the move is taken
// only if the candidate site is legal (free, group- and power-
// compatible) and it strictly reduces displacement (benefit < 0).
func refineMove(g *Grid, geo Geometry, rows []*Row, opts Options, c *Cell, x, y int) bool {
	if abs(y-c.RowIndex) > opts.MaxDisplacementRows {
		return false
	}

	w, h := PaddedWidthOf(geo, c), geo.RowsTall(c.Macro.Height)
	if !legalSite(g, rows, c, x, y, w, h) {
		return false
	}
	if distBenefit(geo, c, x, y) >= 0 {
		return false
	}

	g.Vacate(c.SiteIndex, c.RowIndex, w, h)
	g.Occupy(c, x, y, w, h)
	c.SiteIndex, c.RowIndex = x, y
	c.X, c.Y = geo.DbuX(x), geo.DbuY(y)
	return true
}

// refineCandidate finds the nearest legal slot for cell via diamondSearch
// from its global-placement location and, if one exists, attempts
// refineMove there. cell's own site is never returned by diamondSearch
// since the grid still shows it occupied by cell itself, so this always
// proposes moving somewhere else.
func refineCandidate(g *Grid, geo Geometry, rows []*Row, opts Options, div int, c *Cell) bool {
	w, h := PaddedWidthOf(geo, c), geo.RowsTall(c.Macro.Height)
	initX, initY := InitLocation(geo, c)

	x, y, ok := diamondSearch(g, rows, c, w, h, initX, initY, opts.DiamondSearchHeight, div)
	if !ok {
		return false
	}
	return refineMove(g, geo, rows, opts, c, x, y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// nearestCoordToRectBoundary returns the point on rect's boundary nearest
// to (x, y). If (x, y) is inside rect, the nearest boundary point (not the
// interior point itself) is returned — mirroring the inside/outside split
// used by overlap and containment checks throughout this package.
func nearestCoordToRectBoundary(x, y int, rect Rect) (nx, ny int) {
	inside := x >= rect.LLX && x <= rect.URX && y >= rect.LLY && y <= rect.URY
	if !inside {
		nx = clamp(x, rect.LLX, rect.URX)
		ny = clamp(y, rect.LLY, rect.URY)
		return nx, ny
	}

	distLeft := x - rect.LLX
	distRight := rect.URX - x
	distBottom := y - rect.LLY
	distTop := rect.URY - y

	min := distLeft
	nx, ny = rect.LLX, y
	if distRight < min {
		min, nx, ny = distRight, rect.URX, y
	}
	if distBottom < min {
		min, nx, ny = distBottom, x, rect.LLY
	}
	if distTop < min {
		nx, ny = x, rect.URY
	}
	return nx, ny
}

// distForRect returns the Manhattan distance from (x, y) to the nearest
// point on rect's boundary, 0 if (x, y) lies exactly on the boundary.
func distForRect(x, y int, rect Rect) int {
	nx, ny := nearestCoordToRectBoundary(x, y, rect)
	return manhattan(x, y, nx, ny)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// overlapCells returns the distinct placed, non-fixed cells whose grid
// footprint overlaps the w x h block at (x, y).
func overlapCells(g *Grid, x, y, w, h int) []*Cell {
	var result []*Cell
	for _, c := range g.CellsInRegion(x, y, w, h) {
		if !c.Fixed {
			result = append(result, c)
		}
	}
	return result
}

// GetCellsFromBoundary returns the distinct placed, non-fixed cells whose
// grid footprint intersects the DBU rectangle rect.
func GetCellsFromBoundary(g *Grid, geo Geometry, rect Rect) []*Cell {
	x0, y0 := geo.GridX(rect.LLX), geo.GridY(rect.LLY)
	x1, y1 := geo.GridX(rect.URX), geo.GridY(rect.URY)
	return overlapCells(g, x0, y0, x1-x0+1, y1-y0+1)
}

// RefinePass runs one shift/refine/swap sweep over every movable, placed
// cell in the design: each cell first tries shiftMove, falling back to
// refineCandidate if shiftMove can't place it, and finally every pair of
// still-placed movable cells is tried with swapMove. It returns the
// number of moves (including swaps) that changed a cell's position.
func RefinePass(g *Grid, geo Geometry, rows []*Row, opts Options, div int, cells []*Cell) int {
	moved := 0
	for _, c := range cells {
		if c.Fixed || !c.Placed {
			continue
		}
		if shiftMove(g, geo, rows, opts, div, c) {
			moved++
			continue
		}
		if refineCandidate(g, geo, rows, opts, div, c) {
			moved++
		}
	}

	for i, a := range cells {
		if a.Fixed || !a.Placed {
			continue
		}
		for _, b := range cells[i+1:] {
			if b.Fixed || !b.Placed {
				continue
			}
			if swapMove(g, geo, rows, a, b) {
				moved++
			}
		}
	}
	return moved
}
