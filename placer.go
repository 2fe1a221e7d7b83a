package legalize

import (
	"fmt"
	"sort"
)

// InitialPlace runs the initial placer over every movable cell in the
// design, in descending footprint-area order (largest cells first, so
// they claim space before small cells fragment it), snapping each one to
// a legal site via mapMove. It returns the cells that could not be placed
// at all, recording one diagnostics entry per failure rather than
// aborting the run — a single unplaceable cell is a per-cell failure
// (§7 kind 3), not a fatal error for the whole run.
func InitialPlace(g *Grid, geo Geometry, rows []*Row, opts Options, div int, cells []*Cell, diag *Diagnostics) []*Cell {
	movable := make([]*Cell, 0, len(cells))
	for _, c := range cells {
		if !c.Fixed {
			movable = append(movable, c)
		}
	}

	sort.SliceStable(movable, func(i, j int) bool {
		return movable[i].Macro.Width*movable[i].Macro.Height > movable[j].Macro.Width*movable[j].Macro.Height
	})

	var failed []*Cell
	for _, c := range movable {
		if err := mapMove(g, geo, rows, opts, div, c); err != nil {
			failed = append(failed, c)
			if diag != nil {
				diag.Warn("initial-placer", "cell %s: %v", c.Name, err)
			}
		}
	}
	return failed
}

// mapMove places a single cell as close as possible to its current
// (global-placement) position. It runs diamondSearch twice: the first
// search anchors at the cell's own target position; if it finds a site,
// a second search re-centers on that result's grid coordinate before
// committing, and the second result is painted if found, the first
// otherwise. This re-centering is part of the contract, not an
// optimization shortcut — a single search is not equivalent to this
// two-pass behavior when the grid is irregular (groups, fixed blockages)
// near the first candidate.
func mapMove(g *Grid, geo Geometry, rows []*Row, opts Options, div int, c *Cell) error {
	cellWidth := PaddedWidth(geo, opts, c)
	cellHeight := geo.RowsTall(c.Macro.Height)
	targetX, targetY := InitLocation(geo, c)
	if c.Group != nil && len(c.Group.Rects) > 0 {
		// A grouped cell's search starts from the nearest position inside
		// its group's bounding box, so the rings reach the group's sites.
		bb := c.Group.Rects[0]
		for _, r := range c.Group.Rects[1:] {
			bb.LLX, bb.LLY = min(bb.LLX, r.LLX), min(bb.LLY, r.LLY)
			bb.URX, bb.URY = max(bb.URX, r.URX), max(bb.URY, r.URY)
		}
		targetX = clamp(targetX, geo.GridX(bb.LLX), geo.GridX(bb.URX)-cellWidth)
		targetY = clamp(targetY, geo.GridY(bb.LLY), geo.GridY(bb.URY)-cellHeight)
	}

	firstX, firstY, ok := diamondSearch(g, rows, c, cellWidth, cellHeight, targetX, targetY, opts.DiamondSearchHeight, div)
	if !ok {
		return fmt.Errorf("cell %s at (%d,%d): %w", c.Name, targetX, targetY, ErrNoLegalSite)
	}

	secondX, secondY, ok2 := diamondSearch(g, rows, c, cellWidth, cellHeight, firstX, firstY, opts.DiamondSearchHeight, div)

	placeX, placeY := firstX, firstY
	if ok2 {
		placeX, placeY = secondX, secondY
	}

	g.Occupy(c, placeX, placeY, cellWidth, cellHeight)
	c.SiteIndex, c.RowIndex = placeX, placeY
	c.X, c.Y = geo.DbuX(placeX), geo.DbuY(placeY)
	c.Placed = true
	return nil
}
