package legalize

import "fmt"

// Pixel is one site-sized cell of the occupancy grid: a single (row, site)
// coordinate pair. A pixel is either empty, occupied by exactly one placed
// cell (movable or fixed), and optionally belongs to a Group region.
//
// Pixel.Cell and Pixel.Group are back-references by pointer into the
// design's cell/group slices, not owning references — the grid never
// allocates or frees a Cell or Group, it only records which one currently
// occupies a site.
type Pixel struct {
	X, Y    int    // grid coordinates: X is a site index, Y is a row index
	Cell    *Cell  // occupying cell, nil if the site is empty
	Group   *Group // region this site belongs to, nil if unconstrained
	IsValid bool   // false if the site is permanently unusable (off-core, blocked)
}

// Grid is the 2-D occupancy grid the legalizer paints fixed cells and
// groups onto before placing movable cells. Grid coordinates are discrete
// site/row indices; geometry.go converts between grid coordinates and DBU.
type Grid struct {
	pixels   [][]*Pixel // pixels[row][site]
	rowCount int
	siteCnt  int // sites per row; rows may have fewer usable sites at core edges, tracked via IsValid
}

// NewGrid allocates a rowCount x siteCount occupancy grid with every pixel
// initially empty and valid.
func NewGrid(rowCount, siteCount int) *Grid {
	g := &Grid{
		pixels:   make([][]*Pixel, rowCount),
		rowCount: rowCount,
		siteCnt:  siteCount,
	}
	for y := 0; y < rowCount; y++ {
		row := make([]*Pixel, siteCount)
		for x := 0; x < siteCount; x++ {
			row[x] = &Pixel{X: x, Y: y, IsValid: true}
		}
		g.pixels[y] = row
	}
	return g
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rowCount }

// Sites returns the number of sites per grid row.
func (g *Grid) Sites() int { return g.siteCnt }

// InBounds reports whether (x, y) names an existing pixel.
func (g *Grid) InBounds(x, y int) bool {
	return y >= 0 && y < g.rowCount && x >= 0 && x < g.siteCnt
}

// At returns the pixel at (x, y), or nil if out of bounds.
func (g *Grid) At(x, y int) *Pixel {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.pixels[y][x]
}

// Info returns a short human-readable description of the grid's current
// occupancy, for diagnostics messages.
func (g *Grid) Info() string {
	occupied := 0
	for _, row := range g.pixels {
		for _, p := range row {
			if p.Cell != nil {
				occupied++
			}
		}
	}
	return fmt.Sprintf("grid %dx%d (%d/%d sites occupied)", g.siteCnt, g.rowCount, occupied, g.siteCnt*g.rowCount)
}

// Region reports whether the w x h block of sites with lower-left corner
// (x, y) is entirely within grid bounds.
func (g *Grid) Region(x, y, w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	return g.InBounds(x, y) && g.InBounds(x+w-1, y+h-1)
}

// IsFree reports whether every pixel of the w x h block at (x, y) is
// in-bounds, marked valid, unoccupied, and assigned to exactly group: a
// non-nil group admits only that group's own sites, not unconstrained
// ones, and a nil group means the block must not belong to any group.
func (g *Grid) IsFree(x, y, w, h int, group *Group) bool {
	if !g.Region(x, y, w, h) {
		return false
	}
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			p := g.pixels[j][i]
			if !p.IsValid || p.Cell != nil {
				return false
			}
			if p.Group != group {
				return false
			}
		}
	}
	return true
}

// Occupy marks every pixel of the w x h block at (x, y) as occupied by
// cell. Callers must have verified the block with IsFree first; Occupy
// does not itself check legality.
func (g *Grid) Occupy(cell *Cell, x, y, w, h int) {
	for j := y; j < y+h && j < g.rowCount; j++ {
		for i := x; i < x+w && i < g.siteCnt; i++ {
			g.pixels[j][i].Cell = cell
		}
	}
}

// Vacate clears the occupying cell from every pixel of the w x h block at
// (x, y).
func (g *Grid) Vacate(x, y, w, h int) {
	for j := y; j < y+h && j < g.rowCount; j++ {
		for i := x; i < x+w && i < g.siteCnt; i++ {
			g.pixels[j][i].Cell = nil
		}
	}
}

// Invalidate marks every pixel of the w x h block at (x, y) permanently
// unusable (e.g. off-core or under a fixed blockage with no cell
// assigned).
func (g *Grid) Invalidate(x, y, w, h int) {
	for j := y; j < y+h && j < g.rowCount; j++ {
		for i := x; i < x+w && i < g.siteCnt; i++ {
			g.pixels[j][i].IsValid = false
		}
	}
}

// PaintGroup assigns group to every pixel of the w x h block at (x, y),
// establishing a region constraint: only cells that belong to this group
// may subsequently occupy these sites.
func (g *Grid) PaintGroup(group *Group, x, y, w, h int) {
	for j := y; j < y+h && j < g.rowCount; j++ {
		for i := x; i < x+w && i < g.siteCnt; i++ {
			g.pixels[j][i].Group = group
		}
	}
}

// PaintFixed paints a fixed cell's footprint directly: marks the block
// occupied by cell and valid, overriding the earlier "unusable" default
// so a fixed cell's own footprint counts as "occupied," not "invalid",
// and CellsInRegion reports the fixed cell there like any other
// occupant.
func (g *Grid) PaintFixed(cell *Cell, x, y, w, h int) {
	for j := y; j < y+h && j < g.rowCount; j++ {
		for i := x; i < x+w && i < g.siteCnt; i++ {
			p := g.pixels[j][i]
			p.IsValid = true
			p.Cell = cell
		}
	}
}

// CellsInRegion returns the distinct, non-nil cells occupying any pixel of
// the w x h block at (x, y). It is the intended semantics of the
// boundary-query helper described in the grid builder component: distinct
// placed cells whose footprint intersects the block, with no duplicate
// entries and no reliance on pointer-identity bugs in membership testing.
func (g *Grid) CellsInRegion(x, y, w, h int) []*Cell {
	seen := make(map[*Cell]bool)
	var result []*Cell
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, g.siteCnt), min(y+h, g.rowCount)
	for j := y0; j < y1; j++ {
		for i := x0; i < x1; i++ {
			c := g.pixels[j][i].Cell
			if c == nil || seen[c] {
				continue
			}
			seen[c] = true
			result = append(result, c)
		}
	}
	return result
}
