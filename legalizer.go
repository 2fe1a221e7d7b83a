package legalize

import "fmt"

// Legalizer is the explicit context every pipeline stage operates
// through. A Legalizer value owns its grid and cell vectors exclusively
// for the duration of one Legalize call; there is no package-level
// mutable state, so two Legalizers can run over two different designs
// concurrently without interfering with each other (§5: single-threaded
// and synchronous *within* one run, but a run is just a value, not a
// singleton).
type Legalizer struct {
	db   Database
	opts Options
	diag *Diagnostics
}

// New constructs a Legalizer bound to db, using opts for every run until
// replaced. diag may be nil, in which case the Legalizer creates its own
// 256-entry buffer, returned by Diagnostics.
func New(db Database, opts Options, diag *Diagnostics) *Legalizer {
	if diag == nil {
		diag = NewDiagnostics(256)
	}
	return &Legalizer{db: db, opts: opts, diag: diag}
}

// Diagnostics returns the ring buffer of non-fatal events recorded by the
// most recent run (and any prior ones, until the buffer wraps).
func (lz *Legalizer) Diagnostics() *Diagnostics {
	return lz.diag
}

// Legalize runs the full pipeline: row power assignment, grid
// construction (fixed cells and groups painted), initial placement, and
// a bounded number of shift/swap/refine refinement sweeps, then checks
// the result and returns a Report.
func (lz *Legalizer) Legalize() (*Report, error) {
	geo := lz.db.Geometry
	rows := lz.db.Rows()
	macros := lz.db.Macros()
	cells := lz.db.Cells()
	groups := lz.db.Groups()
	nets := lz.db.Nets()

	if err := AssignRowPower(rows, macros, lz.opts); err != nil {
		return nil, fmt.Errorf("legalize: %w", err)
	}

	hpwlBefore := TotalHPWL(nets, cells)

	g := NewGrid(geo.NumRows(), geo.NumSitesPerRow())

	if err := lz.paintGroups(g, geo, groups); err != nil {
		return nil, err
	}
	if err := lz.paintFixed(g, geo, cells); err != nil {
		return nil, err
	}

	for _, c := range cells {
		if !c.Fixed {
			if err := CheckCellPower(c); err != nil {
				return nil, fmt.Errorf("legalize: %w", err)
			}
		}
	}

	div := designDiv(geo, lz.opts, cells)
	failed := InitialPlace(g, geo, rows, lz.opts, div, cells, lz.diag)

	const maxRefinementPasses = 5
	for pass := 0; pass < maxRefinementPasses; pass++ {
		moved := RefinePass(g, geo, rows, lz.opts, div, cells)
		if moved == 0 {
			break
		}
	}

	for _, c := range cells {
		if c.Placed && !c.Fixed {
			if err := lz.db.SetCellLocation(c, c.X, c.Y); err != nil {
				return nil, fmt.Errorf("legalize: reporting location for cell %s: %w", c.Name, err)
			}
		}
	}

	if err := CheckPlacement(g, geo, rows, cells); err != nil {
		return nil, err
	}

	placed := 0
	for _, c := range cells {
		if c.Placed {
			placed++
		}
	}

	return &Report{
		TotalCells:   len(cells),
		PlacedCells:  placed,
		FailedCells:  len(failed),
		Displacement: ComputeDisplacementStats(cells),
		HPWLBefore:   hpwlBefore,
		HPWLAfter:    TotalHPWL(nets, cells),
		Diagnostics:  lz.diag,
	}, nil
}

func (lz *Legalizer) paintGroups(g *Grid, geo Geometry, groups []*Group) error {
	for _, group := range groups {
		for _, rect := range group.Rects {
			if rect.LLX < geo.CoreLLX || rect.LLY < geo.CoreLLY || rect.URX > geo.CoreURX || rect.URY > geo.CoreURY {
				return fmt.Errorf("legalize: group %s rect %+v: %w", group.Name, rect, ErrGroupOutsideCore)
			}
			x0, y0 := geo.GridX(rect.LLX), geo.GridY(rect.LLY)
			x1, y1 := geo.GridX(rect.URX), geo.GridY(rect.URY)
			g.PaintGroup(group, x0, y0, x1-x0, y1-y0)
		}
	}
	return nil
}

func (lz *Legalizer) paintFixed(g *Grid, geo Geometry, cells []*Cell) error {
	for _, c := range cells {
		if !c.Fixed {
			continue
		}
		llx, lly := c.X, c.Y
		urx, ury := c.X+c.Macro.Width, c.Y+c.Macro.Height
		if llx < geo.CoreLLX || lly < geo.CoreLLY || urx > geo.CoreURX || ury > geo.CoreURY {
			return fmt.Errorf("legalize: fixed cell %s: %w", c.Name, ErrFixedOutsideCore)
		}

		x0, y0 := geo.GridX(llx), geo.GridY(lly)
		w, h := geo.SitesWide(c.Macro.Width), geo.RowsTall(c.Macro.Height)
		if !g.IsFree(x0, y0, w, h, nil) {
			return fmt.Errorf("legalize: fixed cell %s: %w", c.Name, ErrFixedOverlap)
		}
		g.PaintFixed(c, x0, y0, w, h)
		c.SiteIndex, c.RowIndex = x0, y0
		c.Placed = true
	}
	return nil
}

// SetPlacementPadding updates the left/right per-cell site padding used
// by subsequent placement and refinement calls.
func (lz *Legalizer) SetPlacementPadding(left, right int) {
	lz.opts.PaddingLeft = left
	lz.opts.PaddingRight = right
}

// CheckPlacement validates the post-run invariants: every placed cell
// sits on a free-at-the-time, in-bounds, polarity-matching, group-
// respecting site, and no two cells overlap. It is also exposed directly
// so a caller can validate a placement obtained some other way (e.g.
// after hand-editing a snapshot). rows supplies per-row rail polarity
// for the power-legality check; pass nil if the design has no multi-row
// macros (single-row cells are power-legal on any row).
func CheckPlacement(g *Grid, geo Geometry, rows []*Row, cells []*Cell) error {
	occupied := make(map[[2]int]*Cell)
	for _, c := range cells {
		if !c.Placed {
			continue
		}
		w, h := geo.SitesWide(c.Macro.Width), geo.RowsTall(c.Macro.Height)
		for y := c.RowIndex; y < c.RowIndex+h; y++ {
			for x := c.SiteIndex; x < c.SiteIndex+w; x++ {
				if !g.InBounds(x, y) {
					return fmt.Errorf("legalize: cell %s site (%d,%d): %w", c.Name, x, y, ErrInvariantViolation)
				}
				key := [2]int{x, y}
				if existing, ok := occupied[key]; ok && existing != c {
					return fmt.Errorf("legalize: cells %s and %s overlap at (%d,%d): %w", existing.Name, c.Name, x, y, ErrInvariantViolation)
				}
				occupied[key] = c
			}
		}
		if h%2 == 0 && !RowMatchesCell(rowAt(rows, c.RowIndex), c) {
			return fmt.Errorf("legalize: cell %s row %d: %w", c.Name, c.RowIndex, ErrInvariantViolation)
		}
		if c.Group != nil {
			inside := false
			llx, lly := geo.DbuX(c.SiteIndex), geo.DbuY(c.RowIndex)
			urx, ury := llx+c.Macro.Width, lly+c.Macro.Height
			footprint := Rect{LLX: llx, LLY: lly, URX: urx, URY: ury}
			for _, r := range c.Group.Rects {
				if r.Contains(footprint) {
					inside = true
					break
				}
			}
			if !inside {
				return fmt.Errorf("legalize: cell %s outside group %s: %w", c.Name, c.Group.Name, ErrInvariantViolation)
			}
		}
	}
	return nil
}

// FillerPlacement returns the list of free, ungrouped, single-row gaps on
// every row, as (x, y, width) tuples of sites — the spans a caller would
// fill with filler cells after legalization. Gaps of exactly one site are
// omitted when opts.DisallowOneSiteGaps is set, since those gaps are
// never intentionally left by this pipeline and usually indicate an
// upstream mistake worth surfacing instead of silently filling.
func FillerPlacement(g *Grid, opts Options) [][3]int {
	var gaps [][3]int
	for y := 0; y < g.Rows(); y++ {
		x := 0
		for x < g.Sites() {
			if g.At(x, y).Cell != nil || g.At(x, y).Group != nil || !g.At(x, y).IsValid {
				x++
				continue
			}
			start := x
			for x < g.Sites() && g.At(x, y).Cell == nil && g.At(x, y).Group == nil && g.At(x, y).IsValid {
				x++
			}
			width := x - start
			if width == 1 && opts.DisallowOneSiteGaps {
				continue
			}
			gaps = append(gaps, [3]int{start, y, width})
		}
	}
	return gaps
}
