package legalize

// Geometry converts between DBU (the design's native integer coordinate
// space) and grid coordinates (discrete site/row indices). It is an
// explicit value threaded through every pipeline stage: there is no
// package-level state here, so two Legalizer runs over two different
// designs never share or clobber each other's geometry.
type Geometry struct {
	CoreLLX, CoreLLY int // DBU, lower-left of the legalizable core area
	CoreURX, CoreURY int // DBU, upper-right of the legalizable core area
	SiteWidth        int // DBU
	RowHeight        int // DBU
}

// NewGeometry derives a Geometry from the core box and site/row pitch.
func NewGeometry(coreLLX, coreLLY, coreURX, coreURY, siteWidth, rowHeight int) Geometry {
	return Geometry{
		CoreLLX: coreLLX, CoreLLY: coreLLY,
		CoreURX: coreURX, CoreURY: coreURY,
		SiteWidth: siteWidth, RowHeight: rowHeight,
	}
}

// NumSitesPerRow returns how many whole sites fit across the core width.
func (g Geometry) NumSitesPerRow() int {
	return (g.CoreURX - g.CoreLLX) / g.SiteWidth
}

// NumRows returns how many whole rows fit across the core height.
func (g Geometry) NumRows() int {
	return (g.CoreURY - g.CoreLLY) / g.RowHeight
}

// GridX converts a DBU x-coordinate to a site index by integer division,
// which truncates toward zero (the same as rounding down for coordinates
// at or right of the core origin), consistent with a cell's lower-left
// corner mapping onto the site it starts on.
func (g Geometry) GridX(dbuX int) int {
	return (dbuX - g.CoreLLX) / g.SiteWidth
}

// GridY converts a DBU y-coordinate to a row index by integer division,
// truncating toward zero like GridX.
func (g Geometry) GridY(dbuY int) int {
	return (dbuY - g.CoreLLY) / g.RowHeight
}

// DbuX converts a site index back to its DBU x-coordinate.
func (g Geometry) DbuX(siteX int) int {
	return g.CoreLLX + siteX*g.SiteWidth
}

// DbuY converts a row index back to its DBU y-coordinate.
func (g Geometry) DbuY(rowY int) int {
	return g.CoreLLY + rowY*g.RowHeight
}

// SitesWide returns how many sites a DBU width occupies, rounding up so a
// cell's footprint never underestimates the sites it covers.
func (g Geometry) SitesWide(dbuWidth int) int {
	return divCeil(dbuWidth, g.SiteWidth)
}

// RowsTall returns how many rows a DBU height occupies, rounding up.
func (g Geometry) RowsTall(dbuHeight int) int {
	return divCeil(dbuHeight, g.RowHeight)
}

// PaddedWidth returns a cell's site-width footprint including left/right
// placement padding.
func PaddedWidth(geo Geometry, opts Options, c *Cell) int {
	return geo.SitesWide(c.Macro.Width) + opts.PaddingLeft + opts.PaddingRight
}

// InitLocation returns the grid coordinate of a cell's global-placement
// input position — the fixed reference point displacement is measured
// against, which never changes as the cell is moved during legalization.
func InitLocation(geo Geometry, c *Cell) (x, y int) {
	return geo.GridX(c.InitX), geo.GridY(c.InitY)
}

// divCeil performs integer division rounding toward positive infinity.
func divCeil(a, b int) int {
	if b == 0 {
		return 0
	}
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}

// divRound performs integer division rounding to the nearest integer,
// halves rounding away from zero.
func divRound(a, b int) int {
	if b == 0 {
		return 0
	}
	if (a < 0) != (b < 0) {
		return (a - b/2) / b
	}
	return (a + b/2) / b
}

// DbuToMicrons converts a DBU value to microns given the design's DBU
// resolution (database units per micron).
func DbuToMicrons(dbu int, dbuPerMicron int) float64 {
	if dbuPerMicron == 0 {
		return 0
	}
	return float64(dbu) / float64(dbuPerMicron)
}
