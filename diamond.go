package legalize

// diamondSearch finds a legal site for cell (with the given site/row
// footprint) as close as possible to (targetX, targetY), expanding
// outward ring by ring. Ring i covers rows targetY-i and targetY+i,
// each scanned with binSearch over a window that grows with the ring
// index — the per-ring x-window scales by the row pitch's DBU-to-site
// ratio (a factor of 10 in a fixed-pitch technology), so ring width
// grows faster than ring height, reflecting that a row is much taller
// than a site is wide.
//
// div sets how many rings are tried (2*maxHeight/div) and how wide
// each ring's window is: div=1 ("one ring per row") is the exhaustive
// setting, substituted by the caller on dense or fixed-instance-heavy
// designs (see designDiv); the configured default of 4 tries fewer
// rings, trading exhaustiveness for speed. The ring loop intentionally
// runs i from 1 up to, but not including, 2*maxHeight/div — the last
// ring this produces is never fully closed on one side. This asymmetry
// is preserved rather than "fixed," since changing it changes which
// site ties are broken toward.
func diamondSearch(g *Grid, rows []*Row, cell *Cell, cellWidth, cellHeight, targetX, targetY, maxHeight, div int) (x, y int, ok bool) {
	if div <= 0 {
		div = 1
	}

	if g.InBounds(targetX, targetY) && legalSite(g, rows, cell, targetX, targetY, cellWidth, cellHeight) {
		return targetX, targetY, true
	}

	ringLimit := 2 * maxHeight / div
	for i := 1; i < ringLimit; i++ {
		window := i * div * 10

		if row := targetY - i; row >= 0 {
			if siteX, found := binSearch(g, rows, cell, row, targetX, window, cellWidth, cellHeight); found {
				return siteX, row, true
			}
		}
		if row := targetY + i; row < g.Rows() {
			if siteX, found := binSearch(g, rows, cell, row, targetX, window, cellWidth, cellHeight); found {
				return siteX, row, true
			}
		}
	}
	return 0, 0, false
}

// searchDiv picks the diamond-search ring divisor for the given design
// utilization and fixed-instance count: div=1 ("exhaustive, one ring per
// row") for dense or fixed-instance-heavy designs, otherwise the
// configured, coarser default.
func searchDiv(opts Options, utilization float64, hasFixedInstances bool) int {
	if utilization > opts.DenseUtilizationThreshold || hasFixedInstances {
		return 1
	}
	return opts.DiamondSearchDiv
}

// designDiv computes the diamond-search ring divisor for a whole
// design: utilization is total movable-cell area over core area, and
// any fixed instance forces exhaustive (div=1) search regardless of
// density. Computed once per run and reused across initial placement
// and every refinement pass, since neither the core area nor the set
// of fixed cells changes once a run starts.
func designDiv(geo Geometry, opts Options, cells []*Cell) int {
	coreArea := int64(geo.CoreURX-geo.CoreLLX) * int64(geo.CoreURY-geo.CoreLLY)

	var cellArea int64
	hasFixed := false
	for _, c := range cells {
		if c.Fixed {
			hasFixed = true
			continue
		}
		cellArea += int64(c.Macro.Width) * int64(c.Macro.Height)
	}

	var utilization float64
	if coreArea > 0 {
		utilization = float64(cellArea) / float64(coreArea)
	}
	return searchDiv(opts, utilization, hasFixed)
}
