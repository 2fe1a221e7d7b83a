package legalize

// DisplacementStats summarizes how far cells moved from their
// global-placement input positions, in DBU.
type DisplacementStats struct {
	Total   int64
	Average float64
	Max     int
	Count   int
}

// ComputeDisplacementStats measures total, average, and maximum Manhattan
// displacement (in DBU) across every movable, placed cell.
func ComputeDisplacementStats(cells []*Cell) DisplacementStats {
	var stats DisplacementStats
	for _, c := range cells {
		if c.Fixed || !c.Placed {
			continue
		}
		dx := c.X - c.InitX
		if dx < 0 {
			dx = -dx
		}
		dy := c.Y - c.InitY
		if dy < 0 {
			dy = -dy
		}
		d := dx + dy
		stats.Total += int64(d)
		stats.Count++
		if d > stats.Max {
			stats.Max = d
		}
	}
	if stats.Count > 0 {
		stats.Average = float64(stats.Total) / float64(stats.Count)
	}
	return stats
}

// HPWL returns the half-perimeter wirelength of one net: the sum of its
// bounding box's width and height, in DBU, computed from each pin's
// absolute position (cell position plus pin offset).
func HPWL(net *Net, cellsByName map[string]*Cell) int {
	if len(net.Pins) == 0 {
		return 0
	}

	first := true
	var minX, minY, maxX, maxY int
	for _, pin := range net.Pins {
		c, ok := cellsByName[pin.CellName]
		if !ok {
			continue
		}
		x := c.X + pin.OffsetX
		y := c.Y + pin.OffsetY
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			continue
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	if first {
		return 0
	}
	return (maxX - minX) + (maxY - minY)
}

// TotalHPWL sums HPWL across every net in the design.
func TotalHPWL(nets []*Net, cells []*Cell) int64 {
	byName := make(map[string]*Cell, len(cells))
	for _, c := range cells {
		byName[c.Name] = c
	}
	var total int64
	for _, n := range nets {
		total += int64(HPWL(n, byName))
	}
	return total
}

// GroupUtilization is a group_analyze row: area consumed by cells
// assigned to a group versus the group's region area and "available"
// region area.
type GroupUtilization struct {
	Group              string
	RegionArea         int64
	AvailableArea      int64
	CellArea           int64
	Utilization        float64
	AvailUtilization   float64
}

// GroupAnalyze reports per-group utilization. "Available" area approximates
// usable region area after edge effects, derived from the design's actual
// SiteWidth and 10*RowHeight rather than a fixed-pitch constant, so it
// scales correctly across technologies with different site/row pitches.
func GroupAnalyze(geo Geometry, groups []*Group, cells []*Cell) []GroupUtilization {
	cellsByGroup := make(map[string][]*Cell)
	for _, c := range cells {
		if c.Group != nil {
			cellsByGroup[c.Group.Name] = append(cellsByGroup[c.Group.Name], c)
		}
	}

	marginX := geo.SiteWidth
	marginY := 10 * geo.RowHeight

	result := make([]GroupUtilization, 0, len(groups))
	for _, g := range groups {
		var regionArea, availArea int64
		for _, r := range g.Rects {
			regionArea += int64(r.Area())
			aw := r.Width() - marginX
			ah := r.Height() - marginY
			if aw > 0 && ah > 0 {
				availArea += int64(aw) * int64(ah)
			}
		}

		var cellArea int64
		for _, c := range cellsByGroup[g.Name] {
			cellArea += int64(c.Macro.Width) * int64(c.Macro.Height)
		}

		gu := GroupUtilization{Group: g.Name, RegionArea: regionArea, AvailableArea: availArea, CellArea: cellArea}
		if regionArea > 0 {
			gu.Utilization = float64(cellArea) / float64(regionArea)
		}
		if availArea > 0 {
			gu.AvailUtilization = float64(cellArea) / float64(availArea)
		}
		result = append(result, gu)
	}
	return result
}
