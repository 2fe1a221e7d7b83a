package legalize

import "testing"

func TestComputeDisplacementStatsSkipsFixedAndUnplaced(t *testing.T) {
	cells := []*Cell{
		{Name: "moved", X: 10, Y: 0, InitX: 0, InitY: 0, Placed: true},
		{Name: "unplaced", X: 50, Y: 0, InitX: 0, InitY: 0, Placed: false},
		{Name: "fixed", X: 50, Y: 0, InitX: 0, InitY: 0, Placed: true, Fixed: true},
	}

	stats := ComputeDisplacementStats(cells)
	if stats.Count != 1 {
		t.Fatalf("Count = %d, want 1 (only the placed, movable cell)", stats.Count)
	}
	if stats.Total != 10 {
		t.Errorf("Total = %d, want 10", stats.Total)
	}
	if stats.Max != 10 {
		t.Errorf("Max = %d, want 10", stats.Max)
	}
	if stats.Average != 10 {
		t.Errorf("Average = %v, want 10", stats.Average)
	}
}

func TestComputeDisplacementStatsEmpty(t *testing.T) {
	stats := ComputeDisplacementStats(nil)
	if stats.Count != 0 || stats.Total != 0 || stats.Average != 0 {
		t.Errorf("expected zero-value stats for no cells, got %+v", stats)
	}
}

func TestHPWLSinglePin(t *testing.T) {
	cells := map[string]*Cell{"c1": {Name: "c1", X: 10, Y: 20}}
	net := &Net{Name: "n1", Pins: []Pin{{CellName: "c1", OffsetX: 0, OffsetY: 0}}}

	if got := HPWL(net, cells); got != 0 {
		t.Errorf("HPWL of a single-pin net = %d, want 0", got)
	}
}

func TestHPWLBoundingBox(t *testing.T) {
	cells := map[string]*Cell{
		"a": {Name: "a", X: 0, Y: 0},
		"b": {Name: "b", X: 10, Y: 5},
	}
	net := &Net{Name: "n1", Pins: []Pin{
		{CellName: "a", OffsetX: 0, OffsetY: 0},
		{CellName: "b", OffsetX: 0, OffsetY: 0},
	}}

	if got := HPWL(net, cells); got != 15 {
		t.Errorf("HPWL = %d, want 15 (width 10 + height 5)", got)
	}
}

func TestHPWLIgnoresUnknownCells(t *testing.T) {
	cells := map[string]*Cell{"a": {Name: "a", X: 0, Y: 0}}
	net := &Net{Name: "n1", Pins: []Pin{
		{CellName: "a", OffsetX: 0, OffsetY: 0},
		{CellName: "missing", OffsetX: 100, OffsetY: 100},
	}}

	if got := HPWL(net, cells); got != 0 {
		t.Errorf("HPWL should ignore pins on cells absent from the map, got %d", got)
	}
}

func TestTotalHPWLSumsAcrossNets(t *testing.T) {
	cells := []*Cell{
		{Name: "a", X: 0, Y: 0},
		{Name: "b", X: 10, Y: 0},
		{Name: "c", X: 0, Y: 5},
	}
	nets := []*Net{
		{Name: "n1", Pins: []Pin{{CellName: "a"}, {CellName: "b"}}},
		{Name: "n2", Pins: []Pin{{CellName: "a"}, {CellName: "c"}}},
	}

	if got := TotalHPWL(nets, cells); got != 15 {
		t.Errorf("TotalHPWL = %d, want 15 (10 + 5)", got)
	}
}

func TestGroupAnalyzeUtilization(t *testing.T) {
	geo := NewGeometry(0, 0, 1000, 1000, 10, 100)
	group := &Group{Name: "g1", Rects: []Rect{{LLX: 0, LLY: 0, URX: 200, URY: 2200}}}
	macro := &Macro{Name: "INV", Width: 20, Height: 100}
	cells := []*Cell{
		{Name: "c1", Macro: macro, Group: group},
		{Name: "c2", Macro: macro, Group: group},
		{Name: "unrelated", Macro: macro},
	}

	result := GroupAnalyze(geo, []*Group{group}, cells)
	if len(result) != 1 {
		t.Fatalf("GroupAnalyze returned %d rows, want 1", len(result))
	}

	gu := result[0]
	wantRegionArea := int64(200 * 2200)
	if gu.RegionArea != wantRegionArea {
		t.Errorf("RegionArea = %d, want %d", gu.RegionArea, wantRegionArea)
	}
	wantCellArea := int64(2 * 20 * 100)
	if gu.CellArea != wantCellArea {
		t.Errorf("CellArea = %d, want %d (unrelated cell excluded)", gu.CellArea, wantCellArea)
	}
	wantAvailArea := int64((200 - 10) * (2200 - 1000))
	if gu.AvailableArea != wantAvailArea {
		t.Errorf("AvailableArea = %d, want %d (margins derived from site_width/10*row_height)", gu.AvailableArea, wantAvailArea)
	}
}

func TestGroupAnalyzeNegativeAvailableAreaOmitted(t *testing.T) {
	geo := NewGeometry(0, 0, 1000, 1000, 10, 100)
	group := &Group{Name: "tiny", Rects: []Rect{{LLX: 0, LLY: 0, URX: 5, URY: 5}}}

	result := GroupAnalyze(geo, []*Group{group}, nil)
	if result[0].AvailableArea != 0 {
		t.Errorf("AvailableArea = %d, want 0 when margins exceed the rect", result[0].AvailableArea)
	}
}
