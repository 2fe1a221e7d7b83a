package legalize

import "testing"

func TestBinSearchFindsTargetWhenFree(t *testing.T) {
	g := NewGrid(1, 20)
	cell := &Cell{Macro: &Macro{}}

	x, ok := binSearch(g, nil, cell, 0, 10, 10, 2, 1)
	if !ok || x != 10 {
		t.Errorf("binSearch = (%d,%v), want (10,true)", x, ok)
	}
}

func TestBinSearchFindsNearestFreeSite(t *testing.T) {
	g := NewGrid(1, 20)
	g.Occupy(&Cell{Name: "blocker"}, 10, 0, 2, 1)
	cell := &Cell{Macro: &Macro{}}

	x, ok := binSearch(g, nil, cell, 0, 10, 10, 2, 1)
	if !ok {
		t.Fatal("expected a free site to be found")
	}
	if x != 8 && x != 12 {
		t.Errorf("binSearch = %d, want 8 or 12 (nearest free site to target 10)", x)
	}
}

func TestBinSearchFailsWhenRowFull(t *testing.T) {
	g := NewGrid(1, 5)
	g.Occupy(&Cell{Name: "full"}, 0, 0, 5, 1)
	cell := &Cell{Macro: &Macro{}}

	if _, ok := binSearch(g, nil, cell, 0, 2, 5, 1, 1); ok {
		t.Error("binSearch should fail when no free site exists in the window")
	}
}

func TestBinSearchRespectsGroupConstraint(t *testing.T) {
	g := NewGrid(1, 20)
	region := &Group{Name: "r1"}
	g.PaintGroup(region, 5, 0, 10, 1)

	unconstrained := &Cell{Macro: &Macro{}}
	grouped := &Cell{Macro: &Macro{}, Group: region}

	if x, ok := binSearch(g, nil, unconstrained, 0, 8, 10, 1, 1); !ok || x != 4 {
		t.Errorf("unconstrained binSearch = (%d,%v), want (4,true): group-painted sites 5-14 are skipped", x, ok)
	}
	if _, ok := binSearch(g, nil, grouped, 0, 8, 10, 1, 1); !ok {
		t.Error("search with matching group should find sites painted with that group")
	}
}

func TestBinSearchOutOfBoundsRow(t *testing.T) {
	g := NewGrid(3, 10)
	cell := &Cell{Macro: &Macro{}}

	if _, ok := binSearch(g, nil, cell, 2, 5, 5, 2, 2); ok {
		t.Error("binSearch should fail when the cell's footprint would run past the last row")
	}
}

func TestBinSearchRejectsMultiRowCellOnWrongPolarityRow(t *testing.T) {
	g := NewGrid(3, 10)
	rows := []*Row{{Power: VDD}, {Power: VSS}, {Power: VDD}}
	cell := &Cell{Macro: &Macro{BottomPower: VSS}, Group: nil}

	if _, ok := binSearch(g, rows, cell, 0, 5, 5, 2, 2); ok {
		t.Error("a multi-row cell needing a VSS anchor row should not be legal on a VDD row")
	}
	if x, ok := binSearch(g, rows, cell, 1, 5, 5, 2, 2); !ok || x != 5 {
		t.Errorf("binSearch(row 1) = (%d,%v), want (5,true) on the matching VSS row", x, ok)
	}
}
