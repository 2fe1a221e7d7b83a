package legalize

import "testing"

func TestMapMovePlacesAtTarget(t *testing.T) {
	geo := NewGeometry(0, 0, 200, 100, 1, 1)
	opts := DefaultOptions()
	opts.DiamondSearchHeight = 20
	g := NewGrid(geo.NumRows(), geo.NumSitesPerRow())

	c := &Cell{Name: "c1", Macro: macroFixture(), InitX: 10, InitY: 5}

	if err := mapMove(g, geo, nil, opts, opts.DiamondSearchDiv, c); err != nil {
		t.Fatalf("mapMove: %v", err)
	}
	if !c.Placed {
		t.Fatal("mapMove should mark the cell placed")
	}
	if g.At(c.SiteIndex, c.RowIndex).Cell != c {
		t.Error("mapMove should occupy the grid at the cell's final site")
	}
}

func TestMapMoveFailsWhenNoLegalSite(t *testing.T) {
	geo := NewGeometry(0, 0, 4, 1, 1, 1)
	opts := DefaultOptions()
	opts.DiamondSearchHeight = 1
	g := NewGrid(geo.NumRows(), geo.NumSitesPerRow())
	g.Occupy(&Cell{Name: "full"}, 0, 0, 4, 1)

	c := &Cell{Name: "c1", Macro: macroFixture(), InitX: 1, InitY: 0}
	if err := mapMove(g, geo, nil, opts, opts.DiamondSearchDiv, c); err == nil {
		t.Error("expected mapMove to fail when the grid has no legal site")
	}
}

func TestMapMoveRejectsMultiRowCellOnWrongPolarityRow(t *testing.T) {
	geo := NewGeometry(0, 0, 200, 30, 1, 10)
	opts := DefaultOptions()
	opts.DiamondSearchHeight = 4
	g := NewGrid(geo.NumRows(), geo.NumSitesPerRow())
	rows := []*Row{{Power: VDD}, {Power: VSS}, {Power: VDD}}

	multiRow := &Macro{Name: "DFF", Width: 2, Height: 20, BottomPower: VSS, IsMultiRow: true}
	c := &Cell{Name: "c1", Macro: multiRow, InitX: 0, InitY: 0}

	if err := mapMove(g, geo, rows, opts, opts.DiamondSearchDiv, c); err != nil {
		t.Fatalf("mapMove: %v", err)
	}
	if rows[c.RowIndex].Power != VSS {
		t.Errorf("mapMove placed a VSS-anchored cell on row %d (power %v), want VSS", c.RowIndex, rows[c.RowIndex].Power)
	}
}

func TestInitialPlacePlacesLargestCellsFirst(t *testing.T) {
	geo := NewGeometry(0, 0, 200, 100, 1, 1)
	opts := DefaultOptions()
	opts.DiamondSearchHeight = 50
	g := NewGrid(geo.NumRows(), geo.NumSitesPerRow())

	small := &Macro{Name: "small", Width: 1, Height: 1}
	big := &Macro{Name: "big", Width: 4, Height: 1}
	cells := []*Cell{
		{Name: "s1", Macro: small, InitX: 10, InitY: 10},
		{Name: "b1", Macro: big, InitX: 10, InitY: 10},
	}

	diag := NewDiagnostics(16)
	failed := InitialPlace(g, geo, nil, opts, opts.DiamondSearchDiv, cells, diag)
	if len(failed) != 0 {
		t.Fatalf("InitialPlace reported %d failures, want 0", len(failed))
	}
	for _, c := range cells {
		if !c.Placed {
			t.Errorf("cell %s was not placed", c.Name)
		}
	}
	if b1 := cells[1]; b1.SiteIndex != 10 || b1.RowIndex != 10 {
		t.Errorf("big cell b1 at (%d,%d), want (10,10): placed before s1, it takes the shared target site", b1.SiteIndex, b1.RowIndex)
	}
}

func TestInitialPlaceSkipsFixedCells(t *testing.T) {
	geo := NewGeometry(0, 0, 200, 100, 1, 1)
	opts := DefaultOptions()
	g := NewGrid(geo.NumRows(), geo.NumSitesPerRow())

	fixed := &Cell{Name: "f1", Macro: macroFixture(), Fixed: true, InitX: 0, InitY: 0}
	cells := []*Cell{fixed}

	failed := InitialPlace(g, geo, nil, opts, opts.DiamondSearchDiv, cells, nil)
	if len(failed) != 0 {
		t.Fatalf("InitialPlace should not attempt fixed cells, got %d failures", len(failed))
	}
	if fixed.Placed {
		t.Error("InitialPlace should not place fixed cells itself; that is paintFixed's job")
	}
}

func TestInitialPlaceRecordsDiagnosticsOnFailure(t *testing.T) {
	geo := NewGeometry(0, 0, 2, 1, 1, 1)
	opts := DefaultOptions()
	opts.DiamondSearchHeight = 1
	g := NewGrid(geo.NumRows(), geo.NumSitesPerRow())
	g.Occupy(&Cell{Name: "blocker"}, 0, 0, 2, 1)

	c := &Cell{Name: "c1", Macro: macroFixture(), InitX: 0, InitY: 0}
	diag := NewDiagnostics(16)

	failed := InitialPlace(g, geo, nil, opts, opts.DiamondSearchDiv, []*Cell{c}, diag)
	if len(failed) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failed))
	}
	if diag.Length() == 0 {
		t.Error("InitialPlace should record a diagnostics entry for an unplaceable cell")
	}
}
