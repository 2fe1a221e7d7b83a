package legalize

import "testing"

func TestDesignBuilderRowsAlternatePower(t *testing.T) {
	b := NewDesignBuilder(0, 0, 100, 50, 1, 10)
	b.Rows(0, 0, 1, 100, 10, 5, VDD)
	db := b.Build()

	rows := db.Database().Rows()
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	want := []Power{VDD, VSS, VDD, VSS, VDD}
	for i, r := range rows {
		if r.Power != want[i] {
			t.Errorf("rows[%d].Power = %v, want %v", i, r.Power, want[i])
		}
	}
}

func TestDesignBuilderCellAndFixed(t *testing.T) {
	b := NewDesignBuilder(0, 0, 100, 10, 1, 10)
	b.Macro("INV", 4, 10, VDD, VSS)
	b.Cell("c1", "INV", 10, 0)
	b.Fixed("f1", "INV", 50, 0)
	db := b.Build()

	cells := db.Database().Cells()
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	byName := map[string]*Cell{}
	for _, c := range cells {
		byName[c.Name] = c
	}
	if byName["c1"].Fixed {
		t.Error("c1 should not be fixed")
	}
	if !byName["f1"].Fixed {
		t.Error("f1 should be fixed")
	}
	if byName["c1"].InitX != 10 || byName["c1"].InitY != 0 {
		t.Errorf("c1 init location = (%d,%d), want (10,0)", byName["c1"].InitX, byName["c1"].InitY)
	}
}

func TestDesignBuilderGroupCellResolvesGroup(t *testing.T) {
	b := NewDesignBuilder(0, 0, 100, 10, 1, 10)
	b.Macro("INV", 4, 10, VDD, VSS)
	b.Group("g1", 0, 0, 40, 10)
	b.GroupCell("gc1", "INV", 10, 0, "g1")
	db := b.Build()

	cells := db.Database().Cells()
	if cells[0].Group == nil || cells[0].Group.Name != "g1" {
		t.Error("GroupCell should resolve the named group onto the cell")
	}
}

func TestDesignBuilderNetAndPin(t *testing.T) {
	b := NewDesignBuilder(0, 0, 100, 10, 1, 10)
	b.Macro("INV", 4, 10, VDD, VSS)
	b.Cell("c1", "INV", 0, 0)
	b.Cell("c2", "INV", 10, 0)
	b.Net("n1").Pin("c1", 0, 0).Pin("c2", 1, 1)
	db := b.Build()

	nets := db.Database().Nets()
	if len(nets) != 1 {
		t.Fatalf("got %d nets, want 1", len(nets))
	}
	if len(nets[0].Pins) != 2 {
		t.Fatalf("got %d pins, want 2", len(nets[0].Pins))
	}
	if nets[0].Pins[1].OffsetX != 1 || nets[0].Pins[1].OffsetY != 1 {
		t.Errorf("second pin offset = (%d,%d), want (1,1)", nets[0].Pins[1].OffsetX, nets[0].Pins[1].OffsetY)
	}
}

func TestDesignBuilderPinWithoutNetIsNoop(t *testing.T) {
	b := NewDesignBuilder(0, 0, 100, 10, 1, 10)
	b.Pin("orphan", 0, 0)
	db := b.Build()

	if len(db.Database().Nets()) != 0 {
		t.Error("Pin called before any Net should not create a net")
	}
}
