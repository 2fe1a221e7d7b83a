package legalize

import "testing"

func TestGeometryConversions(t *testing.T) {
	geo := NewGeometry(0, 0, 2000, 1000, 20, 100)

	if geo.NumSitesPerRow() != 100 {
		t.Errorf("NumSitesPerRow() = %d, want 100", geo.NumSitesPerRow())
	}
	if geo.NumRows() != 10 {
		t.Errorf("NumRows() = %d, want 10", geo.NumRows())
	}

	if got := geo.GridX(40); got != 2 {
		t.Errorf("GridX(40) = %d, want 2", got)
	}
	if got := geo.GridY(300); got != 3 {
		t.Errorf("GridY(300) = %d, want 3", got)
	}
	if got := geo.DbuX(2); got != 40 {
		t.Errorf("DbuX(2) = %d, want 40", got)
	}
	if got := geo.DbuY(3); got != 300 {
		t.Errorf("DbuY(3) = %d, want 300", got)
	}
}

func TestGeometrySitesWideRoundsUp(t *testing.T) {
	geo := NewGeometry(0, 0, 2000, 1000, 20, 100)

	tests := []struct {
		width int
		want  int
	}{
		{20, 1},
		{21, 2},
		{40, 2},
		{41, 3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := geo.SitesWide(tt.width); got != tt.want {
			t.Errorf("SitesWide(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestGeometryRowsTall(t *testing.T) {
	geo := NewGeometry(0, 0, 2000, 1000, 20, 100)

	if got := geo.RowsTall(100); got != 1 {
		t.Errorf("RowsTall(100) = %d, want 1", got)
	}
	if got := geo.RowsTall(250); got != 3 {
		t.Errorf("RowsTall(250) = %d, want 3", got)
	}
}

func TestDivCeilAndDivRound(t *testing.T) {
	tests := []struct{ a, b, ceil, round int }{
		{10, 5, 2, 2},
		{11, 5, 3, 2},
		{9, 5, 2, 2},
		{-10, 5, -2, -2},
	}
	for _, tt := range tests {
		if got := divCeil(tt.a, tt.b); got != tt.ceil {
			t.Errorf("divCeil(%d,%d) = %d, want %d", tt.a, tt.b, got, tt.ceil)
		}
		if got := divRound(tt.a, tt.b); got != tt.round {
			t.Errorf("divRound(%d,%d) = %d, want %d", tt.a, tt.b, got, tt.round)
		}
	}
}

func TestInitLocationAndPaddedWidth(t *testing.T) {
	geo := NewGeometry(0, 0, 2000, 1000, 20, 100)
	opts := DefaultOptions()
	opts.PaddingLeft = 1
	opts.PaddingRight = 2

	m := &Macro{Name: "INV", Width: 40, Height: 100}
	c := &Cell{Name: "c1", Macro: m, InitX: 100, InitY: 200}

	x, y := InitLocation(geo, c)
	if x != 5 || y != 2 {
		t.Errorf("InitLocation = (%d,%d), want (5,2)", x, y)
	}

	if got := PaddedWidth(geo, opts, c); got != 5 {
		t.Errorf("PaddedWidth = %d, want 5 (2 sites + 1 + 2 padding)", got)
	}
}
