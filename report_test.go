package legalize

import (
	"strings"
	"testing"
)

func TestReportImplementsTableProvider(t *testing.T) {
	r := &Report{
		TotalCells: 10, PlacedCells: 9, FailedCells: 1,
		Displacement: DisplacementStats{Total: 50, Average: 5.5},
		HPWLBefore:   100,
		HPWLAfter:    80,
	}

	if r.Length() != 7 {
		t.Fatalf("Length() = %d, want 7", r.Length())
	}

	var sb strings.Builder
	if err := WriteTable(&sb, r); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "total cells") || !strings.Contains(out, "10") {
		t.Errorf("rendered table missing expected content: %s", out)
	}
	if !strings.Contains(out, "failed cells") || !strings.Contains(out, "1") {
		t.Errorf("rendered table missing failed-cells row: %s", out)
	}
}

func TestGroupReportRendersUtilizationRows(t *testing.T) {
	rows := []GroupUtilization{
		{Group: "g1", RegionArea: 1000, AvailableArea: 800, CellArea: 400, Utilization: 0.4, AvailUtilization: 0.5},
	}
	gr := NewGroupReport(rows)

	if gr.Length() != 1 {
		t.Fatalf("Length() = %d, want 1", gr.Length())
	}
	if gr.Str(0, 0) != "g1" {
		t.Errorf("Str(0,0) = %q, want \"g1\"", gr.Str(0, 0))
	}

	var sb strings.Builder
	if err := WriteTable(&sb, gr); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if !strings.Contains(sb.String(), "g1") {
		t.Errorf("rendered group report missing group name: %s", sb.String())
	}
}
