package legalize

import "strconv"

// Report summarizes the outcome of one Legalize run: displacement and
// HPWL before/after, and cell counts. It implements TableProvider so it
// can render the same way diagnostics do (text table, or an RPC reply,
// §10.D).
type Report struct {
	TotalCells    int
	PlacedCells   int
	FailedCells   int
	Displacement  DisplacementStats
	HPWLBefore    int64
	HPWLAfter     int64
	Diagnostics   *Diagnostics
}

var reportColumns = []TableColumn{
	{Header: "Metric", Width: 20},
	{Header: "Value", Width: 20},
}

// Columns implements TableProvider.
func (r *Report) Columns() []TableColumn { return reportColumns }

// Length implements TableProvider.
func (r *Report) Length() int { return 7 }

// Str implements TableProvider.
func (r *Report) Str(row, column int) string {
	labels := []string{
		"total cells", "placed cells", "failed cells",
		"total displacement", "average displacement", "hpwl before", "hpwl after",
	}
	values := []string{
		strconv.Itoa(r.TotalCells),
		strconv.Itoa(r.PlacedCells),
		strconv.Itoa(r.FailedCells),
		strconv.FormatInt(r.Displacement.Total, 10),
		strconv.FormatFloat(r.Displacement.Average, 'f', 2, 64),
		strconv.FormatInt(r.HPWLBefore, 10),
		strconv.FormatInt(r.HPWLAfter, 10),
	}
	if column == 0 {
		return labels[row]
	}
	return values[row]
}

// groupReport is a TableProvider view over GroupAnalyze's output, for
// rendering group utilization with WriteTable.
type groupReport struct {
	rows []GroupUtilization
}

// NewGroupReport wraps group-utilization rows as a TableProvider.
func NewGroupReport(rows []GroupUtilization) TableProvider {
	return &groupReport{rows: rows}
}

var groupReportColumns = []TableColumn{
	{Header: "Group", Width: 20},
	{Header: "Region Area", Width: 12},
	{Header: "Available Area", Width: 14},
	{Header: "Cell Area", Width: 12},
	{Header: "Utilization", Width: 12},
	{Header: "Avail Util", Width: 12},
}

func (g *groupReport) Columns() []TableColumn { return groupReportColumns }
func (g *groupReport) Length() int            { return len(g.rows) }
func (g *groupReport) Str(row, column int) string {
	r := g.rows[row]
	switch column {
	case 0:
		return r.Group
	case 1:
		return strconv.FormatInt(r.RegionArea, 10)
	case 2:
		return strconv.FormatInt(r.AvailableArea, 10)
	case 3:
		return strconv.FormatInt(r.CellArea, 10)
	case 4:
		return strconv.FormatFloat(r.Utilization, 'f', 4, 64)
	default:
		return strconv.FormatFloat(r.AvailUtilization, 'f', 4, 64)
	}
}
