package legalize

import (
	"fmt"
	"time"
)

// DiagnosticEntry is one ring-buffer row recording a non-fatal event
// observed during a legalization run: a placement failure for a single
// cell, or a configuration warning. Refinement moves that are rolled
// back are not recorded. Diagnostics never include fatal errors (§7 kinds 1, 2, 5 of
// the governing design) — those are returned from the call directly.
type DiagnosticEntry struct {
	Time    time.Time
	Level   string // "warn" or "info"
	Stage   string // pipeline stage that produced the entry, e.g. "initial-placer"
	Message string
}

func (e *DiagnosticEntry) String() string {
	return fmt.Sprintf("[%s] %s (%s): %s", e.Time.Format(time.RFC3339), e.Level, e.Stage, e.Message)
}

// Diagnostics is a bounded ring buffer of DiagnosticEntry values; one
// buffer can collect entries across several legalizer runs. Oldest
// entries are discarded once the buffer is full.
type Diagnostics struct {
	entries []DiagnosticEntry
	columns []TableColumn
	size    int
	start   int
	count   int
}

// NewDiagnostics creates a diagnostics ring buffer holding up to size
// entries.
func NewDiagnostics(size int) *Diagnostics {
	return &Diagnostics{
		entries: make([]DiagnosticEntry, size),
		columns: []TableColumn{
			{Header: "Time", Width: 12, Sortable: true, Filterable: false},
			{Header: "Level", Width: 5, Sortable: false, Filterable: true},
			{Header: "Stage", Width: 20, Sortable: false, Filterable: true},
			{Header: "Message", Width: 200, Sortable: false, Filterable: false},
		},
		size: size,
	}
}

// Warn records a warning-level diagnostic entry from the given pipeline
// stage.
func (d *Diagnostics) Warn(stage, message string, params ...any) {
	d.add("warn", stage, message, params...)
}

// Info records an informational diagnostic entry from the given pipeline
// stage.
func (d *Diagnostics) Info(stage, message string, params ...any) {
	d.add("info", stage, message, params...)
}

func (d *Diagnostics) add(level, stage, message string, params ...any) {
	index := (d.start + d.count) % d.size
	d.entries[index] = DiagnosticEntry{
		Time:    time.Now(),
		Level:   level,
		Stage:   stage,
		Message: fmt.Sprintf(message, params...),
	}

	if d.count < d.size {
		d.count++
	} else {
		d.start = (d.start + 1) % d.size
	}
}

// Columns implements TableProvider.
func (d *Diagnostics) Columns() []TableColumn {
	return d.columns
}

// Length implements TableProvider; it returns the number of entries
// currently buffered, not the buffer's capacity.
func (d *Diagnostics) Length() int {
	return d.count
}

// Str implements TableProvider. Row 0 is the most recently recorded entry.
func (d *Diagnostics) Str(row, column int) string {
	entry := d.entries[(d.start+d.count-row-1)%d.size]
	switch column {
	case 0:
		return entry.Time.Format(time.TimeOnly)
	case 1:
		return entry.Level
	case 2:
		return entry.Stage
	default:
		return entry.Message
	}
}

// Iter streams buffered entries in insertion order (oldest first).
func (d *Diagnostics) Iter() <-chan DiagnosticEntry {
	ch := make(chan DiagnosticEntry)

	go func() {
		defer close(ch)
		for i := range d.count {
			ch <- d.entries[(d.start+i)%d.size]
		}
	}()

	return ch
}
