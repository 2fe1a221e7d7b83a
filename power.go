package legalize

import "fmt"

// AssignRowPower sets each row's Power field based on the design's
// initial-power tunable, alternating polarity row by row the way rail
// straps alternate physically across a standard-cell core: row 0 gets
// the starting polarity, row 1 gets the opposite rail, and so on. Rows
// whose Power field was already set to something other than
// PowerUnknown by the caller (e.g. loaded from a database that records
// measured rail polarity) are left untouched.
//
// When opts.InitialPower is unset, the starting polarity falls back to
// the top-edge polarity of the first single-row macro that defines one
// — macros mirror freely, so any row works for them, but that first
// defined polarity still fixes which rail row 0 ends up on. Assignment
// only fails when a multi-row macro is present and neither
// opts.InitialPower nor a macro fallback produced a concrete polarity:
// multi-row cells can't mirror, so they need a real row polarity to
// check power legality against. With no multi-row macro and nothing
// else configured, row 0 defaults to VDD — an arbitrary but harmless
// choice, since nothing will ever compare against it.
func AssignRowPower(rows []*Row, macros []*Macro, opts Options) error {
	start := opts.InitialPower
	foundMultiRow := false
	if start == PowerUnknown {
		for _, m := range macros {
			if m.IsMultiRow {
				foundMultiRow = true
				continue
			}
			if m.TopPower != PowerUnknown {
				start = m.TopPower
				break
			}
		}
	}
	if start == PowerUnknown {
		if foundMultiRow {
			return fmt.Errorf("legalize: assigning row power: %w", ErrNoDefinedPolarity)
		}
		start = VDD
	}

	power := start
	for _, row := range rows {
		if row.Power == PowerUnknown {
			row.Power = power
		}
		power = row.Power.Opposite()
	}
	return nil
}

// CheckCellPower reports whether cell's macro has a defined power intent
// (top and bottom polarity both known). A macro with no power intent
// cannot be legally placed on any row.
func CheckCellPower(cell *Cell) error {
	if cell.Macro == nil {
		return fmt.Errorf("legalize: cell %q has no macro assigned", cell.Name)
	}
	if cell.Macro.BottomPower == PowerUnknown || cell.Macro.TopPower == PowerUnknown {
		return fmt.Errorf("legalize: cell %q macro %q: %w", cell.Name, cell.Macro.Name, ErrMissingPowerIntent)
	}
	return nil
}

// RowMatchesCell reports whether a cell may legally sit with its bottom
// edge on the given row: the row's rail polarity must match the macro's
// expected bottom-edge polarity.
func RowMatchesCell(row *Row, cell *Cell) bool {
	if row == nil || cell.Macro == nil {
		return false
	}
	return row.Power == cell.Macro.BottomPower
}

// rowAt returns rows[y], or nil if y is out of range — a bounds-safe
// lookup shared by every site-legality check that needs a row's power.
func rowAt(rows []*Row, y int) *Row {
	if y < 0 || y >= len(rows) {
		return nil
	}
	return rows[y]
}
