// Package legalize implements the detailed-placement legalization core of a
// digital-IC physical-design tool.
//
// # Overview
//
// Given a netlist that has already been globally placed — every movable
// standard cell has an approximate (x, y) position in the die's core area,
// but cells may overlap, straddle row boundaries, or sit off the
// manufacturing grid — legalize produces a legalized placement: every
// movable cell is snapped to a discrete site on a row, no two cells
// overlap, power-rail polarity of every cell matches the row it occupies,
// group/region constraints are satisfied, and total cell displacement from
// the global-placement input is kept small.
//
// # Pipeline
//
// The core runs a short, single-threaded, synchronous pipeline over a
// shared in-memory model:
//
//   - Geometry: coordinate conversions between DBU and grid units
//   - Power/row assignment: VDD/VSS polarity for every row
//   - Grid builder: the 2-D occupancy grid, fixed cells and groups painted
//   - Initial placer: snaps every movable cell to a legal site (map_move)
//   - Diamond search / bin search: find a legal site near a target point
//   - Local moves: shift, swap, and refine passes that reduce displacement
//     and half-perimeter wirelength while preserving legality
//   - Metrics: displacement statistics and HPWL
//
// # Collaborators
//
// Everything the core needs about the design — geometry of cells, rows,
// nets, fixed blockages, power intent — is consumed through the opaque
// Database façade (see db.go). LEF/DEF readers, timing analysis, clock-tree
// synthesis, and the command interpreter are external collaborators; this
// package does not implement them, only the interfaces it consumes from or
// exposes to them.
//
// # Concurrency
//
// The legalizer is single-threaded and synchronous. A Legalizer value is an
// explicit context passed to every operation — there is no package-level
// mutable state — and owns the grid and cell vectors exclusively for the
// duration of one run.
package legalize
