package legalize

import "errors"

// Sentinel errors returned by the legalizer's fatal-error paths. Callers
// should use errors.Is against these, since every returned error is
// wrapped with call-site context via fmt.Errorf("...: %w", ...).
var (
	// ErrMissingPowerIntent is returned when a macro used by the design
	// has no top/bottom power-rail polarity recorded and none can be
	// inferred.
	ErrMissingPowerIntent = errors.New("legalize: cell has no power intent")

	// ErrNoDefinedPolarity is returned when row power assignment cannot
	// determine a starting polarity for row 0.
	ErrNoDefinedPolarity = errors.New("legalize: no defined row power polarity")

	// ErrFixedOverlap is returned when two fixed cells (or a fixed cell
	// and a group region) overlap in the input design, which the grid
	// builder cannot resolve by moving anything.
	ErrFixedOverlap = errors.New("legalize: fixed cells overlap")

	// ErrFixedOutsideCore is returned when a fixed cell's footprint lies
	// partially or fully outside the die core box.
	ErrFixedOutsideCore = errors.New("legalize: fixed cell outside core area")

	// ErrGroupOutsideCore is returned when a group region's rectangle
	// lies partially or fully outside the die core box.
	ErrGroupOutsideCore = errors.New("legalize: group region outside core area")

	// ErrInvariantViolation is returned by the post-run checker when the
	// legalized placement fails one of the invariants (overlap, polarity
	// mismatch, group membership, off-grid site). It signals a bug in
	// this package rather than a malformed input, but is still returned
	// rather than panicked so a long-running host (the gRPC service)
	// can report it without crashing.
	ErrInvariantViolation = errors.New("legalize: invariant violation in legalized placement")

	// ErrNoLegalSite is returned when a cell cannot be placed anywhere
	// within the search bounds (diamond search exhausted its ring limit
	// without finding a free, polarity- and group-compatible site).
	ErrNoLegalSite = errors.New("legalize: no legal site found for cell")
)
