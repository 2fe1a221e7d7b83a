package legalize

// Options holds every tunable that controls a legalization run. Zero value
// is not usable directly — construct with DefaultOptions and override the
// fields that matter, or load from a config file (see config.go).
type Options struct {
	// MaxDisplacementRows bounds how far (in rows) the refine pass is
	// allowed to move a cell from its current position; a candidate move
	// that would exceed it is rejected regardless of HPWL/displacement
	// benefit.
	MaxDisplacementRows int

	// PaddingLeft and PaddingRight reserve extra sites to either side of
	// every movable cell's footprint when checking site availability,
	// expressed in sites.
	PaddingLeft  int
	PaddingRight int

	// InitialPower is the polarity assigned to the bottom rail of row 0
	// when the design does not otherwise specify it; row polarity then
	// alternates row by row.
	InitialPower Power

	// DisallowOneSiteGaps makes FillerPlacement omit single-site gaps
	// from the gaps it reports. Placement and refinement do not read it
	// and do not check for the one-site gaps a placement leaves.
	DisallowOneSiteGaps bool

	// DiamondSearchHeight sets how many rings the diamond search tries
	// before it gives up: rings 1 through 2*DiamondSearchHeight/div - 1,
	// each one row further above and below the target.
	DiamondSearchHeight int

	// DiamondSearchDiv controls the ring step used while enumerating
	// diamond-search candidates. The original design divides by 4
	// normally, or by 1 ("one ring per row") when the design is dense
	// (design utilization above DenseUtilizationThreshold) or contains
	// any fixed instance, trading search thoroughness for speed on easy
	// inputs and exhaustiveness on hard ones.
	DiamondSearchDiv int

	// DenseUtilizationThreshold is the design-utilization fraction above
	// which DiamondSearchDiv is forced to 1 regardless of its configured
	// value.
	DenseUtilizationThreshold float64

	// BinSearchWidth is carried through the config file, but the search
	// does not read it: diamondSearch sizes each bin-search window from
	// the ring index (ring*div*10 sites on either side of the target).
	BinSearchWidth int

	// ShiftMoveRegionScale multiplies a cell's padded width/height to
	// build the neighborhood searched by shiftMove: the box reaches
	// scale*w and scale*h to each side of the cell's global-placement
	// location (3 is the usual setting, giving a 6w x 6h box).
	ShiftMoveRegionScale int
}

// DefaultOptions returns the package's default tunables.
func DefaultOptions() Options {
	return Options{
		MaxDisplacementRows:       10,
		PaddingLeft:               0,
		PaddingRight:              0,
		InitialPower:              VDD,
		DisallowOneSiteGaps:       false,
		DiamondSearchHeight:       100,
		DiamondSearchDiv:          4,
		DenseUtilizationThreshold: 0.6,
		BinSearchWidth:            10,
		ShiftMoveRegionScale:      3,
	}
}
