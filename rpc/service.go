package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/ironlattice/legalize"
)

// LegalizeRequest carries the design snapshot to legalize; the run uses
// the server's current tunables.
type LegalizeRequest struct {
	Snapshot legalize.DesignSnapshot `json:"snapshot"`
}

// LegalizeReply carries the resulting report in a transport-friendly
// shape.
type LegalizeReply struct {
	TotalCells           int     `json:"total_cells"`
	PlacedCells          int     `json:"placed_cells"`
	FailedCells          int     `json:"failed_cells"`
	TotalDisplacement    int64   `json:"total_displacement"`
	AverageDisplacement  float64 `json:"average_displacement"`
	HPWLBefore           int64   `json:"hpwl_before"`
	HPWLAfter            int64   `json:"hpwl_after"`
}

// PaddingRequest sets per-cell site padding for subsequent runs.
type PaddingRequest struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// PaddingReply acknowledges a padding change.
type PaddingReply struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// CheckRequest asks whether a design snapshot's cell positions already
// satisfy every placement invariant.
type CheckRequest struct {
	Snapshot legalize.DesignSnapshot `json:"snapshot"`
}

// CheckReply reports the outcome of CheckPlacement.
type CheckReply struct {
	Legal bool   `json:"legal"`
	Error string `json:"error,omitempty"`
}

// FillerRequest asks for the free-site gaps on every row of a snapshot.
type FillerRequest struct {
	Snapshot            legalize.DesignSnapshot `json:"snapshot"`
	DisallowOneSiteGaps bool                    `json:"disallow_one_site_gaps"`
}

// Gap is one filler-eligible span of sites on a row.
type Gap struct {
	X, Y, Width int
}

// FillerReply lists the gaps found.
type FillerReply struct {
	Gaps []Gap `json:"gaps"`
}

// LegalizerServer is the service interface implementations must satisfy;
// it mirrors the four RPCs the command surface exposes.
type LegalizerServer interface {
	Legalize(context.Context, *LegalizeRequest) (*LegalizeReply, error)
	SetPlacementPadding(context.Context, *PaddingRequest) (*PaddingReply, error)
	CheckPlacement(context.Context, *CheckRequest) (*CheckReply, error)
	FillerPlacement(context.Context, *FillerRequest) (*FillerReply, error)
}

// legalizerService adapts this package's legalize.Legalizer construction
// to the LegalizerServer interface.
type legalizerService struct {
	opts legalize.Options
}

// NewServer constructs a LegalizerServer that legalizes each request's
// snapshot with the given default tunables; SetPlacementPadding changes
// the padding for every later request.
func NewServer(opts legalize.Options) LegalizerServer {
	return &legalizerService{opts: opts}
}

func (s *legalizerService) Legalize(ctx context.Context, req *LegalizeRequest) (*LegalizeReply, error) {
	mdb, err := legalize.LoadSnapshot(req.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("rpc: loading snapshot: %w", err)
	}
	lz := legalize.New(mdb.Database(), s.opts, nil)
	report, err := lz.Legalize()
	if err != nil {
		return nil, fmt.Errorf("rpc: legalizing: %w", err)
	}
	return &LegalizeReply{
		TotalCells:          report.TotalCells,
		PlacedCells:         report.PlacedCells,
		FailedCells:         report.FailedCells,
		TotalDisplacement:   report.Displacement.Total,
		AverageDisplacement: report.Displacement.Average,
		HPWLBefore:          report.HPWLBefore,
		HPWLAfter:           report.HPWLAfter,
	}, nil
}

func (s *legalizerService) SetPlacementPadding(ctx context.Context, req *PaddingRequest) (*PaddingReply, error) {
	s.opts.PaddingLeft = req.Left
	s.opts.PaddingRight = req.Right
	return &PaddingReply{Left: req.Left, Right: req.Right}, nil
}

func (s *legalizerService) CheckPlacement(ctx context.Context, req *CheckRequest) (*CheckReply, error) {
	mdb, err := legalize.LoadSnapshot(req.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("rpc: loading snapshot: %w", err)
	}
	db := mdb.Database()
	geo := db.Geometry
	rows := db.Rows()
	if err := legalize.AssignRowPower(rows, db.Macros(), s.opts); err != nil {
		return nil, fmt.Errorf("rpc: assigning row power: %w", err)
	}

	g := legalize.NewGrid(geo.NumRows(), geo.NumSitesPerRow())
	for _, c := range db.Cells() {
		w, h := geo.SitesWide(c.Macro.Width), geo.RowsTall(c.Macro.Height)
		c.SiteIndex, c.RowIndex = geo.GridX(c.X), geo.GridY(c.Y)
		c.Placed = true
		if g.InBounds(c.SiteIndex, c.RowIndex) {
			g.Occupy(c, c.SiteIndex, c.RowIndex, w, h)
		}
	}
	if err := legalize.CheckPlacement(g, geo, rows, db.Cells()); err != nil {
		return &CheckReply{Legal: false, Error: err.Error()}, nil
	}
	return &CheckReply{Legal: true}, nil
}

func (s *legalizerService) FillerPlacement(ctx context.Context, req *FillerRequest) (*FillerReply, error) {
	mdb, err := legalize.LoadSnapshot(req.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("rpc: loading snapshot: %w", err)
	}
	db := mdb.Database()
	geo := db.Geometry
	g := legalize.NewGrid(geo.NumRows(), geo.NumSitesPerRow())
	for _, c := range db.Cells() {
		w, h := geo.SitesWide(c.Macro.Width), geo.RowsTall(c.Macro.Height)
		c.SiteIndex, c.RowIndex = geo.GridX(c.X), geo.GridY(c.Y)
		c.Placed = true
		if g.InBounds(c.SiteIndex, c.RowIndex) {
			g.Occupy(c, c.SiteIndex, c.RowIndex, w, h)
		}
	}

	opts := s.opts
	opts.DisallowOneSiteGaps = req.DisallowOneSiteGaps
	raw := legalize.FillerPlacement(g, opts)

	gaps := make([]Gap, len(raw))
	for i, r := range raw {
		gaps[i] = Gap{X: r[0], Y: r[1], Width: r[2]}
	}
	return &FillerReply{Gaps: gaps}, nil
}

// serviceDesc is the hand-written equivalent of a protoc-generated
// grpc.ServiceDesc: four unary RPCs, dispatched by method name, decoded
// with the package's JSON codec (see codec.go) rather than protobuf.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "legalize.Legalizer",
	HandlerType: (*LegalizerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Legalize", Handler: legalizeHandler},
		{MethodName: "SetPlacementPadding", Handler: setPlacementPaddingHandler},
		{MethodName: "CheckPlacement", Handler: checkPlacementHandler},
		{MethodName: "FillerPlacement", Handler: fillerPlacementHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "legalize.proto",
}

// RegisterLegalizerServer registers srv with s using the hand-written
// service descriptor above.
func RegisterLegalizerServer(s *grpc.Server, srv LegalizerServer) {
	s.RegisterService(&serviceDesc, srv)
}

func legalizeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LegalizeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LegalizerServer).Legalize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/legalize.Legalizer/Legalize"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LegalizerServer).Legalize(ctx, req.(*LegalizeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func setPlacementPaddingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PaddingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LegalizerServer).SetPlacementPadding(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/legalize.Legalizer/SetPlacementPadding"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LegalizerServer).SetPlacementPadding(ctx, req.(*PaddingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func checkPlacementHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LegalizerServer).CheckPlacement(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/legalize.Legalizer/CheckPlacement"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LegalizerServer).CheckPlacement(ctx, req.(*CheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func fillerPlacementHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(FillerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LegalizerServer).FillerPlacement(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/legalize.Legalizer/FillerPlacement"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LegalizerServer).FillerPlacement(ctx, req.(*FillerRequest))
	}
	return interceptor(ctx, in, info, handler)
}
