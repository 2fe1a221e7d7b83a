package legalize

import (
	"crypto/rand"
	"time"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
)

// RunTrace is one legalization run's trace: one span per recorded
// pipeline stage, all sharing the run's trace ID, with no root span and
// no parent links between them. It is built directly from the vendored
// OTLP proto types rather than a full OTel SDK — this package has no need
// for exporters, samplers, or a tracer provider. Neither the Legalizer
// nor the gRPC service creates a RunTrace; a caller that records one can
// forward ResourceSpans to whatever collector it already talks to.
type RunTrace struct {
	traceID [16]byte
	spans   []*tracepb.Span
}

// NewRunTrace starts a trace for one legalization run with a fresh trace
// ID and no spans.
func NewRunTrace() *RunTrace {
	t := &RunTrace{traceID: newTraceID()}
	return t
}

// StageSpan records a completed pipeline stage as a span of the run (no
// parent span is set), with start/end timestamps. It returns a finish function the caller
// defers at the start of the stage:
//
//	end := trace.StageSpan("initial-placer")
//	defer end()
func (rt *RunTrace) StageSpan(name string) func() {
	start := time.Now()
	spanID := newSpanID()
	return func() {
		finish := time.Now()
		rt.spans = append(rt.spans, &tracepb.Span{
			TraceId:           rt.traceID[:],
			SpanId:            spanID[:],
			Name:              name,
			StartTimeUnixNano: uint64(start.UnixNano()),
			EndTimeUnixNano:   uint64(finish.UnixNano()),
			Kind:              tracepb.Span_SPAN_KIND_INTERNAL,
		})
	}
}

// ResourceSpans builds the OTLP ResourceSpans message for this run,
// tagged with a "legalize" service name, ready to hand to any OTLP/HTTP
// or OTLP/gRPC exporter the caller already has.
func (rt *RunTrace) ResourceSpans() *tracepb.ResourceSpans {
	return &tracepb.ResourceSpans{
		Resource: &resourcepb.Resource{
			Attributes: []*commonpb.KeyValue{
				{Key: "service.name", Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: "legalize"}}},
			},
		},
		ScopeSpans: []*tracepb.ScopeSpans{
			{
				Scope: &commonpb.InstrumentationScope{Name: "legalize"},
				Spans: rt.spans,
			},
		},
	}
}

func newTraceID() [16]byte {
	var id [16]byte
	_, _ = rand.Read(id[:])
	return id
}

func newSpanID() [8]byte {
	var id [8]byte
	_, _ = rand.Read(id[:])
	return id
}
