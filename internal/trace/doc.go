// Package trace records what the toolchain is doing while it runs.
//
// Tracing is enabled from the command line:
//
//	regionorm normalize --trace=- --trace-level=phase src/
//
// A Tracer receives Events. Nop costs nothing when tracing is off,
// StreamTracer writes each event immediately (text or NDJSON), RingTracer
// keeps the last N events in memory so they can be dumped after a failure,
// and MultiTracer fans out to several of them.
//
// Levels filter by scope: phase keeps driver and pass events, detail adds
// per-file events, debug adds node events such as every generated region.
//
// Tracers travel through the pipeline in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
