// Package tracer sets up OpenTelemetry tracing for vecsearch.
//
// The workflow opens workflow.probe, workflow.ingest and workflow.search
// spans and records failures on them:
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "vecsearch"}, log)
//	if err != nil {
//	    return err
//	}
//	ctx, span := t.StartSpan(ctx, "workflow.search")
//	defer span.End()
//	t.SetAttributes(span, map[string]interface{}{"collection": "cmds", "mode": "sparse"})
//
// Spans are exported over OTLP/HTTP only when EnableExport is set
// (TRACER_ENABLE_EXPORT=true). NewClient also installs the W3C trace context
// propagator globally; the embedding providers use it to pass the current
// trace to the inference server.
package tracer
