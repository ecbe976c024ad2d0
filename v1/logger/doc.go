// Package logger wraps zap with the small logging contract used across
// vecsearch:
//
//	Info/Debug/Warn/Error/Fatal(msg string, err error, fields ...map[string]interface{})
//
// Packages that log declare that contract as their own Logger interface, so
// *Logger satisfies them without an adapter.
//
// Entries are JSON on stderr (stdout is reserved for command output) with
// ISO8601 timestamps and the pid and service fields:
//
//	log := logger.NewLoggerClient(logger.Config{Level: "debug", ServiceName: "vecsearch"})
//	log.Warn("sparse search fell back to dense", nil, map[string]interface{}{
//	    "collection": "cmds",
//	})
//
// With EnableTracing set, the *WithContext variants add trace_id and span_id
// from the span carried by the context.
//
// # FX Module Integration
//
// FXModule provides *Logger from a Config and syncs it on stop.
// FxEventLogger can be passed to fx.WithLogger so that fx's startup
// messages share the same output.
//
// # Configuration
//
// Level is read from ZAP_LOGGER_LEVEL (debug, info, warning, error).
package logger
