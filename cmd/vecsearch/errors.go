package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/fang"

	"github.com/Aleph-Alpha/vecsearch/v1/minio"
	"github.com/Aleph-Alpha/vecsearch/v1/postgres"
	"github.com/Aleph-Alpha/vecsearch/v1/workflow"
)

// Kinds for failures of the record sources. Everything else is named by
// workflow.KindOf.
const (
	kindSourceNotFound    = "SourceNotFound"
	kindSourceUnavailable = "SourceUnavailable"
	kindSourceDenied      = "SourceAccessDenied"
	kindSourceTooLarge    = "SourceTooLarge"
	kindSourceQuery       = "SourceQueryFailed"
	kindConfig            = "InvalidConfig"
)

// errConfig marks configuration errors found before the app is built.
var errConfig = errors.New("invalid configuration")

// allFailedError is returned by ingest when records were given but none
// made it into the store. The report has already been printed.
type allFailedError struct {
	report *workflow.IngestReport
}

func (e *allFailedError) Error() string {
	return fmt.Sprintf("all %d records failed to ingest into %q", e.report.Total, e.report.Collection)
}

func errorKind(err error) string {
	var all *allFailedError
	switch {
	case errors.As(err, &all):
		if len(all.report.Failures) > 0 {
			return all.report.Failures[0].Kind
		}
		return workflow.KindInternal
	case errors.Is(err, errConfig):
		return kindConfig
	case errors.Is(err, minio.ErrObjectNotFound), errors.Is(err, minio.ErrBucketNotFound):
		return kindSourceNotFound
	case errors.Is(err, minio.ErrAccessDenied):
		return kindSourceDenied
	case errors.Is(err, minio.ErrObjectTooLarge):
		return kindSourceTooLarge
	case errors.Is(err, minio.ErrConnectionFailed), errors.Is(err, postgres.ErrUnavailable):
		return kindSourceUnavailable
	case errors.Is(err, postgres.ErrQuery):
		return kindSourceQuery
	}
	return workflow.KindOf(err)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// writeError prints err as {"error": {"kind": ..., "message": ...}}.
func writeError(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(errorBody{Error: errorDetail{Kind: errorKind(err), Message: err.Error()}})
}

// jsonErrorHandler replaces fang's styled error output so scripts can parse
// failures from stderr.
func jsonErrorHandler(w io.Writer, _ fang.Styles, err error) {
	writeError(w, err)
}
