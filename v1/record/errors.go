package record

import "errors"

var (
	// ErrMalformedRecord marks a single record that cannot be rendered or
	// identified. Ingestion reports it and moves on.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMalformedInput marks an input that cannot be read as a list of
	// records at all. Nothing is ingested.
	ErrMalformedInput = errors.New("malformed input")
)
